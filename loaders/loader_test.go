package loaders

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/reusee/turing/tables"
)

const increment = `3
start carry stop
6
(0, start) -> (0, start, >)
(1, start) -> (1, start, >)
(_, start) -> (_, carry, <)
(1, carry) -> (0, carry, <)
(0, carry) -> (1, stop, .)
(_, carry) -> (1, stop, .)
`

func TestParseTable(t *testing.T) {
	def, err := ParseTable(strings.NewReader(increment), Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if def.DeclaredStates != 3 {
		t.Fatalf("got %v", def.DeclaredStates)
	}
	if strings.Join(def.States, ",") != "start,carry,stop" {
		t.Fatalf("got %v", def.States)
	}
	if len(def.Transitions) != 6 {
		t.Fatalf("got %v", len(def.Transitions))
	}
	want := tables.Transition{
		CurrentSymbol: '_',
		CurrentState:  "start",
		NewSymbol:     '_',
		NewState:      "carry",
		Direction:     tables.Left,
	}
	if def.Transitions[2] != want {
		t.Fatalf("got %v", def.Transitions[2])
	}
	if len(def.Diagnostics) != 0 {
		t.Fatalf("got %v", def.Diagnostics)
	}
}

func TestParseRecord(t *testing.T) {
	tr, err := ParseRecord("(1, start) -> (1, stop, .)")
	if err != nil {
		t.Fatal(err)
	}
	if tr != (tables.Transition{CurrentSymbol: '1', CurrentState: "start", NewSymbol: '1', NewState: "stop", Direction: tables.None}) {
		t.Fatalf("got %v", tr)
	}

	for _, line := range []string{
		"",
		"1, start) -> (1, stop, .)",
		"(1,start) -> (1, stop, .)",
		"(1, start)-> (1, stop, .)",
		"(1, start) -> (1, stop, x)",
		"(1, start) -> (1, stop, .",
		"(1, start) -> (1, stop, .) ",
		"(1, ) -> (1, stop, .)",
		"(1, start) -> (1, , .)",
		"(1, start) -> (1, stop .)",
		"(1, start",
	} {
		_, err := ParseRecord(line)
		if !errors.Is(err, ErrMalformedRecord) {
			t.Fatalf("%q: got %v", line, err)
		}
	}
}

func TestMalformedStateCount(t *testing.T) {
	src := "2x\nstart stop\n1\n(1, start) -> (1, stop, .)\n"

	// tolerant: the state list is read as the transition count
	def, err := ParseTable(strings.NewReader(src), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if def.DeclaredStates != 2 {
		t.Fatalf("got %v", def.DeclaredStates)
	}
	if len(def.States) != 0 {
		t.Fatalf("got %v", def.States)
	}
	if len(def.Transitions) != 0 {
		t.Fatalf("got %v", def.Transitions)
	}
	var malformed int
	for _, d := range def.Diagnostics {
		if strings.Contains(d.Message, ErrMalformedCount.Error()) {
			malformed++
		}
	}
	if malformed != 2 {
		t.Fatalf("got %v", def.Diagnostics)
	}

	_, err = ParseTable(strings.NewReader(src), Options{Strict: true})
	if !errors.Is(err, ErrMalformedCount) {
		t.Fatalf("got %v", err)
	}
}

func TestMissingTransitions(t *testing.T) {
	src := "2\nstart stop\n3\n(1, start) -> (1, stop, .)\n"
	def, err := ParseTable(strings.NewReader(src), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Transitions) != 1 {
		t.Fatalf("got %v", def.Transitions)
	}
	if len(def.Diagnostics) != 1 || def.Diagnostics[0].Line != 4 {
		t.Fatalf("got %v", def.Diagnostics)
	}

	_, err = ParseTable(strings.NewReader(src), Options{Strict: true})
	if !errors.Is(err, ErrMissingLine) {
		t.Fatalf("got %v", err)
	}
}

func TestMalformedRecordIsFatal(t *testing.T) {
	src := "2\nstart stop\n1\n(1, start) => (1, stop, .)\n"
	_, err := ParseTable(strings.NewReader(src), Options{})
	if !errors.Is(err, ErrMalformedRecord) {
		t.Fatalf("got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "line 4: ") {
		t.Fatalf("got %v", err)
	}
}

func TestUndeclaredState(t *testing.T) {
	src := "2\nstart stop\n1\n(1, start) -> (1, other, .)\n"
	def, err := ParseTable(strings.NewReader(src), Options{Strict: true})
	if err != nil {
		t.Fatal(err)
	}
	if len(def.Diagnostics) != 1 || !strings.Contains(def.Diagnostics[0].Message, "other") {
		t.Fatalf("got %v", def.Diagnostics)
	}
}

func TestLineReader(t *testing.T) {
	long := strings.Repeat("a", FileLineMax+3)
	r := NewLineReader(strings.NewReader("foo\n\n"+long+"\nbar"), FileLineMax)
	var lines []string
	for {
		line, err := r.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			t.Fatal(err)
		}
		lines = append(lines, line)
	}
	if len(lines) != 5 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[1] != "" || len(lines[2]) != FileLineMax || lines[3] != "aaa" || lines[4] != "bar" {
		t.Fatalf("got %q", lines)
	}
	if r.Line() != 5 {
		t.Fatalf("got %v", r.Line())
	}
}

func TestPrompter(t *testing.T) {
	out := new(bytes.Buffer)
	p := NewPrompter(strings.NewReader("machine.txt\n1 1\n"), out)
	name, err := p.Filename()
	if err != nil {
		t.Fatal(err)
	}
	if name != "machine.txt" {
		t.Fatalf("got %q", name)
	}
	tape, err := p.Tape()
	if err != nil {
		t.Fatal(err)
	}
	if tape != "1 1" {
		t.Fatalf("got %q", tape)
	}
	if out.String() != "Enter file name:\nEnter initial tape state:\n" {
		t.Fatalf("got %q", out.String())
	}

	p = NewPrompter(strings.NewReader("\n"), nil)
	if _, err := p.Filename(); !errors.Is(err, ErrNoFilename) {
		t.Fatalf("got %v", err)
	}
	if _, err := p.Tape(); !errors.Is(err, ErrEmptyTape) {
		t.Fatalf("got %v", err)
	}
}
