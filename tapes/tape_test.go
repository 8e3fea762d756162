package tapes

import (
	"errors"
	"testing"

	"github.com/reusee/turing/arenas"
)

func load(t *testing.T, line string) *Tape {
	t.Helper()
	tape := New(arenas.New(0))
	if err := tape.Load(line); err != nil {
		t.Fatal(err)
	}
	return tape
}

func TestLoad(t *testing.T) {
	tape := load(t, "1 0 1")
	if tape.Len() != 5 {
		t.Fatalf("got %v", tape.Len())
	}
	if s := tape.String(); s != "1_0_1" {
		t.Fatalf("got %q", s)
	}
	if s, _ := tape.Render(); s != "1_0_1" {
		t.Fatalf("got %q", s)
	}
}

func TestRender(t *testing.T) {
	for _, c := range []struct {
		tape string
		want string
	}{
		{"", ""},
		{"_", ""},
		{"   ", ""},
		{"____", ""},
		{"1", "1"},
		{"__1__", "1"},
		{"_1_1_", "1_1"},
		{"  ab c  ", "ab_c"},
		{"___x", "x"},
		{"x___", "x"},
	} {
		tape := load(t, c.tape)
		got, err := tape.Render()
		if err != nil {
			t.Fatal(err)
		}
		if got != c.want {
			t.Fatalf("Render(%q) = %q, want %q", c.tape, got, c.want)
		}
	}
}

func TestRenderIgnoresPadding(t *testing.T) {
	tape := load(t, "10_1")
	want, _ := tape.Render()
	for range 50 {
		if _, err := tape.AppendLeft(Blank); err != nil {
			t.Fatal(err)
		}
		if _, err := tape.AppendRight(' '); err != nil {
			t.Fatal(err)
		}
	}
	got, err := tape.Render()
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if tape.Len() != 104 {
		t.Fatalf("got %v", tape.Len())
	}
}

func TestAppendBothEnds(t *testing.T) {
	tape := New(arenas.New(0))
	mid, err := tape.AppendLeft('b')
	if err != nil {
		t.Fatal(err)
	}
	if tape.Head() != mid || tape.Tail() != mid {
		t.Fatal()
	}
	left, _ := tape.AppendLeft('a')
	right, _ := tape.AppendRight('c')

	if s := tape.String(); s != "abc" {
		t.Fatalf("got %q", s)
	}

	next, _ := tape.Next(left)
	if next != mid {
		t.Fatalf("got %v", next)
	}
	prev, _ := tape.Prev(right)
	if prev != mid {
		t.Fatalf("got %v", prev)
	}
	if prev, _ := tape.Prev(left); !prev.IsNil() {
		t.Fatalf("got %v", prev)
	}
	if next, _ := tape.Next(right); !next.IsNil() {
		t.Fatalf("got %v", next)
	}

	// count matches reachable cells
	n := 0
	for _, err := range tape.Cells() {
		if err != nil {
			t.Fatal(err)
		}
		n++
	}
	if n != tape.Len() {
		t.Fatalf("got %d cells, count %d", n, tape.Len())
	}
}

func TestSetSymbol(t *testing.T) {
	tape := load(t, "abc")
	first, err := tape.FirstNonBlank()
	if err != nil {
		t.Fatal(err)
	}
	if err := tape.SetSymbol(first, Blank); err != nil {
		t.Fatal(err)
	}
	if s, _ := tape.Render(); s != "bc" {
		t.Fatalf("got %q", s)
	}
	first, _ = tape.FirstNonBlank()
	if symbol, _ := tape.Symbol(first); symbol != 'b' {
		t.Fatalf("got %q", symbol)
	}
}

func TestFirstNonBlankNone(t *testing.T) {
	tape := load(t, "  _ ")
	h, err := tape.FirstNonBlank()
	if err != nil {
		t.Fatal(err)
	}
	if !h.IsNil() {
		t.Fatalf("got %v", h)
	}
}

func TestExhausted(t *testing.T) {
	arena := arenas.New(0)
	tape := New(arena)
	size := arena.Used()
	if _, err := tape.AppendRight('x'); err != nil {
		t.Fatal(err)
	}
	size = arena.Used() - size

	tape = New(arenas.New(size * 2))
	err := tape.Load("abc")
	if !errors.Is(err, arenas.ErrExhausted) {
		t.Fatalf("got %v", err)
	}
	if tape.Len() != 2 {
		t.Fatalf("got %v", tape.Len())
	}
}

func TestAfterRelease(t *testing.T) {
	arena := arenas.New(0)
	tape := New(arena)
	tape.Load("abc")
	if n := arena.ReleaseAll(); n != 3 {
		t.Fatalf("got %v", n)
	}
	if _, err := tape.Render(); !errors.Is(err, arenas.ErrDangling) {
		t.Fatalf("got %v", err)
	}
}
