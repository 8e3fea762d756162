package loaders

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/reusee/turing/tables"
)

var (
	ErrMalformedCount  = errors.New("malformed count")
	ErrMalformedRecord = errors.New("malformed transition record")
	ErrMissingLine     = errors.New("missing line")
)

type Diagnostic struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (d Diagnostic) String() string {
	if d.Line > 0 {
		return fmt.Sprintf("line %d: %s", d.Line, d.Message)
	}
	return d.Message
}

type Definition struct {
	// DeclaredStates is informational and never checked against States
	DeclaredStates int
	States         []string
	Transitions    []tables.Transition
	Diagnostics    []Diagnostic
}

type Options struct {
	// Strict turns malformed or missing count lines into errors.
	// Otherwise they are reported as diagnostics and loading goes on with
	// whatever was read, which leaves later sections misaligned.
	Strict bool
}

type tableParser struct {
	lines   *LineReader
	options Options
	def     *Definition
}

func ParseTable(r io.Reader, options Options) (*Definition, error) {
	p := &tableParser{
		lines:   NewLineReader(r, FileLineMax),
		options: options,
		def:     new(Definition),
	}
	if err := p.states(); err != nil {
		return p.def, err
	}
	if err := p.transitions(); err != nil {
		return p.def, err
	}
	p.crossCheck()
	return p.def, nil
}

// soft records a recoverable problem, or returns it in strict mode
func (p *tableParser) soft(err error) error {
	if p.options.Strict {
		return fmt.Errorf("line %d: %w", p.lines.Line(), err)
	}
	p.def.Diagnostics = append(p.def.Diagnostics, Diagnostic{
		Line:    p.lines.Line(),
		Message: err.Error(),
	})
	return nil
}

func (p *tableParser) note(format string, args ...any) {
	p.def.Diagnostics = append(p.def.Diagnostics, Diagnostic{
		Message: fmt.Sprintf(format, args...),
	})
}

// readNonEmpty treats an empty line like a missing one
func (p *tableParser) readNonEmpty(what string) (string, bool, error) {
	line, err := p.lines.ReadLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return "", false, err
	}
	if line == "" {
		return "", false, p.soft(fmt.Errorf("%w: %s", ErrMissingLine, what))
	}
	return line, true, nil
}

func (p *tableParser) states() error {
	line, ok, err := p.readNonEmpty("state count")
	if !ok {
		return err
	}
	n, err := parseCount(line)
	p.def.DeclaredStates = n
	if err != nil {
		// the state list is left unread
		return p.soft(fmt.Errorf("state count: %w", err))
	}

	line, ok, err = p.readNonEmpty("state list")
	if !ok {
		return err
	}
	p.def.States = strings.Fields(line)
	return nil
}

func (p *tableParser) transitions() error {
	line, ok, err := p.readNonEmpty("transition count")
	if !ok {
		return err
	}
	n, err := parseCount(line)
	if err != nil {
		return p.soft(fmt.Errorf("transition count: %w", err))
	}

	for range n {
		line, ok, err := p.readNonEmpty("transition")
		if !ok {
			return err
		}
		transition, err := ParseRecord(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", p.lines.Line(), err)
		}
		p.def.Transitions = append(p.def.Transitions, transition)
	}
	return nil
}

func (p *tableParser) crossCheck() {
	def := p.def
	if def.DeclaredStates != len(def.States) {
		p.note("%d states declared, %d listed", def.DeclaredStates, len(def.States))
	}
	if len(def.States) == 0 {
		return
	}
	seen := make(map[string]bool)
	for _, transition := range def.Transitions {
		for _, state := range []string{transition.CurrentState, transition.NewState} {
			if seen[state] || slices.Contains(def.States, state) {
				continue
			}
			seen[state] = true
			p.note("state %s used by %v is not declared", state, transition)
		}
	}
}

// parseCount accepts decimal digits only. The digits before the first bad byte
// are still returned with the error.
func parseCount(s string) (int, error) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return n, fmt.Errorf("%w: %q", ErrMalformedCount, s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
