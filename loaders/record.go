package loaders

import (
	"fmt"
	"strings"

	"github.com/reusee/turing/tables"
)

type recordScanner struct {
	line string
	pos  int
}

func (s *recordScanner) fail(format string, args ...any) error {
	return fmt.Errorf("%w: %s at column %d in %q",
		ErrMalformedRecord, fmt.Sprintf(format, args...), s.pos+1, s.line)
}

func (s *recordScanner) literal(lit string) error {
	if !strings.HasPrefix(s.line[s.pos:], lit) {
		return s.fail("expecting %q", lit)
	}
	s.pos += len(lit)
	return nil
}

func (s *recordScanner) symbol() (byte, error) {
	if s.pos >= len(s.line) {
		return 0, s.fail("expecting symbol")
	}
	b := s.line[s.pos]
	s.pos++
	return b, nil
}

func (s *recordScanner) until(delim byte) (string, error) {
	end := strings.IndexByte(s.line[s.pos:], delim)
	if end < 0 {
		return "", s.fail("expecting %q", delim)
	}
	if end == 0 {
		return "", s.fail("empty state")
	}
	ret := s.line[s.pos : s.pos+end]
	s.pos += end
	return ret, nil
}

// ParseRecord parses one transition written exactly as
//
//	(S, STATE) -> (S', STATE', D)
func ParseRecord(line string) (ret tables.Transition, err error) {
	s := &recordScanner{
		line: line,
	}

	if err = s.literal("("); err != nil {
		return
	}
	if ret.CurrentSymbol, err = s.symbol(); err != nil {
		return
	}
	if err = s.literal(", "); err != nil {
		return
	}
	if ret.CurrentState, err = s.until(')'); err != nil {
		return
	}
	if err = s.literal(") -> ("); err != nil {
		return
	}
	if ret.NewSymbol, err = s.symbol(); err != nil {
		return
	}
	if err = s.literal(", "); err != nil {
		return
	}
	if ret.NewState, err = s.until(','); err != nil {
		return
	}
	if err = s.literal(", "); err != nil {
		return
	}
	d, err := s.symbol()
	if err != nil {
		return
	}
	if ret.Direction, err = tables.ParseDirection(d); err != nil {
		s.pos--
		return ret, s.fail("unknown direction %q", d)
	}
	if err = s.literal(")"); err != nil {
		return
	}
	if s.pos != len(line) {
		return ret, s.fail("trailing input")
	}

	if err = ret.Validate(); err != nil {
		return ret, fmt.Errorf("%w: %w", ErrMalformedRecord, err)
	}
	return ret, nil
}
