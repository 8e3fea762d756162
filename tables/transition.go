package tables

import (
	"errors"
	"fmt"
)

const MaxStateLen = 255

var ErrInvalidTransition = errors.New("invalid transition")

type Direction byte

const (
	Right Direction = '>'
	Left  Direction = '<'
	None  Direction = '.'
)

func ParseDirection(b byte) (Direction, error) {
	switch d := Direction(b); d {
	case Right, Left, None:
		return d, nil
	}
	return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidTransition, b)
}

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Left:
		return "left"
	case None:
		return "none"
	}
	return fmt.Sprintf("Direction(%q)", byte(d))
}

// Transition maps (CurrentSymbol, CurrentState) to a write, a new state and a head move.
type Transition struct {
	CurrentSymbol byte
	CurrentState  string
	NewSymbol     byte
	NewState      string
	Direction     Direction
}

func (t Transition) Validate() error {
	if err := validateState(t.CurrentState); err != nil {
		return fmt.Errorf("current state: %w", err)
	}
	if err := validateState(t.NewState); err != nil {
		return fmt.Errorf("new state: %w", err)
	}
	if _, err := ParseDirection(byte(t.Direction)); err != nil {
		return err
	}
	return nil
}

func validateState(state string) error {
	if state == "" {
		return fmt.Errorf("%w: empty state label", ErrInvalidTransition)
	}
	if len(state) > MaxStateLen {
		return fmt.Errorf("%w: state label longer than %d bytes", ErrInvalidTransition, MaxStateLen)
	}
	return nil
}

// String formats t the way it is written in a table file.
func (t Transition) String() string {
	return fmt.Sprintf("(%c, %s) -> (%c, %s, %c)",
		t.CurrentSymbol, t.CurrentState,
		t.NewSymbol, t.NewState,
		t.Direction,
	)
}
