package machines

import (
	"errors"
	"fmt"

	"github.com/reusee/turing/arenas"
	"github.com/reusee/turing/tables"
	"github.com/reusee/turing/tapes"
)

const (
	StartState = "start"
	HaltState  = "stop"
	MaxSteps   = 100000
)

var (
	ErrNoStartCell = errors.New("tape has no non-blank cell to start from")
	ErrHalted      = errors.New("machine halted")
)

type Table interface {
	Lookup(symbol byte, state string) (tables.Transition, error)
}

type Options struct {
	StartState string
	HaltState  string
	MaxSteps   int
}

type Machine struct {
	table   Table
	tape    *tapes.Tape
	options Options

	State   string
	Head    arenas.Handle
	Steps   int
	Outcome Outcome

	err error
}

// New places the head on the first non-blank cell of tape.
// Zero fields of options take the package defaults.
func New(table Table, tape *tapes.Tape, options Options) (*Machine, error) {
	if options.StartState == "" {
		options.StartState = StartState
	}
	if options.HaltState == "" {
		options.HaltState = HaltState
	}
	if options.MaxSteps <= 0 {
		options.MaxSteps = MaxSteps
	}

	head, err := tape.FirstNonBlank()
	if err != nil {
		return nil, err
	}
	if head.IsNil() {
		return nil, ErrNoStartCell
	}

	m := &Machine{
		table:   table,
		tape:    tape,
		options: options,
		State:   options.StartState,
		Head:    head,
	}
	if m.State == options.HaltState {
		m.Outcome = HaltedNormal
	}
	return m, nil
}

func (m *Machine) Options() Options {
	return m.options
}

type Event struct {
	Step       int
	Read       byte
	Transition tables.Transition
	// Grew is set when the move added a blank cell at a tape end
	Grew    bool
	Outcome Outcome
}

// Step executes one transition.
// A missing transition halts the machine and is not an error.
func (m *Machine) Step() (Event, error) {
	if m.err != nil {
		return Event{}, m.err
	}
	if m.Outcome.Halted() {
		return Event{}, fmt.Errorf("%w: %v", ErrHalted, m.Outcome)
	}

	symbol, err := m.tape.Symbol(m.Head)
	if err != nil {
		return Event{}, m.fail(err)
	}
	event := Event{
		Step: m.Steps + 1,
		Read: symbol,
	}

	transition, err := m.table.Lookup(symbol, m.State)
	if errors.Is(err, tables.ErrNoTransition) {
		m.Outcome = HaltedNoTransition
		event.Step = m.Steps
		event.Outcome = m.Outcome
		return event, nil
	} else if err != nil {
		return Event{}, m.fail(err)
	}
	event.Transition = transition

	if err := m.tape.SetSymbol(m.Head, transition.NewSymbol); err != nil {
		return Event{}, m.fail(err)
	}
	m.State = transition.NewState

	switch transition.Direction {

	case tables.Right:
		if m.Head == m.tape.Tail() {
			if _, err := m.tape.AppendRight(tapes.Blank); err != nil {
				return Event{}, m.fail(fmt.Errorf("extend tape right: %w", err))
			}
			event.Grew = true
		}
		m.Head, err = m.tape.Next(m.Head)
		if err != nil {
			return Event{}, m.fail(err)
		}

	case tables.Left:
		if m.Head == m.tape.Head() {
			if _, err := m.tape.AppendLeft(tapes.Blank); err != nil {
				return Event{}, m.fail(fmt.Errorf("extend tape left: %w", err))
			}
			event.Grew = true
		}
		m.Head, err = m.tape.Prev(m.Head)
		if err != nil {
			return Event{}, m.fail(err)
		}

	}

	m.Steps++
	if m.State == m.options.HaltState {
		m.Outcome = HaltedNormal
	} else if m.Steps >= m.options.MaxSteps {
		m.Outcome = HaltedStepLimit
	}
	event.Outcome = m.Outcome
	return event, nil
}

func (m *Machine) fail(err error) error {
	m.err = fmt.Errorf("step %d in state %s: %w", m.Steps+1, m.State, err)
	return m.err
}

func (m *Machine) Err() error {
	return m.err
}

// Run steps the machine until it halts, yielding every executed step.
func (m *Machine) Run(yield func(*Event, error) bool) {
	for !m.Outcome.Halted() {
		event, err := m.Step()
		if err != nil {
			yield(nil, err)
			return
		}
		if !yield(&event, nil) {
			return
		}
	}
}

type Result struct {
	Outcome Outcome
	Steps   int
	State   string
}

func (m *Machine) Result() Result {
	return Result{
		Outcome: m.Outcome,
		Steps:   m.Steps,
		State:   m.State,
	}
}

func (m *Machine) Execute() (Result, error) {
	for _, err := range m.Run {
		if err != nil {
			return m.Result(), err
		}
	}
	return m.Result(), nil
}
