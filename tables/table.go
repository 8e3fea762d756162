package tables

import (
	"errors"
	"fmt"
	"iter"

	"github.com/reusee/turing/arenas"
)

const Capacity = 5003

var (
	ErrTableFull    = errors.New("transition table full")
	ErrNoTransition = errors.New("no transition")
)

// Table is a fixed capacity open addressing map from (symbol, state) to
// Transition, probed linearly.
//
// Keys are not checked for uniqueness. When the same key is inserted twice,
// which entry Lookup returns is unspecified.
type Table struct {
	pool  *arenas.Pool[Transition]
	slots []arenas.Handle
	count int
}

func New(arena *arenas.Arena, capacity int) *Table {
	if capacity <= 0 {
		capacity = Capacity
	}
	return &Table{
		pool:  arenas.NewPool[Transition](arena),
		slots: make([]arenas.Handle, capacity),
	}
}

// Hash is the polynomial hash of the key reduced modulo capacity.
func Hash(symbol byte, state string, capacity int) int {
	value := uint32(symbol)
	for i := 0; i < len(state); i++ {
		value = 53*value + uint32(state[i])
	}
	return int(value % uint32(capacity))
}

func (t *Table) Insert(transition Transition) error {
	if err := transition.Validate(); err != nil {
		return err
	}
	if t.count >= len(t.slots) {
		return fmt.Errorf("%w: %d slots", ErrTableFull, len(t.slots))
	}

	handle, err := t.pool.New(transition)
	if err != nil {
		return fmt.Errorf("insert %v: %w", transition, err)
	}

	index := Hash(transition.CurrentSymbol, transition.CurrentState, len(t.slots))
	for !t.slots[index].IsNil() {
		index = (index + 1) % len(t.slots)
	}
	t.slots[index] = handle
	t.count++
	return nil
}

// Lookup returns ErrNoTransition when no entry matches the key.
func (t *Table) Lookup(symbol byte, state string) (Transition, error) {
	home := Hash(symbol, state, len(t.slots))
	index := home
	for {
		handle := t.slots[index]
		if handle.IsNil() {
			break
		}
		transition, err := t.pool.Get(handle)
		if err != nil {
			return Transition{}, err
		}
		if transition.CurrentSymbol == symbol &&
			transition.CurrentState == state {
			return *transition, nil
		}
		index = (index + 1) % len(t.slots)
		if index == home {
			break
		}
	}
	return Transition{}, fmt.Errorf("%w for (%c, %s)", ErrNoTransition, symbol, state)
}

func (t *Table) Len() int {
	return t.count
}

func (t *Table) Capacity() int {
	return len(t.slots)
}

// All iterates the stored transitions in slot order.
func (t *Table) All() iter.Seq2[Transition, error] {
	return func(yield func(Transition, error) bool) {
		for _, handle := range t.slots {
			if handle.IsNil() {
				continue
			}
			transition, err := t.pool.Get(handle)
			if err != nil {
				yield(Transition{}, err)
				return
			}
			if !yield(*transition, nil) {
				return
			}
		}
	}
}
