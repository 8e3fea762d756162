package tapes

import (
	"iter"
	"strings"

	"github.com/reusee/turing/arenas"
)

const Blank byte = '_'

func IsBlank(symbol byte) bool {
	return symbol == Blank || symbol == ' '
}

type Cell struct {
	Symbol byte
	Prev   arenas.Handle // back reference, never owning
	Next   arenas.Handle
}

// Tape is a doubly linked chain of cells materialized on demand at either end.
// Cells are never removed one by one; they go away with the arena.
type Tape struct {
	pool  *arenas.Pool[Cell]
	head  arenas.Handle
	tail  arenas.Handle
	count int
}

func New(arena *arenas.Arena) *Tape {
	return &Tape{
		pool: arenas.NewPool[Cell](arena),
	}
}

func (t *Tape) AppendRight(symbol byte) (arenas.Handle, error) {
	handle, err := t.pool.New(Cell{
		Symbol: symbol,
		Prev:   t.tail,
	})
	if err != nil {
		return handle, err
	}
	if t.tail.IsNil() {
		t.head = handle
	} else {
		tail, err := t.pool.Get(t.tail)
		if err != nil {
			return arenas.Handle{}, err
		}
		tail.Next = handle
	}
	t.tail = handle
	t.count++
	return handle, nil
}

func (t *Tape) AppendLeft(symbol byte) (arenas.Handle, error) {
	handle, err := t.pool.New(Cell{
		Symbol: symbol,
		Next:   t.head,
	})
	if err != nil {
		return handle, err
	}
	if t.head.IsNil() {
		t.tail = handle
	} else {
		head, err := t.pool.Get(t.head)
		if err != nil {
			return arenas.Handle{}, err
		}
		head.Prev = handle
	}
	t.head = handle
	t.count++
	return handle, nil
}

// Load appends every byte of line, spaces written as Blank.
func (t *Tape) Load(line string) error {
	for i := 0; i < len(line); i++ {
		symbol := line[i]
		if symbol == ' ' {
			symbol = Blank
		}
		if _, err := t.AppendRight(symbol); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tape) Head() arenas.Handle {
	return t.head
}

func (t *Tape) Tail() arenas.Handle {
	return t.tail
}

func (t *Tape) Len() int {
	return t.count
}

func (t *Tape) Symbol(h arenas.Handle) (byte, error) {
	cell, err := t.pool.Get(h)
	if err != nil {
		return 0, err
	}
	return cell.Symbol, nil
}

func (t *Tape) SetSymbol(h arenas.Handle, symbol byte) error {
	cell, err := t.pool.Get(h)
	if err != nil {
		return err
	}
	cell.Symbol = symbol
	return nil
}

func (t *Tape) Next(h arenas.Handle) (arenas.Handle, error) {
	cell, err := t.pool.Get(h)
	if err != nil {
		return arenas.Handle{}, err
	}
	return cell.Next, nil
}

func (t *Tape) Prev(h arenas.Handle) (arenas.Handle, error) {
	cell, err := t.pool.Get(h)
	if err != nil {
		return arenas.Handle{}, err
	}
	return cell.Prev, nil
}

// Cells iterates from head to tail.
func (t *Tape) Cells() iter.Seq2[arenas.Handle, error] {
	return func(yield func(arenas.Handle, error) bool) {
		for cur := t.head; !cur.IsNil(); {
			cell, err := t.pool.Get(cur)
			if err != nil {
				yield(arenas.Handle{}, err)
				return
			}
			if !yield(cur, nil) {
				return
			}
			cur = cell.Next
		}
	}
}

// FirstNonBlank returns the nil handle when every cell is blank.
func (t *Tape) FirstNonBlank() (arenas.Handle, error) {
	for cur := t.head; !cur.IsNil(); {
		cell, err := t.pool.Get(cur)
		if err != nil {
			return arenas.Handle{}, err
		}
		if !IsBlank(cell.Symbol) {
			return cur, nil
		}
		cur = cell.Next
	}
	return arenas.Handle{}, nil
}

func (t *Tape) lastNonBlank() (arenas.Handle, error) {
	for cur := t.tail; !cur.IsNil(); {
		cell, err := t.pool.Get(cur)
		if err != nil {
			return arenas.Handle{}, err
		}
		if !IsBlank(cell.Symbol) {
			return cur, nil
		}
		cur = cell.Prev
	}
	return arenas.Handle{}, nil
}

// Render returns the symbols between the first and the last non-blank cell.
// Interior blanks are kept. An empty or all blank tape renders as "".
func (t *Tape) Render() (string, error) {
	first, err := t.FirstNonBlank()
	if err != nil {
		return "", err
	}
	last, err := t.lastNonBlank()
	if err != nil {
		return "", err
	}
	if first.IsNil() || last.IsNil() {
		return "", nil
	}

	var b strings.Builder
	for cur := first; ; {
		cell, err := t.pool.Get(cur)
		if err != nil {
			return "", err
		}
		b.WriteByte(cell.Symbol)
		if cur == last {
			break
		}
		cur = cell.Next
	}
	return b.String(), nil
}

// String renders every cell, blanks included.
func (t *Tape) String() string {
	var b strings.Builder
	for h, err := range t.Cells() {
		if err != nil {
			break
		}
		symbol, _ := t.Symbol(h)
		b.WriteByte(symbol)
	}
	return b.String()
}
