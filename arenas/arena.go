package arenas

import (
	"errors"
	"fmt"
	"iter"
)

var (
	ErrExhausted   = errors.New("arena exhausted")
	ErrInvalidSize = errors.New("invalid allocation size")
	ErrDangling    = errors.New("dangling handle")
	ErrForeign     = errors.New("handle belongs to another pool")
)

// Handle addresses one block of an Arena.
// The zero value is the nil handle.
type Handle struct {
	index uint32
	gen   uint32
}

func (h Handle) IsNil() bool {
	return h.index == 0
}

func (h Handle) String() string {
	if h.IsNil() {
		return "nil"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

type Block struct {
	Handle Handle
	Size   int
	// Prev is the block allocated before this one that is still live.
	Prev Handle
}

type slot struct {
	size  int
	prev  Handle
	gen   uint32
	owner uint32
	live  bool
}

// Arena is an indexed pool of blocks with a byte budget.
//
// Every live block is recorded in a ledger linked newest first. Any live handle
// may be released in any order: a released slot is only handed out again with a
// new generation, so handles kept after Release or ReleaseAll are reported as
// ErrDangling instead of aliasing newer blocks.
//
// An Arena is not safe for concurrent use.
type Arena struct {
	slots  []slot
	free   []uint32
	top    Handle
	used   int
	limit  int
	live   int
	pools  uint32
	resets []func()
}

// New returns an arena holding at most limit bytes. A limit <= 0 means no limit.
func New(limit int) *Arena {
	return &Arena{
		// slot 0 backs the nil handle
		slots: make([]slot, 1),
		limit: limit,
	}
}

func (a *Arena) Allocate(size int) (Handle, error) {
	return a.allocate(size, 0)
}

func (a *Arena) allocate(size int, owner uint32) (Handle, error) {
	if size <= 0 {
		return Handle{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if a.limit > 0 && a.used+size > a.limit {
		return Handle{}, fmt.Errorf("%w: %d of %d bytes in use, %d requested", ErrExhausted, a.used, a.limit, size)
	}

	var index uint32
	if n := len(a.free); n > 0 {
		index = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot{})
		index = uint32(len(a.slots) - 1)
	}

	s := &a.slots[index]
	s.gen++
	s.size = size
	s.prev = a.top
	s.owner = owner
	s.live = true

	h := Handle{
		index: index,
		gen:   s.gen,
	}
	a.top = h
	a.used += size
	a.live++
	return h, nil
}

func (a *Arena) Check(h Handle) error {
	if h.IsNil() || int(h.index) >= len(a.slots) {
		return fmt.Errorf("%w: %v", ErrDangling, h)
	}
	s := a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return fmt.Errorf("%w: %v", ErrDangling, h)
	}
	return nil
}

func (a *Arena) checkOwner(h Handle, owner uint32) error {
	if err := a.Check(h); err != nil {
		return err
	}
	if a.slots[h.index].owner != owner {
		return fmt.Errorf("%w: %v", ErrForeign, h)
	}
	return nil
}

// Release removes h from the ledger and returns its bytes to the budget.
func (a *Arena) Release(h Handle) error {
	if err := a.Check(h); err != nil {
		return err
	}

	// find the block allocated right after h
	var newer Handle
	for cur := a.top; cur != h; {
		if cur.IsNil() {
			return fmt.Errorf("%w: %v not in ledger", ErrDangling, h)
		}
		newer = cur
		cur = a.slots[cur.index].prev
	}

	s := &a.slots[h.index]
	if newer.IsNil() {
		a.top = s.prev
	} else {
		a.slots[newer.index].prev = s.prev
	}
	a.drop(h.index)
	return nil
}

func (a *Arena) drop(index uint32) {
	s := &a.slots[index]
	a.used -= s.size
	a.live--
	s.live = false
	s.size = 0
	s.prev = Handle{}
	s.owner = 0
	a.free = append(a.free, index)
}

// ReleaseAll frees every block and returns how many were freed.
func (a *Arena) ReleaseAll() int {
	n := 0
	for cur := a.top; !cur.IsNil(); {
		next := a.slots[cur.index].prev
		a.drop(cur.index)
		cur = next
		n++
	}
	a.top = Handle{}
	for _, reset := range a.resets {
		reset()
	}
	return n
}

// Blocks iterates the ledger, newest block first.
func (a *Arena) Blocks() iter.Seq[Block] {
	return func(yield func(Block) bool) {
		for cur := a.top; !cur.IsNil(); {
			s := a.slots[cur.index]
			if !yield(Block{
				Handle: cur,
				Size:   s.size,
				Prev:   s.prev,
			}) {
				return
			}
			cur = s.prev
		}
	}
}

func (a *Arena) Top() Handle {
	return a.top
}

func (a *Arena) Used() int {
	return a.used
}

func (a *Arena) Live() int {
	return a.live
}

func (a *Arena) Limit() int {
	return a.limit
}
