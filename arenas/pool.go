package arenas

import "reflect"

// Pool stores values of one type in blocks carved from an Arena.
type Pool[T any] struct {
	arena  *Arena
	id     uint32
	size   int
	values []T
}

func NewPool[T any](arena *Arena) *Pool[T] {
	size := int(reflect.TypeFor[T]().Size())
	if size == 0 {
		size = 1
	}
	arena.pools++
	p := &Pool[T]{
		arena: arena,
		id:    arena.pools,
		size:  size,
	}
	arena.resets = append(arena.resets, func() {
		p.values = nil
	})
	return p
}

func (p *Pool[T]) Arena() *Arena {
	return p.arena
}

// BlockSize is the number of bytes each value takes from the arena budget.
func (p *Pool[T]) BlockSize() int {
	return p.size
}

func (p *Pool[T]) New(value T) (Handle, error) {
	h, err := p.arena.allocate(p.size, p.id)
	if err != nil {
		return h, err
	}
	if n := int(h.index) + 1; n > len(p.values) {
		if n <= cap(p.values) {
			p.values = p.values[:n]
		} else {
			p.values = append(p.values, make([]T, n-len(p.values))...)
		}
	}
	p.values[h.index] = value
	return h, nil
}

// Get returns the value behind h. The pointer is valid until h is released.
func (p *Pool[T]) Get(h Handle) (*T, error) {
	if err := p.arena.checkOwner(h, p.id); err != nil {
		return nil, err
	}
	return &p.values[h.index], nil
}

func (p *Pool[T]) Release(h Handle) error {
	if err := p.arena.checkOwner(h, p.id); err != nil {
		return err
	}
	var zero T
	p.values[h.index] = zero
	return p.arena.Release(h)
}
