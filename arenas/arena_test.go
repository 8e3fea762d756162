package arenas

import (
	"errors"
	"slices"
	"testing"
)

func TestAllocateLedger(t *testing.T) {
	arena := New(0)
	var handles []Handle
	for i := 1; i <= 4; i++ {
		h, err := arena.Allocate(i * 8)
		if err != nil {
			t.Fatal(err)
		}
		handles = append(handles, h)
	}
	if arena.Used() != 8+16+24+32 {
		t.Fatalf("got %v", arena.Used())
	}
	if arena.Live() != 4 {
		t.Fatalf("got %v", arena.Live())
	}

	var order []Handle
	for block := range arena.Blocks() {
		order = append(order, block.Handle)
	}
	slices.Reverse(order)
	if !slices.Equal(order, handles) {
		t.Fatalf("got %v, want %v", order, handles)
	}
	if arena.Top() != handles[3] {
		t.Fatalf("got %v", arena.Top())
	}
}

func TestReleaseOutOfOrder(t *testing.T) {
	arena := New(0)
	a, _ := arena.Allocate(1)
	b, _ := arena.Allocate(2)
	c, _ := arena.Allocate(3)

	// middle of the ledger
	if err := arena.Release(b); err != nil {
		t.Fatal(err)
	}
	if arena.Used() != 4 {
		t.Fatalf("got %v", arena.Used())
	}
	var sizes []int
	for block := range arena.Blocks() {
		sizes = append(sizes, block.Size)
	}
	if !slices.Equal(sizes, []int{3, 1}) {
		t.Fatalf("got %v", sizes)
	}

	// oldest
	if err := arena.Release(a); err != nil {
		t.Fatal(err)
	}
	// newest
	if err := arena.Release(c); err != nil {
		t.Fatal(err)
	}
	if arena.Live() != 0 || arena.Used() != 0 || !arena.Top().IsNil() {
		t.Fatalf("got live %d used %d top %v", arena.Live(), arena.Used(), arena.Top())
	}
}

func TestDanglingHandle(t *testing.T) {
	arena := New(0)
	h, _ := arena.Allocate(8)
	if err := arena.Release(h); err != nil {
		t.Fatal(err)
	}
	if err := arena.Release(h); !errors.Is(err, ErrDangling) {
		t.Fatalf("got %v", err)
	}

	// slot reused with a new generation
	h2, _ := arena.Allocate(8)
	if h2 == h {
		t.Fatal("handle reused without new generation")
	}
	if err := arena.Check(h); !errors.Is(err, ErrDangling) {
		t.Fatalf("got %v", err)
	}
	if err := arena.Check(h2); err != nil {
		t.Fatal(err)
	}

	if err := arena.Check(Handle{}); !errors.Is(err, ErrDangling) {
		t.Fatalf("got %v", err)
	}
}

func TestExhausted(t *testing.T) {
	arena := New(16)
	if _, err := arena.Allocate(10); err != nil {
		t.Fatal(err)
	}
	_, err := arena.Allocate(7)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("got %v", err)
	}
	if arena.Live() != 1 {
		t.Fatalf("got %v", arena.Live())
	}
	if _, err := arena.Allocate(6); err != nil {
		t.Fatal(err)
	}

	if _, err := arena.Allocate(0); !errors.Is(err, ErrInvalidSize) {
		t.Fatalf("got %v", err)
	}
}

func TestReleaseAll(t *testing.T) {
	arena := New(0)
	var handles []Handle
	for range 10 {
		h, err := arena.Allocate(4)
		if err != nil {
			t.Fatal(err)
		}
		handles = append(handles, h)
	}
	if n := arena.ReleaseAll(); n != 10 {
		t.Fatalf("got %v", n)
	}
	if arena.Used() != 0 || arena.Live() != 0 {
		t.Fatal()
	}
	for _, h := range handles {
		if err := arena.Check(h); !errors.Is(err, ErrDangling) {
			t.Fatalf("got %v", err)
		}
	}
	if n := arena.ReleaseAll(); n != 0 {
		t.Fatalf("got %v", n)
	}
}

func TestPool(t *testing.T) {
	type point struct {
		X, Y int
	}
	arena := New(0)
	points := NewPool[point](arena)
	names := NewPool[string](arena)

	p, err := points.New(point{1, 2})
	if err != nil {
		t.Fatal(err)
	}
	n, err := names.New("foo")
	if err != nil {
		t.Fatal(err)
	}

	v, err := points.Get(p)
	if err != nil {
		t.Fatal(err)
	}
	v.X = 42
	v, _ = points.Get(p)
	if v.X != 42 || v.Y != 2 {
		t.Fatalf("got %+v", v)
	}

	if _, err := points.Get(n); !errors.Is(err, ErrForeign) {
		t.Fatalf("got %v", err)
	}

	if arena.Used() != points.BlockSize()+names.BlockSize() {
		t.Fatalf("got %v", arena.Used())
	}

	if err := points.Release(p); err != nil {
		t.Fatal(err)
	}
	if _, err := points.Get(p); !errors.Is(err, ErrDangling) {
		t.Fatalf("got %v", err)
	}

	arena.ReleaseAll()
	if _, err := names.Get(n); !errors.Is(err, ErrDangling) {
		t.Fatalf("got %v", err)
	}

	// usable again after teardown
	n2, err := names.New("bar")
	if err != nil {
		t.Fatal(err)
	}
	s, err := names.Get(n2)
	if err != nil {
		t.Fatal(err)
	}
	if *s != "bar" {
		t.Fatalf("got %v", *s)
	}
}

func TestPoolExhausted(t *testing.T) {
	arena := New(0)
	probe := NewPool[int64](arena)
	arena = New(probe.BlockSize() * 3)
	ints := NewPool[int64](arena)
	for i := range 3 {
		if _, err := ints.New(int64(i)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := ints.New(3); !errors.Is(err, ErrExhausted) {
		t.Fatalf("got %v", err)
	}
}
