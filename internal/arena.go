package internal

// A fixed-capacity, bump-allocated store. Items are addressed by index and
// never freed individually; slot 0 is a zero-valued sentinel so that index 0
// can mean "absent" everywhere. The backing slice is sized once, so pointers to
// items stay valid across allocations.
type arena[T any] struct {
	name  string
	items []T
	next  int
}

func newArena[T any](name string, capacity int) *arena[T] {
	return &arena[T]{name: name, items: make([]T, capacity+1), next: 1}
}

// Clear all used slots and resize to exactly capacity items. Slots past the
// cursor are always zero, so shrinking and regrowing within the backing array
// needs no extra clearing.
func (a *arena[T]) reset(capacity int) {
	clear(a.items[:a.next])
	if capacity+1 > cap(a.items) {
		a.items = make([]T, capacity+1)
	} else {
		a.items = a.items[:capacity+1]
	}
	a.next = 1
}

func (a *arena[T]) alloc() int {
	if a.next >= len(a.items) {
		throw(ErrCapacityExceeded, "%s table overflow at %d entries", a.name, len(a.items)-1)
	}
	id := a.next
	a.next++
	return id
}

func (a *arena[T]) at(id int) *T {
	return &a.items[id]
}

// Number of allocated items, not counting the sentinel.
func (a *arena[T]) len() int {
	return a.next - 1
}

func (a *arena[T]) capacity() int {
	return len(a.items) - 1
}
