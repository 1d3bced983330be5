package corasick

import "unsafe"

// Arena is the external allocator that backs every state and output record
// the automaton creates. The automaton never frees anything it allocates
// here individually; entities live until the caller releases the whole
// arena. This mirrors the arena contract of the surrounding system, minus
// the interior-reference relocation registry (allocate_struct/make_relocatable
// with explicit offsets): a bump allocator backed by the Go runtime never
// moves live objects, so there is nothing to register for relocation. An
// implementation that wants a serializable/relocatable arena would need to
// reintroduce that registry explicitly; see DESIGN.md.
type Arena interface {
	// Reserve accounts for an allocation of n bytes, returning
	// ErrInsufficientMemory if the arena's budget is exhausted.
	Reserve(n int) error
}

// BumpArena is a simple Arena that never relocates or frees individual
// allocations. A zero-value BumpArena has no budget and never fails.
type BumpArena struct {
	budget    int64
	used      int64
	failAfter int
	allocs    int
}

// NewArena creates an unbounded BumpArena.
func NewArena() *BumpArena {
	return &BumpArena{}
}

// NewBoundedArena creates a BumpArena that fails once the total accounted
// allocation size exceeds budget bytes.
func NewBoundedArena(budget int64) *BumpArena {
	return &BumpArena{budget: budget}
}

// FailAfter makes the arena return ErrInsufficientMemory starting at the
// n-th call to Reserve (1-indexed). Used to inject allocation failures in
// tests; n == 0 disables the injection.
func (a *BumpArena) FailAfter(n int) {
	a.failAfter = n
}

// Allocs reports how many times Reserve has been called so far, failed
// calls included.
func (a *BumpArena) Allocs() int {
	return a.allocs
}

func (a *BumpArena) Reserve(n int) error {
	a.allocs++
	if a.failAfter > 0 && a.allocs >= a.failAfter {
		return ErrInsufficientMemory
	}
	if a.budget > 0 {
		a.used += int64(n)
		if a.used > a.budget {
			return ErrInsufficientMemory
		}
	}
	return nil
}

// allocate reserves space for a T in the arena and returns a freshly
// zeroed *T. The arena only tracks bytes; the Go runtime supplies the
// actual (GC-managed, non-relocating) storage.
func allocate[T any](a Arena) (*T, error) {
	var zero T
	if err := a.Reserve(int(unsafe.Sizeof(zero))); err != nil {
		return nil, err
	}
	return new(T), nil
}
