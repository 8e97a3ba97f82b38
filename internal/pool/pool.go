// Package pool provides a reuse arena for entities with short, high-frequency
// lifetimes (projectiles, particles, spawned minions).
//
// A Pool hands out *T values from a free list and only calls its factory when
// the free list is empty. The pool never inspects the values it manages; it
// only tracks whether each one is active or free.
package pool

// Pool is a generic free-list arena. It is not safe for concurrent use: the
// simulation mutates pools only from inside a tick.
type Pool[T any] struct {
	factory func() *T

	active []*T        // Acquisition order
	free   []*T        // LIFO free list
	member map[*T]bool // true = active, false = free; absent = never seen
	walk   []*T        // Scratch snapshot reused by ForEachActive
	depth  int         // ForEachActive nesting

	// OnRelease, if set, is called on every value as it returns to the free list.
	// Use it to zero domain fields so a recycled value starts clean.
	OnRelease func(*T)
}

// New creates a pool and pre-fills the free list with initialSize values.
// A nil factory allocates zero values.
func New[T any](factory func() *T, initialSize int) *Pool[T] {
	if factory == nil {
		factory = func() *T { return new(T) }
	}
	initialSize = max(initialSize, 0)

	p := &Pool[T]{
		factory: factory,
		active:  make([]*T, 0, initialSize),
		free:    make([]*T, 0, initialSize),
		member:  make(map[*T]bool, initialSize),
	}
	for range initialSize {
		obj := factory()
		p.free = append(p.free, obj)
		p.member[obj] = false
	}
	return p
}

// Get returns a recycled value if one is free, otherwise a new one from the factory.
// The value is appended to the active list.
func (p *Pool[T]) Get() *T {
	var obj *T
	if n := len(p.free); n > 0 {
		obj = p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	} else {
		obj = p.factory()
	}
	p.active = append(p.active, obj)
	p.member[obj] = true
	return obj
}

// Release moves obj from the active list to the free list.
// Releasing a value that is not currently active is a no-op and returns false.
func (p *Pool[T]) Release(obj *T) bool {
	if obj == nil || !p.member[obj] {
		return false
	}

	// Ordered removal keeps the active list in acquisition order,
	// which the collision pipeline relies on for deterministic iteration.
	for i := len(p.active) - 1; i >= 0; i-- {
		if p.active[i] == obj {
			copy(p.active[i:], p.active[i+1:])
			p.active[len(p.active)-1] = nil
			p.active = p.active[:len(p.active)-1]
			break
		}
	}

	p.member[obj] = false
	if p.OnRelease != nil {
		p.OnRelease(obj)
	}
	p.free = append(p.free, obj)
	return true
}

// ReleaseAll flushes every active value back to the free list. Used on reset.
func (p *Pool[T]) ReleaseAll() {
	for i := len(p.active) - 1; i >= 0; i-- {
		obj := p.active[i]
		p.active[i] = nil
		p.member[obj] = false
		if p.OnRelease != nil {
			p.OnRelease(obj)
		}
		p.free = append(p.free, obj)
	}
	p.active = p.active[:0]
}

// ForEachActive calls fn for every active value in reverse acquisition order.
//
// The walk runs over a snapshot, so fn may Release the value it was handed
// (or any other value) without causing a skip or a duplicate visit. Values
// released before their turn are not visited; values acquired during the
// walk are not visited either.
func (p *Pool[T]) ForEachActive(fn func(*T)) {
	if len(p.active) == 0 {
		return
	}

	var snap []*T
	if p.depth == 0 {
		p.walk = append(p.walk[:0], p.active...)
		snap = p.walk
	} else {
		snap = append([]*T(nil), p.active...)
	}
	p.depth++
	defer func() {
		p.depth--
		if p.depth == 0 {
			clear(p.walk)
			p.walk = p.walk[:0]
		}
	}()

	for i := len(snap) - 1; i >= 0; i-- {
		obj := snap[i]
		if !p.member[obj] {
			continue
		}
		fn(obj)
	}
}

// Active returns the active values in acquisition order.
// The slice is owned by the pool and only valid until the next mutation.
func (p *Pool[T]) Active() []*T {
	return p.active
}

// IsActive reports whether obj is currently handed out.
func (p *Pool[T]) IsActive(obj *T) bool {
	return p.member[obj]
}

// ActiveLen returns the number of active values.
func (p *Pool[T]) ActiveLen() int {
	return len(p.active)
}

// FreeLen returns the number of values waiting on the free list.
func (p *Pool[T]) FreeLen() int {
	return len(p.free)
}

// Owned returns the number of distinct values the pool has ever created.
func (p *Pool[T]) Owned() int {
	return len(p.member)
}
