package unitofwork

import "sync"

// Ref guards a mutable value shared between goroutines. Reads take a
// shared lock; Set and Update take the exclusive one.
type Ref[T any] struct {
	mu  sync.RWMutex
	val T
}

// NewRef creates a Ref holding val.
func NewRef[T any](val T) *Ref[T] {
	return &Ref[T]{val: val}
}

// Get returns a copy of the value.
func (r *Ref[T]) Get() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.val
}

// Set replaces the value.
func (r *Ref[T]) Set(val T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.val = val
}

// Update applies fn to the value under the write lock.
func (r *Ref[T]) Update(fn func(*T)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fn(&r.val)
}

// View applies fn to the value under the read lock. fn must not modify it.
func (r *Ref[T]) View(fn func(T)) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn(r.val)
}
