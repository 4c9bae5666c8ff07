// Package smartarray provides SmartArray, a fixed-size container that owns
// its elements and guards them with a single reader/writer lock.
//
// The type walks through the full lifecycle of an owning value:
//
//	a := smartarray.NewSized[int](5, "Array1") // sized construction
//	b := a.Clone()                             // deep copy, a untouched
//	c := a.Move()                              // ownership transfer, a emptied
//	b.CopyFrom(c)                              // copy assignment
//	b.MoveFrom(c)                              // move assignment
//	b.Release()                                // storage released exactly once
//
// The zero value is an empty, unnamed array with no tracker. A SmartArray
// must not be copied by value after first use; always pass *SmartArray.
package smartarray

import (
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/constraints"
)

// DefaultName is the label given to arrays built with New.
const DefaultName = "Default"

// Number is the element constraint. Fill needs + on T.
type Number interface {
	constraints.Integer | constraints.Float
}

// SmartArray is an owning, lock-guarded array of T.
//
// data and its length are only read or written with mu held, so readers
// never observe storage from one state paired with a count from another.
type SmartArray[T Number] struct {
	mu       sync.RWMutex
	data     []T
	name     string
	released bool

	id      uuid.UUID
	tracker *Tracker
	log     logrus.FieldLogger
}

func newArray[T Number](name string, opts []Option) *SmartArray[T] {
	o := buildOptions(opts)
	return &SmartArray[T]{
		name:    name,
		id:      uuid.New(),
		tracker: o.tracker,
		log:     o.logger,
	}
}

// derive returns an empty array sharing a's tracker and logger.
func (a *SmartArray[T]) derive(name string) *SmartArray[T] {
	return &SmartArray[T]{
		name:    name,
		id:      uuid.New(),
		tracker: a.tracker,
		log:     a.log,
	}
}

// New returns an empty array named DefaultName.
func New[T Number](opts ...Option) *SmartArray[T] {
	a := newArray[T](DefaultName, opts)
	a.trace("default constructor called", a.name, 0)
	return a
}

// NewSized allocates n zero-valued elements. A negative n panics, the same
// way make does.
func NewSized[T Number](n int, name string, opts ...Option) *SmartArray[T] {
	if n < 0 {
		panic(fmt.Sprintf("smartarray: negative size %d for %q", n, name))
	}
	a := newArray[T](name, opts)
	a.data = a.alloc(n)
	a.trace("constructor allocated elements", a.name, n)
	return a
}

// Clone is the copy constructor: fresh storage, every element copied in
// order, name suffixed with "_copied". a is not modified.
func (a *SmartArray[T]) Clone() *SmartArray[T] {
	a.mu.RLock()
	c := a.derive(a.name + "_copied")
	c.data = c.alloc(len(a.data))
	copy(c.data, a.data)
	a.mu.RUnlock()

	c.tracker.addCopy()
	c.trace("copy constructor called", c.name, len(c.data))
	return c
}

// Move is the move constructor: the returned array takes a's storage
// without copying and a is left empty, so releasing a later does not touch
// storage it no longer owns.
func (a *SmartArray[T]) Move() *SmartArray[T] {
	a.mu.Lock()
	m := a.derive(a.name + "_moved")
	m.data = a.data
	a.data = nil
	a.mu.Unlock()

	m.tracker.addMove()
	m.trace("move constructor called", m.name, len(m.data))
	return m
}

// CopyFrom is copy assignment (a = src). Assigning an array to itself is a
// no-op. The copy is built before a is locked, so a is never left half
// updated.
func (a *SmartArray[T]) CopyFrom(src *SmartArray[T]) *SmartArray[T] {
	if a == src {
		return a
	}

	src.mu.RLock()
	data := a.alloc(len(src.data))
	copy(data, src.data)
	name := src.name + "_copy_assigned"
	src.mu.RUnlock()

	a.mu.Lock()
	a.releaseStorage()
	a.data, a.name, a.released = data, name, false
	a.mu.Unlock()

	a.tracker.addCopy()
	a.trace("copy assignment called", name, len(data))
	return a
}

// MoveFrom is move assignment (a = std::move(src)). Assigning an array to
// itself is a no-op. src is reset to the empty state. When the two arrays
// use different trackers, the storage is counted as released in src's and
// allocated in a's, so each tracker's Live stays correct.
//
// The two locks are taken one after the other, never together, so
// a.MoveFrom(b) racing b.MoveFrom(a) cannot deadlock.
func (a *SmartArray[T]) MoveFrom(src *SmartArray[T]) *SmartArray[T] {
	if a == src {
		return a
	}

	src.mu.Lock()
	data := src.data
	name := src.name + "_move_assigned"
	src.data = nil
	src.mu.Unlock()

	if data != nil && src.tracker != a.tracker {
		src.tracker.addRelease()
		a.tracker.addAllocation()
	}

	a.mu.Lock()
	a.releaseStorage()
	a.data, a.name, a.released = data, name, false
	a.mu.Unlock()

	a.tracker.addMove()
	a.trace("move assignment called", name, len(data))
	return a
}

// Release frees the storage. Only the first call has any effect; calling it
// on an empty array is fine.
func (a *SmartArray[T]) Release() {
	a.mu.Lock()
	if a.released {
		a.mu.Unlock()
		return
	}
	a.released = true
	n := len(a.data)
	a.releaseStorage()
	name := a.name
	a.mu.Unlock()

	a.trace("destructor called", name, n)
}

// Fill is FillStep(v, 1).
func (a *SmartArray[T]) Fill(v T) {
	a.FillStep(v, 1)
}

// FillStep writes the progression v, v+step, v+2*step, ... across the
// array. Empty arrays are left alone.
func (a *SmartArray[T]) FillStep(v, step T) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.data) < 1 {
		return
	}
	a.data[0] = v
	for i := 1; i < len(a.data); i++ {
		a.data[i] = a.data[i-1] + step
	}
}

// Write stores v at index under the exclusive lock.
func (a *SmartArray[T]) Write(index int, v T) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if index < 0 || index >= len(a.data) {
		return &IndexError{Name: a.name, Index: index, Len: len(a.data)}
	}
	a.data[index] = v
	return nil
}

// At returns the element at index under the shared lock.
func (a *SmartArray[T]) At(index int) (T, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if index < 0 || index >= len(a.data) {
		var zero T
		return zero, &IndexError{Name: a.name, Index: index, Len: len(a.data)}
	}
	return a.data[index], nil
}

// Sort orders the elements ascending.
func (a *SmartArray[T]) Sort() {
	a.mu.Lock()
	defer a.mu.Unlock()
	slices.Sort(a.data)
}

// All yields index/value pairs in order. The shared lock is held for the
// whole pass, so the loop body must not call any other method on the same
// array: read locks are not reentrant once a writer is waiting. Each range
// over the sequence starts a new pass.
func (a *SmartArray[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		a.mu.RLock()
		defer a.mu.RUnlock()
		for i, v := range a.data {
			if !yield(i, v) {
				return
			}
		}
	}
}

// Values is All without the indices.
func (a *SmartArray[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		a.mu.RLock()
		defer a.mu.RUnlock()
		for _, v := range a.data {
			if !yield(v) {
				return
			}
		}
	}
}

// Snapshot returns a copy of the elements. It is nil for an empty array.
func (a *SmartArray[T]) Snapshot() []T {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return slices.Clone(a.data)
}

func (a *SmartArray[T]) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.data)
}

func (a *SmartArray[T]) Name() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.name
}

// ID identifies this instance in trace output. Clones and moves get their
// own ID.
func (a *SmartArray[T]) ID() uuid.UUID { return a.id }

// String renders the contents, e.g. "Contents of Array1 (3 elements): 10 11 12".
func (a *SmartArray[T]) String() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var b strings.Builder
	fmt.Fprintf(&b, "Contents of %s (%d elements):", a.name, len(a.data))
	if len(a.data) == 0 {
		b.WriteString(" (empty)")
		return b.String()
	}
	for _, v := range a.data {
		fmt.Fprintf(&b, " %v", v)
	}
	return b.String()
}

// alloc returns storage for n elements; n == 0 allocates nothing.
func (a *SmartArray[T]) alloc(n int) []T {
	if n == 0 {
		return nil
	}
	a.tracker.addAllocation()
	return make([]T, n)
}

// releaseStorage drops the current storage. Caller holds mu.
func (a *SmartArray[T]) releaseStorage() {
	if a.data == nil {
		return
	}
	a.tracker.addRelease()
	a.data = nil
}

func (a *SmartArray[T]) trace(msg, name string, n int) {
	log := a.log
	if log == nil {
		log = discard
	}
	log.WithFields(logrus.Fields{
		"name": name,
		"id":   a.id,
		"len":  n,
	}).Info(msg)
}
