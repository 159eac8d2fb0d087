// Package collection provides an ordered, observable sequence whose
// notifications can be suppressed and collapsed into a single Reset.
//
// A Batched collection is not safe for concurrent use. It is meant to be owned
// by one goroutine (for a TUI, the update loop) and all notifications are
// delivered inline before the mutating call returns.
package collection

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when a batched append is given no sequence
var ErrInvalidArgument = errors.New("invalid argument")

// subscription wraps an observer so it can be removed by identity
type subscription[T any] struct {
	fn Observer[T]
}

// Batched is an ordered sequence of T that announces every structural change
// unless it is suppressed. Ending a suppression emits exactly one Reset.
type Batched[T any] struct {
	items      []T
	suppressed bool
	observers  []*subscription[T]
}

// New creates an empty collection
func New[T any]() *Batched[T] {
	return &Batched[T]{
		items: make([]T, 0),
	}
}

// Append adds item at the end. Outside suppression it emits Insert.
func (b *Batched[T]) Append(item T) {
	b.items = append(b.items, item)
	if !b.suppressed {
		b.notify(Change[T]{Kind: Insert, Index: len(b.items) - 1, Item: item})
	}
}

// AppendRange appends all items as one batch and emits a single Reset once
// the batch completes. A nil slice is rejected with ErrInvalidArgument and
// leaves the collection untouched; an empty slice still emits Reset.
func (b *Batched[T]) AppendRange(items []T) error {
	if items == nil {
		return fmt.Errorf("append range: nil sequence: %w", ErrInvalidArgument)
	}

	resume := b.Suppress()
	defer resume()

	for _, item := range items {
		b.Append(item)
	}
	return nil
}

// Clear removes all items. Outside suppression it emits a single Reset rather
// than one removal per item.
func (b *Batched[T]) Clear() {
	clear(b.items)
	b.items = b.items[:0]
	if !b.suppressed {
		b.notify(Change[T]{Kind: Reset})
	}
}

// Suppress silences notifications until resume is called. Resume restores the
// previous suppression state and, when that ends suppression, emits one
// Reset. Calling resume more than once has no further effect.
func (b *Batched[T]) Suppress() (resume func()) {
	prev := b.suppressed
	b.suppressed = true

	done := false
	return func() {
		if done {
			return
		}
		done = true
		b.suppressed = prev
		if !prev {
			b.notify(Change[T]{Kind: Reset})
		}
	}
}

// Subscribe registers an observer and returns a function that removes it
func (b *Batched[T]) Subscribe(observer Observer[T]) func() {
	sub := &subscription[T]{fn: observer}
	b.observers = append(b.observers, sub)

	return func() {
		for i, s := range b.observers {
			if s == sub {
				b.observers = append(b.observers[:i:i], b.observers[i+1:]...)
				return
			}
		}
	}
}

// Items returns a copy of the current contents
func (b *Batched[T]) Items() []T {
	items := make([]T, len(b.items))
	copy(items, b.items)
	return items
}

// Len returns the number of items
func (b *Batched[T]) Len() int {
	return len(b.items)
}

// At returns the item at index i. It panics if i is out of range.
func (b *Batched[T]) At(i int) T {
	return b.items[i]
}

// Suppressed reports whether notifications are currently suppressed
func (b *Batched[T]) Suppressed() bool {
	return b.suppressed
}

// notify delivers change to a snapshot of the observers so that an observer
// unsubscribing itself does not disturb the iteration.
func (b *Batched[T]) notify(change Change[T]) {
	observers := make([]*subscription[T], len(b.observers))
	copy(observers, b.observers)

	for _, sub := range observers {
		sub.fn(change)
	}
}
