// Package event provides synchronous notification feeds with explicit unsubscribe handles.
package event

import (
	"slices"

	"github.com/google/uuid"
)

// Unsubscribe removes a listener. Calling it more than once is a no-op.
type Unsubscribe func()

type listener[T any] struct {
	id uuid.UUID
	fn func(T)
}

// Feed delivers values to its listeners in registration order, on the
// emitter's call stack.
type Feed[T any] struct {
	listeners []listener[T]
}

func (f *Feed[T]) Subscribe(fn func(T)) Unsubscribe {
	id := uuid.New()
	f.listeners = append(f.listeners, listener[T]{id: id, fn: fn})
	return func() {
		f.listeners = slices.DeleteFunc(f.listeners, func(l listener[T]) bool {
			return l.id == id
		})
	}
}

// Emit calls every listener registered at the time of the call. Listeners
// added or removed by a handler take effect from the next Emit.
func (f *Feed[T]) Emit(value T) {
	snapshot := slices.Clone(f.listeners)
	for _, l := range snapshot {
		l.fn(value)
	}
}

func (f *Feed[T]) Len() int {
	return len(f.listeners)
}

// Signal is a feed without a payload.
type Signal struct {
	feed Feed[struct{}]
}

func (s *Signal) Subscribe(fn func()) Unsubscribe {
	return s.feed.Subscribe(func(struct{}) { fn() })
}

func (s *Signal) Emit() {
	s.feed.Emit(struct{}{})
}

func (s *Signal) Len() int {
	return s.feed.Len()
}

// Group collects unsubscribe handles so an owner can drop them together.
type Group []Unsubscribe

func (g *Group) Add(u Unsubscribe) {
	*g = append(*g, u)
}

func (g *Group) Close() {
	for _, u := range *g {
		u()
	}
	*g = nil
}
