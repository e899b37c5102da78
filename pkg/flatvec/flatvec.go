// Package flatvec implements an immutable array backed by a single flat
// slice. Every update copies the whole slice, so it only suits small sizes.
package flatvec

import "fmt"

// Array is an immutable sequence. The zero value is an empty array.
type Array[T any] struct {
	items []T
}

// Len returns the number of elements.
func (a Array[T]) Len() int { return len(a.items) }

// Get returns the element at i.
func (a Array[T]) Get(i int) T { return a.items[i] }

// Append returns a new array with x added at the end.
func (a Array[T]) Append(x T) Array[T] {
	items := make([]T, len(a.items)+1)
	copy(items, a.items)
	items[len(a.items)] = x
	return Array[T]{items: items}
}

// Set returns a new array with the element at i replaced by x.
func (a Array[T]) Set(i int, x T) Array[T] {
	if i < 0 || i >= len(a.items) {
		panic(fmt.Sprintf("flatvec: index %d out of range [0, %d)", i, len(a.items)))
	}
	items := make([]T, len(a.items))
	copy(items, a.items)
	items[i] = x
	return Array[T]{items: items}
}
