// Package pvec implements a persistent radix-balanced vector with a
// configurable branching factor.
//
// Every Append and Set returns a new Vector and leaves the receiver
// untouched. Unmodified nodes are shared between versions, so an update
// copies only the path from the root to the affected leaf.
package pvec

import "fmt"

// MinBits and MaxBits bound the branching factor (2^bits children per node).
const (
	MinBits = 1
	MaxBits = 8
)

type node[T any] struct {
	kids []*node[T]
	vals []T
}

// Vector is an immutable sequence. The zero value is not usable; call New.
type Vector[T any] struct {
	bits   uint
	width  int
	mask   int
	cnt    int
	shift  uint
	root   *node[T]
	tail   []T
	noTail bool
}

// Option configures a Vector at construction.
type Option func(*options)

type options struct {
	noTail bool
}

// WithoutTail disables the tail buffer. Every append then path-copies
// into the trie instead of filling a detached leaf first.
func WithoutTail() Option {
	return func(o *options) { o.noTail = true }
}

// New returns an empty vector with 2^bits children per node.
// Panics if bits is outside [MinBits, MaxBits].
func New[T any](bits int, opts ...Option) *Vector[T] {
	if bits < MinBits || bits > MaxBits {
		panic(fmt.Sprintf("pvec: bits must be in [%d, %d], got %d", MinBits, MaxBits, bits))
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	v := &Vector[T]{
		bits:   uint(bits),
		width:  1 << bits,
		mask:   1<<bits - 1,
		noTail: o.noTail,
	}
	if o.noTail {
		// Root starts as a single leaf at shift 0.
		v.root = &node[T]{}
	} else {
		v.shift = uint(bits)
		v.root = &node[T]{}
	}
	return v
}

// Len returns the number of elements.
func (v *Vector[T]) Len() int { return v.cnt }

// Bits returns the configured branching exponent.
func (v *Vector[T]) Bits() int { return int(v.bits) }

// Get returns the element at i. Panics if i is out of range.
func (v *Vector[T]) Get(i int) T {
	v.checkIndex(i)
	return v.leafFor(i)[i&v.mask]
}

// Append returns a new vector with x added at the end.
func (v *Vector[T]) Append(x T) *Vector[T] {
	if v.noTail {
		return v.appendTrie(x)
	}
	return v.appendTail(x)
}

// Set returns a new vector with the element at i replaced by x.
// Panics if i is out of range.
func (v *Vector[T]) Set(i int, x T) *Vector[T] {
	v.checkIndex(i)

	out := *v
	if !v.noTail && i >= v.tailOffset() {
		tail := make([]T, len(v.tail))
		copy(tail, v.tail)
		tail[i&v.mask] = x
		out.tail = tail
		return &out
	}
	out.root = v.assoc(v.shift, v.root, i, x)
	return &out
}

func (v *Vector[T]) checkIndex(i int) {
	if i < 0 || i >= v.cnt {
		panic(fmt.Sprintf("pvec: index %d out of range [0, %d)", i, v.cnt))
	}
}

func (v *Vector[T]) tailOffset() int {
	if v.noTail {
		return v.cnt
	}
	if v.cnt < v.width {
		return 0
	}
	return ((v.cnt - 1) >> v.bits) << v.bits
}

func (v *Vector[T]) leafFor(i int) []T {
	if !v.noTail && i >= v.tailOffset() {
		return v.tail
	}
	n := v.root
	for level := v.shift; level > 0; level -= v.bits {
		n = n.kids[(i>>level)&v.mask]
	}
	return n.vals
}

func (v *Vector[T]) assoc(level uint, n *node[T], i int, x T) *node[T] {
	if level == 0 {
		vals := make([]T, len(n.vals))
		copy(vals, n.vals)
		vals[i&v.mask] = x
		return &node[T]{vals: vals}
	}
	kids := make([]*node[T], len(n.kids))
	copy(kids, n.kids)
	sub := (i >> level) & v.mask
	kids[sub] = v.assoc(level-v.bits, n.kids[sub], i, x)
	return &node[T]{kids: kids}
}

func (v *Vector[T]) appendTail(x T) *Vector[T] {
	out := *v
	out.cnt = v.cnt + 1

	if v.cnt-v.tailOffset() < v.width {
		tail := make([]T, len(v.tail), len(v.tail)+1)
		copy(tail, v.tail)
		out.tail = append(tail, x)
		return &out
	}

	// Tail is full: push it into the trie and start a new one.
	leaf := &node[T]{vals: v.tail}
	if (v.cnt >> v.bits) > (1 << v.shift) {
		out.root = &node[T]{kids: []*node[T]{v.root, v.newPath(v.shift, leaf)}}
		out.shift = v.shift + v.bits
	} else {
		out.root = v.pushTail(v.shift, v.root, leaf)
	}
	out.tail = []T{x}
	return &out
}

func (v *Vector[T]) pushTail(level uint, parent, leaf *node[T]) *node[T] {
	sub := ((v.cnt - 1) >> level) & v.mask
	kids := make([]*node[T], len(parent.kids), max(len(parent.kids), sub+1))
	copy(kids, parent.kids)

	var child *node[T]
	switch {
	case level == v.bits:
		child = leaf
	case sub < len(parent.kids):
		child = v.pushTail(level-v.bits, parent.kids[sub], leaf)
	default:
		child = v.newPath(level-v.bits, leaf)
	}

	if sub < len(kids) {
		kids[sub] = child
	} else {
		kids = append(kids, child)
	}
	return &node[T]{kids: kids}
}

func (v *Vector[T]) newPath(level uint, n *node[T]) *node[T] {
	if level == 0 {
		return n
	}
	return &node[T]{kids: []*node[T]{v.newPath(level-v.bits, n)}}
}

func (v *Vector[T]) appendTrie(x T) *Vector[T] {
	out := *v
	out.cnt = v.cnt + 1

	if v.cnt == 1<<(v.shift+v.bits) {
		leaf := &node[T]{vals: []T{x}}
		out.root = &node[T]{kids: []*node[T]{v.root, v.newPath(v.shift, leaf)}}
		out.shift = v.shift + v.bits
		return &out
	}
	out.root = v.pushValue(v.shift, v.root, v.cnt, x)
	return &out
}

func (v *Vector[T]) pushValue(level uint, n *node[T], i int, x T) *node[T] {
	if level == 0 {
		vals := make([]T, len(n.vals), len(n.vals)+1)
		copy(vals, n.vals)
		return &node[T]{vals: append(vals, x)}
	}

	sub := (i >> level) & v.mask
	kids := make([]*node[T], len(n.kids), max(len(n.kids), sub+1))
	copy(kids, n.kids)
	if sub < len(kids) {
		kids[sub] = v.pushValue(level-v.bits, n.kids[sub], i, x)
	} else {
		kids = append(kids, v.newPath(level-v.bits, &node[T]{vals: []T{x}}))
	}
	return &node[T]{kids: kids}
}
