// Package candidate adapts every container under test to one capability
// interface so the sweep driver never special-cases a container family.
package candidate

import "fmt"

// Vector is the capability set the harness needs from a container.
//
// Mutable containers update in place and return the receiver from Set and
// Append; Fork is a deep copy. Persistent containers return a new handle
// from Set and Append without touching the receiver; Fork returns the
// receiver itself.
type Vector interface {
	Len() int
	Get(i int) uint32
	Append(v uint32) Vector
	Set(i int, v uint32) Vector
	Fork() Vector
}

// Family describes one container configuration under test.
type Family struct {
	// Name is the stable benchmark name, e.g. "vector/5B".
	Name string
	// Persistent is true when Set never mutates the receiver.
	Persistent bool
	// Bits is the branching exponent for tree-shaped families, 0 otherwise.
	Bits int
	// Limit is the largest supported size. 0 = unbounded.
	Limit int
	// Experimental families are only registered on request.
	Experimental bool
	// Empty returns a new empty container.
	Empty func() Vector
	// Fill, when set, builds 0..n-1 in a single pass. Persistent families
	// leave it nil so baselines go through Append like real callers do.
	Fill func(n int) Vector
}

// Branching returns the number of children per node, or 0.
func (f Family) Branching() int {
	if f.Bits == 0 {
		return 0
	}
	return 1 << f.Bits
}

func (f Family) String() string {
	return f.Name
}

// Available returns every family linked into this binary, in registration
// order: the mutable reference first.
func Available() []Family {
	families := []Family{Slice()}
	for _, bits := range []int{4, 5, 6} {
		families = append(families, Vector32(bits))
	}
	families = append(families, Flex(5))
	for _, bits := range []int{4, 5, 6} {
		families = append(families, Trie(bits))
	}
	families = append(families, FlatArray(10000))
	families = append(families, optionalFamilies()...)
	return families
}

// Lookup returns the available family with the given name.
func Lookup(name string) (Family, error) {
	for _, f := range Available() {
		if f.Name == name {
			return f, nil
		}
	}
	return Family{}, fmt.Errorf("unknown candidate: %s", name)
}

// ToSlice copies the contents of v.
func ToSlice(v Vector) []uint32 {
	out := make([]uint32, v.Len())
	for i := range out {
		out[i] = v.Get(i)
	}
	return out
}
