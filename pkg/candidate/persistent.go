package candidate

import (
	"fmt"

	"github.com/eunmann/assoc-bench/pkg/flatvec"
	"github.com/eunmann/assoc-bench/pkg/pvec"
)

type pvecVector struct {
	v *pvec.Vector[uint32]
}

// Vector32 is the tail-buffered persistent vector with 2^bits branching.
func Vector32(bits int) Family {
	return Family{
		Name:       fmt.Sprintf("vector/%dB", bits),
		Persistent: true,
		Bits:       bits,
		Empty:      func() Vector { return pvecVector{v: pvec.New[uint32](bits)} },
	}
}

// Flex is the tail-less persistent vector with 2^bits branching.
func Flex(bits int) Family {
	f := tailless(bits)
	f.Name = fmt.Sprintf("flex/%dB", bits)
	return f
}

// Trie is the experimental tail-less variant registered for each
// branching factor.
func Trie(bits int) Family {
	f := tailless(bits)
	f.Name = fmt.Sprintf("trie/%dB", bits)
	f.Experimental = true
	return f
}

func tailless(bits int) Family {
	return Family{
		Persistent: true,
		Bits:       bits,
		Empty: func() Vector {
			return pvecVector{v: pvec.New[uint32](bits, pvec.WithoutTail())}
		},
	}
}

func (p pvecVector) Len() int                   { return p.v.Len() }
func (p pvecVector) Get(i int) uint32           { return p.v.Get(i) }
func (p pvecVector) Append(x uint32) Vector     { return pvecVector{v: p.v.Append(x)} }
func (p pvecVector) Set(i int, x uint32) Vector { return pvecVector{v: p.v.Set(i, x)} }
func (p pvecVector) Fork() Vector               { return p }

type flatVector struct {
	a flatvec.Array[uint32]
}

// FlatArray is the flat copy-on-write array. Every update copies the
// whole array, so the family declares a size limit.
func FlatArray(limit int) Family {
	return Family{
		Name:       "array",
		Persistent: true,
		Limit:      limit,
		Empty:      func() Vector { return flatVector{} },
	}
}

func (f flatVector) Len() int                   { return f.a.Len() }
func (f flatVector) Get(i int) uint32           { return f.a.Get(i) }
func (f flatVector) Append(x uint32) Vector     { return flatVector{a: f.a.Append(x)} }
func (f flatVector) Set(i int, x uint32) Vector { return flatVector{a: f.a.Set(i, x)} }
func (f flatVector) Fork() Vector               { return f }
