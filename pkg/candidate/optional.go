//go:build !assocbench_nolist

package candidate

import "github.com/benbjohnson/immutable"

// immutable.List is a 32-way persistent vector.
const listBits = 5

type listVector struct {
	l *immutable.List[uint32]
}

// ImmutableList is the benbjohnson/immutable persistent list.
func ImmutableList() Family {
	return Family{
		Name:       "immutable/list",
		Persistent: true,
		Bits:       listBits,
		Empty:      func() Vector { return listVector{l: immutable.NewList[uint32]()} },
	}
}

func optionalFamilies() []Family {
	return []Family{ImmutableList()}
}

func (v listVector) Len() int                   { return v.l.Len() }
func (v listVector) Get(i int) uint32           { return v.l.Get(i) }
func (v listVector) Append(x uint32) Vector     { return listVector{l: v.l.Append(x)} }
func (v listVector) Set(i int, x uint32) Vector { return listVector{l: v.l.Set(i, x)} }
func (v listVector) Fork() Vector               { return v }
