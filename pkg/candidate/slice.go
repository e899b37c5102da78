package candidate

// sliceVector is the mutable reference: a plain growable slice.
type sliceVector struct {
	items []uint32
}

// Slice is the mutable dynamic array family.
func Slice() Family {
	return Family{
		Name:  "slice",
		Empty: func() Vector { return &sliceVector{} },
		Fill:  fillSlice,
	}
}

func fillSlice(n int) Vector {
	items := make([]uint32, n)
	for i := range items {
		items[i] = uint32(i)
	}
	return &sliceVector{items: items}
}

// NewSlice returns a mutable vector holding a copy of items.
func NewSlice(items []uint32) Vector {
	s := make([]uint32, len(items))
	copy(s, items)
	return &sliceVector{items: s}
}

func (s *sliceVector) Len() int         { return len(s.items) }
func (s *sliceVector) Get(i int) uint32 { return s.items[i] }

func (s *sliceVector) Append(v uint32) Vector {
	s.items = append(s.items, v)
	return s
}

func (s *sliceVector) Set(i int, v uint32) Vector {
	s.items[i] = v
	return s
}

func (s *sliceVector) Fork() Vector {
	return NewSlice(s.items)
}
