package sweep

import "github.com/eunmann/assoc-bench/pkg/candidate"

// BuildBaseline returns a container holding 0..n-1 at positions 0..n-1.
//
// Families with a bulk Fill use it. Everything else is grown by n appends
// from empty, so a persistent tree gets the shape normal use produces.
func BuildBaseline(f candidate.Family, n int) candidate.Vector {
	if f.Fill != nil {
		return f.Fill(n)
	}

	v := f.Empty()
	for i := 0; i < n; i++ {
		v = v.Append(uint32(i))
	}
	return v
}
