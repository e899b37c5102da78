package pvec

import (
	"fmt"
	"testing"
)

func build(bits, n int, opts ...Option) *Vector[int] {
	v := New[int](bits, opts...)
	for i := 0; i < n; i++ {
		v = v.Append(i)
	}
	return v
}

func layouts() map[string][]Option {
	return map[string][]Option{
		"tail":   nil,
		"notail": {WithoutTail()},
	}
}

func TestAppendGet(t *testing.T) {
	sizes := []int{0, 1, 3, 4, 5, 16, 17, 63, 64, 65, 1000, 5000}
	for name, opts := range layouts() {
		for _, bits := range []int{1, 2, 4, 5, 6} {
			for _, n := range sizes {
				t.Run(fmt.Sprintf("%s/bits=%d/n=%d", name, bits, n), func(t *testing.T) {
					v := build(bits, n, opts...)
					if v.Len() != n {
						t.Fatalf("Len() = %d, want %d", v.Len(), n)
					}
					for i := 0; i < n; i++ {
						if got := v.Get(i); got != i {
							t.Fatalf("Get(%d) = %d, want %d", i, got, i)
						}
					}
				})
			}
		}
	}
}

func TestSetLeavesOriginal(t *testing.T) {
	for name, opts := range layouts() {
		for _, bits := range []int{2, 5} {
			t.Run(fmt.Sprintf("%s/bits=%d", name, bits), func(t *testing.T) {
				const n = 300
				base := build(bits, n, opts...)
				cur := base
				for i := 0; i < n; i++ {
					cur = cur.Set(i, -i)
				}
				for i := 0; i < n; i++ {
					if got := base.Get(i); got != i {
						t.Fatalf("base.Get(%d) = %d after updates, want %d", i, got, i)
					}
					if got := cur.Get(i); got != -i {
						t.Fatalf("cur.Get(%d) = %d, want %d", i, got, -i)
					}
				}
			})
		}
	}
}

func TestAppendLeavesOriginal(t *testing.T) {
	for name, opts := range layouts() {
		t.Run(name, func(t *testing.T) {
			a := build(2, 10, opts...)
			b := a.Append(10)
			c := a.Append(99)
			if a.Len() != 10 || b.Len() != 11 || c.Len() != 11 {
				t.Fatalf("lengths = %d, %d, %d", a.Len(), b.Len(), c.Len())
			}
			if b.Get(10) != 10 || c.Get(10) != 99 {
				t.Errorf("b[10] = %d, c[10] = %d", b.Get(10), c.Get(10))
			}
		})
	}
}

func TestNewInvalidBits(t *testing.T) {
	for _, bits := range []int{0, -1, 9} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%d) did not panic", bits)
				}
			}()
			New[int](bits)
		}()
	}
}

func TestIndexOutOfRange(t *testing.T) {
	v := build(4, 10)
	for _, i := range []int{-1, 10, 100} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("Set(%d) did not panic", i)
				}
			}()
			v.Set(i, 0)
		}()
	}
}

func BenchmarkAppend(b *testing.B) {
	for _, bits := range []int{4, 5, 6} {
		b.Run(fmt.Sprintf("bits=%d", bits), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				build(bits, 1000)
			}
		})
	}
}
