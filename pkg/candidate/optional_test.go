//go:build !assocbench_nolist

package candidate

import "testing"

func TestImmutableListRegistered(t *testing.T) {
	f, err := Lookup("immutable/list")
	if err != nil {
		t.Fatal(err)
	}
	if !f.Persistent || f.Branching() != 32 {
		t.Errorf("unexpected family: %+v", f)
	}
}
