//go:build assocbench_nolist

package candidate

func optionalFamilies() []Family {
	return nil
}
