//go:build darwin || freebsd || openbsd || netbsd || dragonfly

package sysmem

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// sysctlKeys lists, in order of preference, the sysctl names reporting
// physical memory in bytes.
func sysctlKeys() []string {
	if runtime.GOOS == "darwin" {
		return []string{"hw.memsize"}
	}
	return []string{"hw.physmem", "hw.realmem"}
}

func totalSystemMemory() (uint64, bool) {
	for _, key := range sysctlKeys() {
		if mem, err := unix.SysctlUint64(key); err == nil && mem > 0 {
			return mem, true
		}
	}
	return 0, false
}
