//go:build linux || darwin

package debug

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// residentSetSize returns the peak resident set in bytes. getrusage does not
// expose the current value.
func residentSetSize() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	if runtime.GOOS == "darwin" {
		return uint64(ru.Maxrss), nil
	}
	// linux reports kilobytes
	return uint64(ru.Maxrss) * 1024, nil
}
