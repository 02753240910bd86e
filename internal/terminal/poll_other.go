//go:build !unix

package terminal

import (
	"os"
	"time"
)

// waitForRead always reports ready; reads block until input arrives.
func waitForRead(f *os.File, timeout time.Duration) (bool, error) {
	return true, nil
}

// notifyResize returns a channel that never fires; size changes are not
// signalled on this platform.
func notifyResize() chan os.Signal {
	return make(chan os.Signal)
}
