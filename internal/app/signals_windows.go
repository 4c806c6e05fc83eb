//go:build windows

package app

import "os"

// Windows has no SIGCONT.
func contSignals() []os.Signal {
	return nil
}
