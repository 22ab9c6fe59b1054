package assert

import (
	"github.com/bloeys/nrast/logging"
)

// T panics with the formatted message when check is false.
// It is a no-op in release builds.
func T(check bool, msg string, args ...any) {

	if !Debug || check {
		return
	}

	logging.ErrLog.Panicf("Assert failed: "+msg, args...)
}
