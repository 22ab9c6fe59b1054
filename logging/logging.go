package logging

import (
	"io"
	"log"
	"os"
)

var (
	InfoLog = log.New(os.Stdout, "INFO: ", log.LstdFlags)
	WarnLog = log.New(os.Stdout, "WARN: ", log.LstdFlags)
	ErrLog  = log.New(os.Stderr, "ERR: ", log.LstdFlags|log.Lshortfile)
)

// SetOutput redirects the info and warning loggers, which is mostly useful
// to silence parse diagnostics in tests and batch tools.
func SetOutput(w io.Writer) {
	InfoLog.SetOutput(w)
	WarnLog.SetOutput(w)
}
