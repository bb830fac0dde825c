package report

import (
	"fmt"
	"io"
)

// errWriter lets a sequence of Fprintf calls skip their individual
// error checks; the first error is latched and every call after it
// becomes a no-op.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}
