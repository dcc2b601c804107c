package logs

import (
	"io"
	"os"
)

// Writer receives the terminal log records. Program output and the
// compilation trace go to stdout, so logs stay on stderr.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
