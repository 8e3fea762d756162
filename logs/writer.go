package logs

import (
	"io"
	"os"
)

// Writer receives the text log stream. Standard output carries the rendered tape only.
type Writer io.Writer

func (Module) Writer() Writer {
	return os.Stderr
}
