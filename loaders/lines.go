package loaders

import (
	"bufio"
	"errors"
	"io"
)

const (
	// longest line read from a table file; the rest of a longer line is read as the next line
	FileLineMax = 254
	// longest line read from standard input
	InputLineMax = 255
)

type LineReader struct {
	r    *bufio.Reader
	max  int
	line int
}

func NewLineReader(r io.Reader, max int) *LineReader {
	if br, ok := r.(*bufio.Reader); ok {
		return &LineReader{r: br, max: max}
	}
	return &LineReader{
		r:   bufio.NewReader(r),
		max: max,
	}
}

// ReadLine returns the next line without its newline.
// io.EOF is returned only when nothing was read.
func (l *LineReader) ReadLine() (string, error) {
	buf := make([]byte, 0, 64)
	for len(buf) < l.max {
		b, err := l.r.ReadByte()
		if errors.Is(err, io.EOF) {
			if len(buf) == 0 {
				return "", io.EOF
			}
			break
		} else if err != nil {
			return "", err
		}
		if b == '\n' {
			break
		}
		buf = append(buf, b)
	}
	l.line++
	return string(buf), nil
}

// Line is the number of lines read so far.
func (l *LineReader) Line() int {
	return l.line
}
