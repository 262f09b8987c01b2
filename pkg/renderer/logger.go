package renderer

import (
	"fmt"
	"io"
	"os"

	"github.com/df07/go-path-tracer/pkg/core"
)

// DefaultLogger implements core.Logger by writing to an io.Writer
type DefaultLogger struct {
	out io.Writer
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(dl.out, format, args...)
}

// NewDefaultLogger creates a new default logger writing to stdout
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{out: os.Stdout}
}

// NewWriterLogger creates a logger writing to w
// The CLI logs to stderr so images can be streamed to stdout
func NewWriterLogger(w io.Writer) core.Logger {
	return &DefaultLogger{out: w}
}
