package consoles

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

type writerConsole struct {
	out      io.Writer
	debug    bool
	now      func() time.Time
	prefixes []string
}

// NewStdErrConsole writes to stderr, leaving stdout for reports.
func NewStdErrConsole(debug bool) Console {
	return NewWriterConsole(os.Stderr, debug)
}

func NewWriterConsole(out io.Writer, debug bool) Console {
	return &writerConsole{
		out:   out,
		debug: debug,
		now:   time.Now,
	}
}

func (o *writerConsole) Printf(format string, a ...any) {
	o.print(format, a...)
}

func (o *writerConsole) Debugf(format string, a ...any) {
	if !o.debug {
		return
	}

	o.print(format, a...)
}

func (o *writerConsole) print(format string, a ...any) {
	builder := strings.Builder{}
	builder.WriteString("[")
	builder.WriteString(o.now().Format("15:04:05"))
	builder.WriteString("] ")
	for _, prefix := range o.prefixes {
		builder.WriteString(prefix)
	}
	builder.WriteString(fmt.Sprintf(format, a...))
	_, _ = io.WriteString(o.out, builder.String())
}

func (o *writerConsole) PushPrefix(format string, a ...any) {
	o.prefixes = append(o.prefixes, fmt.Sprintf(format, a...))
}

func (o *writerConsole) PopPrefix() {
	if len(o.prefixes) == 0 {
		return
	}

	o.prefixes = o.prefixes[:len(o.prefixes)-1]
}
