// Package console is the leveled, colored logger used by the generator.
//
// Messages may carry inline markup: $Bold{$Cyan{text}} renders text bold
// and cyan. Unknown names are printed as written.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/fatih/color"
)

// Logger is the process-wide logger.
var Logger = New(os.Stderr)

// Log writes leveled messages to an output.
type Log struct {
	mu  sync.Mutex
	out io.Writer
	// DebugLevel enables Debug, Dump and Printf output when above zero.
	DebugLevel int
}

// New creates a logger writing to out.
func New(out io.Writer) *Log {
	return &Log{out: out}
}

// SetOutput replaces the output.
func (l *Log) SetOutput(out io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = out
}

// Debug prints a message when debugging is enabled.
func (l *Log) Debug(format string, args ...interface{}) {
	if l.DebugLevel <= 0 {
		return
	}
	l.write(format, args...)
}

// Printf is Debug under the name services expect of a debugger.
func (l *Log) Printf(format string, args ...interface{}) {
	if l.DebugLevel <= 0 {
		return
	}
	if !strings.HasSuffix(format, "\n") {
		format += "\n"
	}
	l.write(format, args...)
}

// Info prints a message.
func (l *Log) Info(format string, args ...interface{}) {
	l.write(format, args...)
}

// Warn prints a message with a yellow warning prefix.
func (l *Log) Warn(format string, args ...interface{}) {
	l.write("$Bold{$Yellow{warning:}} "+format, args...)
}

// Error prints a message with a red error prefix.
func (l *Log) Error(format string, args ...interface{}) {
	l.write("$Bold{$Red{error:}} "+format, args...)
}

// Dump prints values in detail when debugging is enabled.
func (l *Log) Dump(values ...interface{}) {
	if l.DebugLevel <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	spew.Fdump(l.out, values...)
}

func (l *Log) write(format string, args ...interface{}) {
	msg := fmt.Sprintf(Render(format), args...)
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprint(l.out, msg)
}

var attributes = map[string]color.Attribute{
	"Bold":      color.Bold,
	"Faint":     color.Faint,
	"Italic":    color.Italic,
	"Underline": color.Underline,
	"Black":     color.FgBlack,
	"Red":       color.FgRed,
	"Green":     color.FgGreen,
	"Yellow":    color.FgYellow,
	"Blue":      color.FgBlue,
	"Magenta":   color.FgMagenta,
	"Cyan":      color.FgCyan,
	"White":     color.FgWhite,
}

// Render replaces markup with terminal colors. With color.NoColor set the
// markup is removed and only the text remains.
func Render(text string) string {
	var b strings.Builder
	render(&b, text, nil)
	return b.String()
}

func render(b *strings.Builder, text string, attrs []color.Attribute) {
	for len(text) > 0 {
		start, name, body, rest, ok := nextMarkup(text)
		if !ok {
			plain(b, text, attrs)
			return
		}
		plain(b, text[:start], attrs)
		render(b, body, append(append([]color.Attribute(nil), attrs...), attributes[name]))
		text = rest
	}
}

func plain(b *strings.Builder, text string, attrs []color.Attribute) {
	if text == "" {
		return
	}
	if len(attrs) == 0 {
		b.WriteString(text)
		return
	}
	b.WriteString(color.New(attrs...).Sprint(text))
}

// nextMarkup finds the first known $Name{...} group with balanced braces.
func nextMarkup(text string) (start int, name, body, rest string, ok bool) {
	offset := 0
	for {
		i := strings.IndexByte(text[offset:], '$')
		if i < 0 {
			return 0, "", "", "", false
		}
		i += offset
		open := strings.IndexByte(text[i:], '{')
		if open > 0 {
			name = text[i+1 : i+open]
			if _, known := attributes[name]; known {
				if end := closing(text, i+open); end >= 0 {
					return i, name, text[i+open+1 : end], text[end+1:], true
				}
			}
		}
		offset = i + 1
	}
}

func closing(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
