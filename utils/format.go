package utils

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/term"
)

// MessageType selects how a CLI message is colored.
type MessageType int

// Message types printed by svg2dst.
const (
	PlainMessage MessageType = iota
	SuccessMessage
	ErrorMessage
	StatusMessage
)

const reset = "\x1b[0m"

var colors = map[MessageType]string{
	SuccessMessage: "\x1b[32m",
	ErrorMessage:   "\x1b[31m",
	StatusMessage:  "\x1b[36m",
}

// IsTerminal reports whether w is a file attached to a terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// Decorator colors messages only when the output is a terminal.
type Decorator struct {
	Color bool
}

// NewDecorator returns a decorator for messages written to w.
func NewDecorator(w io.Writer) Decorator {
	return Decorator{Color: IsTerminal(w)}
}

// Text wraps s in the color of msgType. Plain messages, and any message
// when coloring is off, are returned unchanged.
func (d Decorator) Text(s string, msgType MessageType) string {
	color, ok := colors[msgType]
	if !d.Color || !ok {
		return s
	}
	return color + s + reset
}

// FormatTime prints a conversion time: seconds with two decimals below a
// minute, whole seconds above.
func FormatTime(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}
