// Package dst builds stitch patterns and encodes them in the Tajima DST
// embroidery format.
package dst

import "fmt"

// Command is the machine command attached to a stitch.
type Command int

const (
	// CmdStitch moves the needle and stitches.
	CmdStitch Command = iota
	// CmdJump moves the frame without stitching.
	CmdJump
	// CmdColorChange stops the machine for a thread change. The writer
	// never emits it but Read reports it.
	CmdColorChange
	// CmdEnd terminates the pattern.
	CmdEnd
)

func (c Command) String() string {
	switch c {
	case CmdStitch:
		return "STITCH"
	case CmdJump:
		return "JUMP"
	case CmdColorChange:
		return "COLOR_CHANGE"
	case CmdEnd:
		return "END"
	}
	return fmt.Sprintf("Command(%d)", int(c))
}

// Stitch is an absolute needle position in 0.1 mm units.
type Stitch struct {
	X, Y int
	Cmd  Command
}

// Pattern is an ordered, append-only list of stitches.
type Pattern struct {
	Stitches []Stitch
}

// AddStitchAbsolute appends a stitch at an absolute position.
func (p *Pattern) AddStitchAbsolute(cmd Command, x, y int) {
	p.Stitches = append(p.Stitches, Stitch{X: x, Y: y, Cmd: cmd})
}

// Count returns how many stitches carry cmd.
func (p *Pattern) Count(cmd Command) int {
	n := 0
	for _, s := range p.Stitches {
		if s.Cmd == cmd {
			n++
		}
	}
	return n
}

// Bounds returns the extents of the needle positions. End markers do not
// move the needle and are not counted. A pattern without positions has
// zero bounds.
func (p *Pattern) Bounds() (minX, minY, maxX, maxY int) {
	first := true
	for _, s := range p.Stitches {
		if s.Cmd == CmdEnd {
			continue
		}
		if first {
			minX, maxX, minY, maxY = s.X, s.X, s.Y, s.Y
			first = false
			continue
		}
		minX = min(minX, s.X)
		maxX = max(maxX, s.X)
		minY = min(minY, s.Y)
		maxY = max(maxY, s.Y)
	}
	return minX, minY, maxX, maxY
}
