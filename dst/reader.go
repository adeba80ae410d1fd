package dst

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Header holds the decoded fields of a DST header.
type Header struct {
	Label        string
	StitchCount  int
	ColorChanges int

	// Extents as stored: magnitudes of the maximum and minimum positions.
	PlusX, MinusX, PlusY, MinusY int

	// AX and AY hold the last needle position, Y growing upwards.
	AX, AY int
}

func parseHeader(b []byte) (*Header, error) {
	if i := bytes.IndexByte(b, headerEnd); i >= 0 {
		b = b[:i]
	}

	h := &Header{}
	for _, field := range strings.Split(string(b), "\r") {
		if len(field) < 3 || field[2] != ':' {
			continue
		}
		key, val := field[:2], field[3:]
		if key == "LA" {
			h.Label = strings.TrimRight(val, " ")
			continue
		}

		var dst *int
		switch key {
		case "ST":
			dst = &h.StitchCount
		case "CO":
			dst = &h.ColorChanges
		case "+X":
			dst = &h.PlusX
		case "-X":
			dst = &h.MinusX
		case "+Y":
			dst = &h.PlusY
		case "-Y":
			dst = &h.MinusY
		case "AX":
			dst = &h.AX
		case "AY":
			dst = &h.AY
		default:
			continue
		}
		n, err := strconv.Atoi(strings.ReplaceAll(val, " ", ""))
		if err != nil {
			return nil, fmt.Errorf("dst header field %s: %w", key, err)
		}
		*dst = n
	}
	return h, nil
}

// Read decodes a DST stream into its header and absolute stitches. The
// END record is reported at the needle position where it occurs. A stream
// that stops without an END record is accepted.
func Read(r io.Reader) (*Header, []Stitch, error) {
	head := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, nil, fmt.Errorf("reading dst header: %w", err)
	}
	h, err := parseHeader(head)
	if err != nil {
		return nil, nil, err
	}

	var stitches []Stitch
	var x, y int
	var b [3]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			if errors.Is(err, io.EOF) {
				return h, stitches, nil
			}
			return nil, nil, fmt.Errorf("reading dst record %d: %w", len(stitches), err)
		}

		dx, dy, cmd := DecodeRecord(b)
		x += dx
		y += dy
		stitches = append(stitches, Stitch{X: x, Y: y, Cmd: cmd})
		if cmd == CmdEnd {
			return h, stitches, nil
		}
	}
}
