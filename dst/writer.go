package dst

import (
	"bytes"
	"fmt"
	"io"
)

const (
	// HeaderSize is the fixed size of the DST header block.
	HeaderSize = 512
	// DefaultLabel is written when the writer has no label.
	DefaultLabel = "Untitled"

	labelWidth = 16
	headerEnd  = 0x1A
)

// Writer encodes patterns as DST. The zero value is ready to use.
type Writer struct {
	// Label is the design name stored in the header, at most 16 bytes.
	Label string
}

// records converts the absolute stitches of p into encoded relative
// moves. Moves longer than MaxMove are split into equal pieces carrying
// the same command. It returns the final needle position.
func records(p *Pattern) ([][3]byte, int, int, error) {
	var out [][3]byte
	var x, y int
	for _, s := range p.Stitches {
		if s.Cmd == CmdEnd {
			out = append(out, endRecord)
			continue
		}

		dx, dy := s.X-x, s.Y-y
		n := max((max(abs(dx), abs(dy))+MaxMove-1)/MaxMove, 1)
		var px, py int
		for i := 1; i <= n; i++ {
			sx, sy := dx*i/n, dy*i/n
			b, err := EncodeRecord(sx-px, sy-py, s.Cmd)
			if err != nil {
				return nil, 0, 0, err
			}
			out = append(out, b)
			px, py = sx, sy
		}
		x, y = s.X, s.Y
	}
	return out, x, y, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// signed formats a value as a sign followed by a %5d magnitude, as used
// by the AX, AY, MX and MY header fields.
func signed(v int) string {
	if v < 0 {
		return fmt.Sprintf("-%5d", -v)
	}
	return fmt.Sprintf("+%5d", v)
}

// header writes the 512 byte header block, padded with spaces.
func (w *Writer) header(buf *bytes.Buffer, p *Pattern, count, lastX, lastY int) {
	label := w.Label
	if label == "" {
		label = DefaultLabel
	}
	if len(label) > labelWidth {
		label = label[:labelWidth]
	}
	minX, minY, maxX, maxY := p.Bounds()

	fmt.Fprintf(buf, "LA:%-16s\r", label)
	fmt.Fprintf(buf, "ST:%7d\r", count)
	fmt.Fprintf(buf, "CO:%3d\r", p.Count(CmdColorChange))
	fmt.Fprintf(buf, "+X:%5d\r", abs(maxX))
	fmt.Fprintf(buf, "-X:%5d\r", abs(minX))
	fmt.Fprintf(buf, "+Y:%5d\r", abs(maxY))
	fmt.Fprintf(buf, "-Y:%5d\r", abs(minY))
	fmt.Fprintf(buf, "AX:%s\r", signed(lastX))
	fmt.Fprintf(buf, "AY:%s\r", signed(-lastY))
	fmt.Fprintf(buf, "MX:%s\r", signed(0))
	fmt.Fprintf(buf, "MY:%s\r", signed(0))
	fmt.Fprintf(buf, "PD:%6s\r", "******")
	buf.WriteByte(headerEnd)

	buf.Write(bytes.Repeat([]byte{' '}, HeaderSize-buf.Len()))
}

// Encode returns the DST encoding of p.
func (w *Writer) Encode(p *Pattern) ([]byte, error) {
	recs, lastX, lastY, err := records(p)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(HeaderSize + 3*len(recs))
	w.header(&buf, p, len(recs), lastX, lastY)
	for _, r := range recs {
		buf.Write(r[:])
	}
	return buf.Bytes(), nil
}

// Write encodes p and writes it to out. Nothing is written when encoding
// fails.
func (w *Writer) Write(out io.Writer, p *Pattern) error {
	data, err := w.Encode(p)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
