package dst

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEmptyPattern(t *testing.T) {
	p := &Pattern{}
	p.AddStitchAbsolute(CmdEnd, 0, 0)

	var buf bytes.Buffer
	require.NoError(t, (&Writer{}).Write(&buf, p))

	data := buf.Bytes()
	require.Len(t, data, HeaderSize+3)
	assert.Equal(t, []byte{0x00, 0x00, 0xF3}, data[HeaderSize:])

	want := "LA:Untitled        \r" +
		"ST:      1\r" +
		"CO:  0\r" +
		"+X:    0\r" +
		"-X:    0\r" +
		"+Y:    0\r" +
		"-Y:    0\r" +
		"AX:+    0\r" +
		"AY:+    0\r" +
		"MX:+    0\r" +
		"MY:+    0\r" +
		"PD:******\r" +
		"\x1a"
	assert.Equal(t, want, string(data[:len(want)]))
	assert.Equal(t, strings.Repeat(" ", HeaderSize-len(want)), string(data[len(want):HeaderSize]))
}

func TestWriteHeaderFields(t *testing.T) {
	p := &Pattern{}
	p.AddStitchAbsolute(CmdJump, -10, 20)
	p.AddStitchAbsolute(CmdStitch, 30, -5)
	p.AddStitchAbsolute(CmdStitch, 25, 7)
	p.AddStitchAbsolute(CmdEnd, 0, 0)

	w := &Writer{Label: "a label longer than sixteen bytes"}
	data, err := w.Encode(p)
	require.NoError(t, err)

	h, stitches, err := Read(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "a label longer t", h.Label)
	assert.Equal(t, 4, h.StitchCount)
	assert.Equal(t, 0, h.ColorChanges)
	assert.Equal(t, 30, h.PlusX)
	assert.Equal(t, 10, h.MinusX)
	assert.Equal(t, 20, h.PlusY)
	assert.Equal(t, 5, h.MinusY)
	assert.Equal(t, 25, h.AX)
	assert.Equal(t, -7, h.AY)

	assert.Equal(t, []Stitch{
		{X: -10, Y: 20, Cmd: CmdJump},
		{X: 30, Y: -5, Cmd: CmdStitch},
		{X: 25, Y: 7, Cmd: CmdStitch},
		{X: 25, Y: 7, Cmd: CmdEnd},
	}, stitches)
}

func TestWriteSplitsLongMoves(t *testing.T) {
	p := &Pattern{}
	p.AddStitchAbsolute(CmdJump, 300, -250)
	p.AddStitchAbsolute(CmdStitch, 300, 0)
	p.AddStitchAbsolute(CmdEnd, 0, 0)

	data, err := (&Writer{}).Encode(p)
	require.NoError(t, err)

	h, stitches, err := Read(bytes.NewReader(data))
	require.NoError(t, err)

	// 300 needs three jumps, 250 needs three stitches, then END
	require.Len(t, stitches, 7)
	assert.Equal(t, 7, h.StitchCount)
	for i, s := range stitches[:3] {
		assert.Equal(t, CmdJump, s.Cmd, "record %d", i)
	}
	for i, s := range stitches[3:6] {
		assert.Equal(t, CmdStitch, s.Cmd, "record %d", i+3)
	}
	assert.Equal(t, Stitch{X: 300, Y: -250, Cmd: CmdJump}, stitches[2])
	assert.Equal(t, Stitch{X: 300, Y: 0, Cmd: CmdStitch}, stitches[5])
	assert.Equal(t, CmdEnd, stitches[6].Cmd)

	prev := Stitch{}
	for _, s := range stitches {
		assert.LessOrEqual(t, abs(s.X-prev.X), MaxMove)
		assert.LessOrEqual(t, abs(s.Y-prev.Y), MaxMove)
		prev = s
	}
}

func TestWriteZeroMoveJump(t *testing.T) {
	p := &Pattern{}
	p.AddStitchAbsolute(CmdJump, 0, 0)
	p.AddStitchAbsolute(CmdEnd, 0, 0)

	data, err := (&Writer{}).Encode(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x00, 0x83, 0x00, 0x00, 0xF3}, data[HeaderSize:])
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	p := &Pattern{}
	p.AddStitchAbsolute(CmdEnd, 0, 0)
	require.EqualError(t, (&Writer{}).Write(failingWriter{}, p), "disk full")
}
