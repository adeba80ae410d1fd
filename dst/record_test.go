package dst

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeRecord(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy int
		cmd    Command
		want   [3]byte
	}{
		{"no move", 0, 0, CmdStitch, [3]byte{0x00, 0x00, 0x03}},
		{"right", 1, 0, CmdStitch, [3]byte{0x01, 0x00, 0x03}},
		{"left", -1, 0, CmdStitch, [3]byte{0x02, 0x00, 0x03}},
		{"down", 0, 1, CmdStitch, [3]byte{0x40, 0x00, 0x03}},
		{"up", 0, -1, CmdStitch, [3]byte{0x80, 0x00, 0x03}},
		{"max jump", 121, 0, CmdJump, [3]byte{0x05, 0x05, 0x87}},
		{"min jump", -121, 0, CmdJump, [3]byte{0x0A, 0x0A, 0x8B}},
		{"max y", 0, -121, CmdStitch, [3]byte{0xA0, 0xA0, 0x23}},
		{"end", 50, 50, CmdEnd, [3]byte{0x00, 0x00, 0xF3}},
		{"color change", 0, 0, CmdColorChange, [3]byte{0x00, 0x00, 0xC3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeRecord(tt.dx, tt.dy, tt.cmd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeRecordTooLarge(t *testing.T) {
	_, err := EncodeRecord(122, 0, CmdStitch)
	require.True(t, errors.Is(err, ErrMoveTooLarge))

	_, err = EncodeRecord(0, -122, CmdJump)
	require.True(t, errors.Is(err, ErrMoveTooLarge))
}

func TestRecordRoundTrip(t *testing.T) {
	for dx := -MaxMove; dx <= MaxMove; dx++ {
		for _, dy := range []int{-MaxMove, -40, -13, -4, -1, 0, 1, 4, 13, 40, MaxMove} {
			for _, cmd := range []Command{CmdStitch, CmdJump} {
				b, err := EncodeRecord(dx, dy, cmd)
				require.NoError(t, err)

				gx, gy, gcmd := DecodeRecord(b)
				require.Equal(t, dx, gx, "dx for %d,%d", dx, dy)
				require.Equal(t, dy, gy, "dy for %d,%d", dx, dy)
				require.Equal(t, cmd, gcmd)
			}
		}
	}
}

func TestDecodeEnd(t *testing.T) {
	dx, dy, cmd := DecodeRecord([3]byte{0x00, 0x00, 0xF3})
	assert.Equal(t, CmdEnd, cmd)
	assert.Zero(t, dx)
	assert.Zero(t, dy)
}
