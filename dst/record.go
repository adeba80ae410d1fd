package dst

import (
	"errors"
	"fmt"
)

// MaxMove is the largest displacement a single record can carry on
// either axis.
const MaxMove = 121

// ErrMoveTooLarge is returned when a record displacement exceeds MaxMove.
var ErrMoveTooLarge = errors.New("move exceeds 121 units")

// endRecord terminates a DST stream.
var endRecord = [3]byte{0x00, 0x00, 0xF3}

// digit is one balanced ternary position of a displacement: the byte it
// lives in and the bits flagging +weight and -weight.
type digit struct {
	weight   int
	index    int
	pos, neg byte
}

var (
	xDigits = []digit{
		{81, 2, 0x04, 0x08},
		{27, 1, 0x04, 0x08},
		{9, 0, 0x04, 0x08},
		{3, 1, 0x01, 0x02},
		{1, 0, 0x01, 0x02},
	}
	yDigits = []digit{
		{81, 2, 0x20, 0x10},
		{27, 1, 0x20, 0x10},
		{9, 0, 0x20, 0x10},
		{3, 1, 0x80, 0x40},
		{1, 0, 0x80, 0x40},
	}
)

func encodeAxis(b *[3]byte, v int, digits []digit) {
	for _, d := range digits {
		half := d.weight / 2
		switch {
		case v > half:
			b[d.index] |= d.pos
			v -= d.weight
		case v < -half:
			b[d.index] |= d.neg
			v += d.weight
		}
	}
}

func decodeAxis(b [3]byte, digits []digit) int {
	v := 0
	for _, d := range digits {
		if b[d.index]&d.pos != 0 {
			v += d.weight
		}
		if b[d.index]&d.neg != 0 {
			v -= d.weight
		}
	}
	return v
}

// EncodeRecord encodes one relative move. dy grows downwards, as in the
// pattern; the record stores it flipped. CmdEnd ignores the move.
func EncodeRecord(dx, dy int, cmd Command) ([3]byte, error) {
	if cmd == CmdEnd {
		return endRecord, nil
	}
	if dx > MaxMove || dx < -MaxMove || dy > MaxMove || dy < -MaxMove {
		return [3]byte{}, fmt.Errorf("record (%d,%d): %w", dx, dy, ErrMoveTooLarge)
	}

	b := [3]byte{0, 0, 0x03}
	switch cmd {
	case CmdStitch:
	case CmdJump:
		b[2] |= 0x80
	case CmdColorChange:
		b[2] |= 0xC0
	default:
		return b, fmt.Errorf("unknown command %v", cmd)
	}
	encodeAxis(&b, dx, xDigits)
	encodeAxis(&b, -dy, yDigits)
	return b, nil
}

// DecodeRecord is the inverse of EncodeRecord.
func DecodeRecord(b [3]byte) (dx, dy int, cmd Command) {
	switch {
	case b[2]&0xF3 == 0xF3:
		return 0, 0, CmdEnd
	case b[2]&0xC3 == 0xC3:
		cmd = CmdColorChange
	case b[2]&0x83 == 0x83:
		cmd = CmdJump
	default:
		cmd = CmdStitch
	}
	return decodeAxis(b, xDigits), -decodeAxis(b, yDigits), cmd
}
