package svg2dst

import (
	"image"

	"github.com/vasalvit/svg2dst/svg"
)

// Sampling defaults. DefaultScale converts 96 DPI user units to 0.1 mm.
const (
	DefaultScale         = 2.6458333333
	DefaultSegmentLength = 20.0
	DefaultTolerance     = 1e7
	DefaultMinDepth      = 4
)

// Segments returns how many equal parameter steps a subpath of the given
// length is sampled with. It is never less than one.
func Segments(length, segmentLength float64) int {
	return max(1, int(length/segmentLength))
}

// Sample evaluates sp at segments+1 evenly spaced parameters and scales
// the points to stitch units, truncating toward zero.
func (c *Converter) Sample(sp *svg.Subpath) []image.Point {
	length := sp.Length(c.tolerance(), c.minDepth())
	n := Segments(length, c.segmentLength())
	scale := c.scale()

	points := make([]image.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		p := sp.Point(float64(i) / float64(n))
		points = append(points, image.Point{
			X: int(p[0] * scale),
			Y: int(p[1] * scale),
		})
	}
	return points
}

func (c *Converter) scale() float64 {
	if c.Scale == 0 {
		return DefaultScale
	}
	return c.Scale
}

func (c *Converter) segmentLength() float64 {
	if c.SegmentLength <= 0 {
		return DefaultSegmentLength
	}
	return c.SegmentLength
}

func (c *Converter) tolerance() float64 {
	if c.Tolerance <= 0 {
		return DefaultTolerance
	}
	return c.Tolerance
}

func (c *Converter) minDepth() int {
	if c.MinDepth <= 0 {
		return DefaultMinDepth
	}
	return c.MinDepth
}
