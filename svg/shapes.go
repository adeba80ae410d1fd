package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Rect is an SVG XML rect element
type Rect struct {
	Attributes
	X      string `xml:"x,attr"`
	Y      string `xml:"y,attr"`
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
	Rx     string `xml:"rx,attr"`
	Ry     string `xml:"ry,attr"`
}

// Circle is an SVG XML circle element
type Circle struct {
	Attributes
	Cx string `xml:"cx,attr"`
	Cy string `xml:"cy,attr"`
	R  string `xml:"r,attr"`
}

// Ellipse is an SVG XML ellipse element
type Ellipse struct {
	Attributes
	Cx string `xml:"cx,attr"`
	Cy string `xml:"cy,attr"`
	Rx string `xml:"rx,attr"`
	Ry string `xml:"ry,attr"`
}

// Line is an SVG XML line element
type Line struct {
	Attributes
	X1 string `xml:"x1,attr"`
	Y1 string `xml:"y1,attr"`
	X2 string `xml:"x2,attr"`
	Y2 string `xml:"y2,attr"`
}

// PolyLine is an SVG XML polyline element
type PolyLine struct {
	Attributes
	Points string `xml:"points,attr"`
}

// Polygon is an SVG XML polygon element
type Polygon struct {
	Attributes
	Points string `xml:"points,attr"`
}

// pathBuilder accumulates path data.
type pathBuilder struct {
	sb strings.Builder
}

func (b *pathBuilder) cmd(c byte, args ...float64) {
	if b.sb.Len() > 0 {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteByte(c)
	for _, a := range args {
		b.sb.WriteByte(' ')
		b.sb.WriteString(strconv.FormatFloat(a, 'f', -1, 64))
	}
}

func (b *pathBuilder) path(a Attributes) *Path {
	return &Path{Attributes: a, D: b.sb.String()}
}

// lengths resolves several length attributes at once. Each value is
// paired with the axis its percentages refer to.
func (a *Attributes) lengths(element string, vals []string, axes []int) ([]float64, error) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		n, err := a.length(v, axes[i])
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", element, a.ID, err)
		}
		out[i] = n
	}
	return out, nil
}

// ToPath implements the Shape interface. A rect without a positive width
// and height draws nothing.
func (r *Rect) ToPath() (*Path, error) {
	v, err := r.lengths("rect", []string{r.X, r.Y, r.Width, r.Height, r.Rx, r.Ry}, []int{0, 1, 0, 1, 0, 1})
	if err != nil {
		return nil, err
	}
	x, y, w, h, rx, ry := v[0], v[1], v[2], v[3], v[4], v[5]

	var b pathBuilder
	if w <= 0 || h <= 0 {
		return b.path(r.Attributes), nil
	}

	// a single radius applies to both axes
	if strings.TrimSpace(r.Rx) == "" {
		rx = ry
	}
	if strings.TrimSpace(r.Ry) == "" {
		ry = rx
	}
	rx = math.Min(math.Max(rx, 0), w/2)
	ry = math.Min(math.Max(ry, 0), h/2)

	if rx == 0 || ry == 0 {
		b.cmd('M', x, y)
		b.cmd('H', x+w)
		b.cmd('V', y+h)
		b.cmd('H', x)
		b.cmd('Z')
		return b.path(r.Attributes), nil
	}

	b.cmd('M', x+rx, y)
	b.cmd('H', x+w-rx)
	b.cmd('A', rx, ry, 0, 0, 1, x+w, y+ry)
	b.cmd('V', y+h-ry)
	b.cmd('A', rx, ry, 0, 0, 1, x+w-rx, y+h)
	b.cmd('H', x+rx)
	b.cmd('A', rx, ry, 0, 0, 1, x, y+h-ry)
	b.cmd('V', y+ry)
	b.cmd('A', rx, ry, 0, 0, 1, x+rx, y)
	b.cmd('Z')
	return b.path(r.Attributes), nil
}

// ellipse draws a full ellipse as four quarter arcs starting at the
// rightmost point.
func ellipse(a Attributes, cx, cy, rx, ry float64) *Path {
	var b pathBuilder
	if rx <= 0 || ry <= 0 {
		return b.path(a)
	}
	b.cmd('M', cx+rx, cy)
	b.cmd('A', rx, ry, 0, 0, 1, cx, cy+ry)
	b.cmd('A', rx, ry, 0, 0, 1, cx-rx, cy)
	b.cmd('A', rx, ry, 0, 0, 1, cx, cy-ry)
	b.cmd('A', rx, ry, 0, 0, 1, cx+rx, cy)
	b.cmd('Z')
	return b.path(a)
}

// ToPath implements the Shape interface.
func (c *Circle) ToPath() (*Path, error) {
	v, err := c.lengths("circle", []string{c.Cx, c.Cy, c.R}, []int{0, 1, 2})
	if err != nil {
		return nil, err
	}
	return ellipse(c.Attributes, v[0], v[1], v[2], v[2]), nil
}

// ToPath implements the Shape interface.
func (e *Ellipse) ToPath() (*Path, error) {
	v, err := e.lengths("ellipse", []string{e.Cx, e.Cy, e.Rx, e.Ry}, []int{0, 1, 0, 1})
	if err != nil {
		return nil, err
	}
	return ellipse(e.Attributes, v[0], v[1], v[2], v[3]), nil
}

// ToPath implements the Shape interface.
func (l *Line) ToPath() (*Path, error) {
	v, err := l.lengths("line", []string{l.X1, l.Y1, l.X2, l.Y2}, []int{0, 1, 0, 1})
	if err != nil {
		return nil, err
	}
	var b pathBuilder
	b.cmd('M', v[0], v[1])
	b.cmd('L', v[2], v[3])
	return b.path(l.Attributes), nil
}

// points draws the vertex list of a polyline or polygon. An odd trailing
// coordinate is ignored.
func points(a Attributes, element, list string, closed bool) (*Path, error) {
	nums, err := parseNumberList(element, list)
	if err != nil {
		return nil, fmt.Errorf("%s %q: %w", element, a.ID, err)
	}

	var b pathBuilder
	if len(nums) < 2 {
		return b.path(a), nil
	}
	b.cmd('M', nums[0], nums[1])
	for i := 2; i+1 < len(nums); i += 2 {
		b.cmd('L', nums[i], nums[i+1])
	}
	if closed {
		b.cmd('Z')
	}
	return b.path(a), nil
}

// ToPath implements the Shape interface.
func (p *PolyLine) ToPath() (*Path, error) {
	return points(p.Attributes, "polyline", p.Points, false)
}

// ToPath implements the Shape interface.
func (p *Polygon) ToPath() (*Path, error) {
	return points(p.Attributes, "polygon", p.Points, true)
}
