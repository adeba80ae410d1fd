package svg

import (
	"math"

	mt "github.com/rustyoz/Mtransform"
)

// Tuple is an X,Y coordinate
type Tuple [2]float64

// Segment is one drawing command of a subpath, already mapped into
// document space. Point evaluates the segment at its own parameter t in
// [0,1].
type Segment interface {
	Start() Tuple
	End() Tuple
	Point(t float64) Tuple
}

// Linear is a straight segment.
type Linear struct {
	From, To Tuple
}

func (l *Linear) Start() Tuple { return l.From }
func (l *Linear) End() Tuple   { return l.To }

func (l *Linear) Point(t float64) Tuple {
	return Tuple{
		l.From[0] + (l.To[0]-l.From[0])*t,
		l.From[1] + (l.To[1]-l.From[1])*t,
	}
}

// Quadratic is a quadratic Bézier curve.
type Quadratic struct {
	P0, P1, P2 Tuple
}

func (q *Quadratic) Start() Tuple { return q.P0 }
func (q *Quadratic) End() Tuple   { return q.P2 }

func (q *Quadratic) Point(t float64) Tuple {
	u := 1 - t
	a, b, c := u*u, 2*u*t, t*t
	return Tuple{
		a*q.P0[0] + b*q.P1[0] + c*q.P2[0],
		a*q.P0[1] + b*q.P1[1] + c*q.P2[1],
	}
}

// Cubic is a cubic Bézier curve.
type Cubic struct {
	P0, P1, P2, P3 Tuple
}

func (c *Cubic) Start() Tuple { return c.P0 }
func (c *Cubic) End() Tuple   { return c.P3 }

func (c *Cubic) Point(t float64) Tuple {
	u := 1 - t
	a, b, d, e := u*u*u, 3*u*u*t, 3*u*t*t, t*t*t
	return Tuple{
		a*c.P0[0] + b*c.P1[0] + d*c.P2[0] + e*c.P3[0],
		a*c.P0[1] + b*c.P1[1] + d*c.P2[1] + e*c.P3[1],
	}
}

// Arc is an elliptical arc in center parameterization. The ellipse lives
// in the coordinate system of the element that drew it; transform maps it
// into document space, which keeps arcs exact under skew and non-uniform
// scale.
type Arc struct {
	Center       Tuple
	Rx, Ry       float64
	Rotation     float64 // x-axis rotation, radians
	Theta, Delta float64 // start angle and sweep, radians

	from, to  Tuple
	transform mt.Transform
}

func (a *Arc) Start() Tuple { return a.from }
func (a *Arc) End() Tuple   { return a.to }

func (a *Arc) Point(t float64) Tuple {
	switch t {
	case 0:
		return a.from
	case 1:
		return a.to
	}
	sinPhi, cosPhi := math.Sincos(a.Rotation)
	sin, cos := math.Sincos(a.Theta + t*a.Delta)
	x := a.Center[0] + a.Rx*cosPhi*cos - a.Ry*sinPhi*sin
	y := a.Center[1] + a.Rx*sinPhi*cos + a.Ry*cosPhi*sin
	x, y = a.transform.Apply(x, y)
	return Tuple{x, y}
}

// newArc converts the endpoint parameterization of an SVG arc command
// into an Arc. The endpoints are in untransformed element space. It
// returns nil when the radii are degenerate and the arc is a line.
func newArc(p0, p1 Tuple, rx, ry, xrot float64, large, sweep bool, m mt.Transform) *Arc {
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 {
		return nil
	}
	phi := radians(math.Mod(xrot, 360))
	sinPhi, cosPhi := math.Sincos(phi)

	hx, hy := (p0[0]-p1[0])/2, (p0[1]-p1[1])/2
	x1 := cosPhi*hx + sinPhi*hy
	y1 := -sinPhi*hx + cosPhi*hy

	// scale up radii that cannot reach the end point
	if lambda := x1*x1/(rx*rx) + y1*y1/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*y1*y1 - ry*ry*x1*x1
	den := rx*rx*y1*y1 + ry*ry*x1*x1
	var coef float64
	if den != 0 {
		coef = math.Sqrt(math.Max(0, num/den))
	}
	if large == sweep {
		coef = -coef
	}
	cx1 := coef * rx * y1 / ry
	cy1 := -coef * ry * x1 / rx

	cx := cosPhi*cx1 - sinPhi*cy1 + (p0[0]+p1[0])/2
	cy := sinPhi*cx1 + cosPhi*cy1 + (p0[1]+p1[1])/2

	theta := math.Atan2((y1-cy1)/ry, (x1-cx1)/rx)
	delta := math.Atan2((-y1-cy1)/ry, (-x1-cx1)/rx) - theta
	if sweep && delta < 0 {
		delta += 2 * math.Pi
	} else if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	}

	a := &Arc{
		Center:    Tuple{cx, cy},
		Rx:        rx,
		Ry:        ry,
		Rotation:  phi,
		Theta:     theta,
		Delta:     delta,
		transform: m,
	}
	a.from = applyTransform(m, p0)
	a.to = applyTransform(m, p1)
	return a
}

func applyTransform(m mt.Transform, p Tuple) Tuple {
	x, y := m.Apply(p[0], p[1])
	return Tuple{x, y}
}

// maxDepth bounds chord subdivision regardless of tolerance.
const maxDepth = 16

// Precision used to distribute a subpath parameter across its segments.
const (
	pointTolerance = 1e-9
	pointMinDepth  = 5
	pointMaxDepth  = 12
)

// SegmentLength measures a segment. Lines, quadratic curves and circular
// arcs are exact; everything else is approximated by recursive chord
// subdivision.
func SegmentLength(s Segment, tolerance float64, minDepth int) float64 {
	return segmentLength(s, tolerance, minDepth, maxDepth)
}

func segmentLength(s Segment, tolerance float64, minDepth, limit int) float64 {
	switch seg := s.(type) {
	case *Linear:
		return distance(seg.From, seg.To)
	case *Quadratic:
		if l, ok := seg.length(); ok {
			return l
		}
	case *Arc:
		if l, ok := seg.length(); ok {
			return l
		}
	}
	return chordLength(s, 0, 1, s.Start(), s.End(), tolerance, minDepth, limit, 0)
}

// length integrates the speed of the curve in closed form. It reports
// false when the result is not a number.
func (q *Quadratic) length() (float64, bool) {
	ax, ay := q.P0[0]-2*q.P1[0]+q.P2[0], q.P0[1]-2*q.P1[1]+q.P2[1]
	bx, by := 2*(q.P1[0]-q.P0[0]), 2*(q.P1[1]-q.P0[1])
	a, b := math.Hypot(ax, ay), math.Hypot(bx, by)
	dot := ax*bx + ay*by

	switch {
	case a < 1e-12:
		return b, true
	case math.Abs(dot+a*b) < 1e-12:
		// the control point lies beyond an end point and the curve turns back
		if tstar := b / (2 * a); tstar < 1 {
			return a - b + b*b/(2*a), true
		}
		return b - a, true
	}

	c2 := 4 * a * a
	c1 := 4 * dot
	c0 := b * b
	beta := c1 / (2 * c2)
	gamma := c0/c2 - beta*beta
	root := math.Sqrt(c2)
	dq1 := math.Sqrt(c2 + c1 + c0)
	dq0 := math.Sqrt(c0)
	s := (1+beta)*dq1 - beta*dq0 + gamma*root*math.Log((root*(1+beta)+dq1)/(root*beta+dq0))
	s /= 2
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0, false
	}
	return s, true
}

// length is the exact length of a circular arc drawn under a transform
// that keeps circles circular. Other arcs report false.
func (a *Arc) length() (float64, bool) {
	if math.Abs(a.Rx-a.Ry) > 1e-12*math.Max(a.Rx, a.Ry) {
		return 0, false
	}
	k, ok := similarity(a.transform)
	if !ok {
		return 0, false
	}
	return math.Abs(a.Delta) * a.Rx * k, true
}

// similarity returns the uniform scale factor of m when m is a rotation,
// reflection and uniform scale combined.
func similarity(m mt.Transform) (float64, bool) {
	a, c := m[0][0], m[0][1]
	b, d := m[1][0], m[1][1]
	k := math.Hypot(a, b)
	eps := 1e-12 * math.Max(k, 1)
	rotation := math.Abs(a-d) <= eps && math.Abs(b+c) <= eps
	reflection := math.Abs(a+d) <= eps && math.Abs(b-c) <= eps
	return k, k > 0 && (rotation || reflection)
}

func chordLength(s Segment, t0, t1 float64, p0, p1 Tuple, tolerance float64, minDepth, limit, depth int) float64 {
	mid := (t0 + t1) / 2
	pm := s.Point(mid)
	whole := distance(p0, p1)
	halves := distance(p0, pm) + distance(pm, p1)
	if depth < limit && (math.Abs(halves-whole) > tolerance || depth < minDepth) {
		return chordLength(s, t0, mid, p0, pm, tolerance, minDepth, limit, depth+1) +
			chordLength(s, mid, t1, pm, p1, tolerance, minDepth, limit, depth+1)
	}
	return halves
}

// Subpath is a single contour: a start point and the segments drawn from
// it up to the next moveto.
type Subpath struct {
	Start    Tuple
	Segments []Segment
	Closed   bool

	lengths []float64
	total   float64
}

// End returns the last point of the subpath.
func (s *Subpath) End() Tuple {
	if len(s.Segments) == 0 {
		return s.Start
	}
	return s.Segments[len(s.Segments)-1].End()
}

// Length returns the arc length of the subpath. tolerance and minDepth
// control the chord subdivision of curved segments.
func (s *Subpath) Length(tolerance float64, minDepth int) float64 {
	var total float64
	for _, seg := range s.Segments {
		total += SegmentLength(seg, tolerance, minDepth)
	}
	return total
}

// Point returns the position at t in [0,1]. The parameter is spread over
// the segments in proportion to their length and then used as the
// parameter of the segment it falls in.
func (s *Subpath) Point(t float64) Tuple {
	if len(s.Segments) == 0 || t <= 0 {
		return s.Start
	}
	if t >= 1 {
		return s.End()
	}

	s.measure()
	if s.total == 0 {
		return s.Start
	}

	target := t * s.total
	var acc float64
	for i, seg := range s.Segments {
		l := s.lengths[i]
		if l > 0 && acc+l >= target {
			return seg.Point((target - acc) / l)
		}
		acc += l
	}
	return s.End()
}

func (s *Subpath) measure() {
	if s.lengths != nil {
		return
	}
	s.lengths = make([]float64, len(s.Segments))
	s.total = 0
	for i, seg := range s.Segments {
		s.lengths[i] = segmentLength(seg, pointTolerance, pointMinDepth, pointMaxDepth)
		s.total += s.lengths[i]
	}
}
