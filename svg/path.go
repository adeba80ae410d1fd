package svg

import (
	"errors"
	"fmt"

	mt "github.com/rustyoz/Mtransform"
	gl "github.com/rustyoz/genericlexer"
)

// Path is an SVG XML path element
type Path struct {
	Attributes
	D string `xml:"d,attr"`
}

// ToPath implements the Shape interface.
func (p *Path) ToPath() (*Path, error) {
	return p, nil
}

var (
	errNoMoveTo       = errors.New("path data must begin with a moveto")
	errUnknownCommand = errors.New("unknown command")
)

type pathDescriptionParser struct {
	p         *Path
	lex       *gl.Lexer
	transform mt.Transform

	// current point and start of the current subpath, element space
	x, y           float64
	startX, startY float64

	// reflected control point for S/s and T/t
	ctrl     Tuple
	lastCmd  byte
	subpaths []*Subpath
	current  *Subpath
}

// Subpaths interprets the path description and transform attributes and
// returns the contours of the path in document space. Every moveto starts
// a new subpath.
func (p *Path) Subpaths() ([]*Subpath, error) {
	t, err := p.transform()
	if err != nil {
		return nil, fmt.Errorf("path %q: %w", p.ID, err)
	}
	l, _ := gl.Lex(fmt.Sprint(p.ID), p.D)
	pdp := &pathDescriptionParser{p: p, lex: l, transform: t}

	for {
		i := pdp.lex.NextItem()
		switch i.Type {
		case gl.ItemEOS:
			return pdp.subpaths, nil
		case gl.ItemError:
			return nil, fmt.Errorf("path %q: %s", p.ID, i.Value)
		case gl.ItemLetter:
			for _, c := range []byte(i.Value) {
				if err := pdp.parseCommand(c); err != nil {
					return nil, fmt.Errorf("path %q: %c command: %w", p.ID, c, err)
				}
			}
		case gl.ItemNumber:
			return nil, fmt.Errorf("path %q: number %s without a command", p.ID, i.Value)
		}
	}
}

func (pdp *pathDescriptionParser) parseCommand(c byte) error {
	if pdp.current == nil && c != 'M' && c != 'm' {
		return errNoMoveTo
	}

	var err error
	switch c {
	case 'M', 'm':
		err = pdp.parseMoveTo(c == 'm')
	case 'L', 'l':
		err = pdp.parseLineTo(c == 'l')
	case 'H', 'h':
		err = pdp.parseHLineTo(c == 'h')
	case 'V', 'v':
		err = pdp.parseVLineTo(c == 'v')
	case 'C', 'c':
		err = pdp.parseCurveTo(c == 'c')
	case 'S', 's':
		err = pdp.parseSmoothCurveTo(c == 's')
	case 'Q', 'q':
		err = pdp.parseQuadTo(c == 'q')
	case 'T', 't':
		err = pdp.parseSmoothQuadTo(c == 't')
	case 'A', 'a':
		err = pdp.parseArcTo(c == 'a')
	case 'Z', 'z':
		pdp.parseClose()
	default:
		return errUnknownCommand
	}
	if err != nil {
		return err
	}
	pdp.lastCmd = c
	return nil
}

func (pdp *pathDescriptionParser) apply(x, y float64) Tuple {
	x, y = pdp.transform.Apply(x, y)
	return Tuple{x, y}
}

// abs resolves a relative coordinate pair against the current point.
func (pdp *pathDescriptionParser) abs(t Tuple, rel bool) Tuple {
	if rel {
		return Tuple{pdp.x + t[0], pdp.y + t[1]}
	}
	return t
}

func (pdp *pathDescriptionParser) add(seg Segment, x, y float64) {
	pdp.current.Segments = append(pdp.current.Segments, seg)
	pdp.x, pdp.y = x, y
}

// repeat runs fn once and then again for as long as numbers follow, which
// implements implicit command repetition.
func (pdp *pathDescriptionParser) repeat(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	for hasNumber(pdp.lex) {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

func (pdp *pathDescriptionParser) parseMoveTo(rel bool) error {
	t, err := parseTuple(pdp.lex)
	if err != nil {
		return err
	}
	t = pdp.abs(t, rel && pdp.current != nil)

	pdp.x, pdp.y = t[0], t[1]
	pdp.startX, pdp.startY = t[0], t[1]
	pdp.current = &Subpath{Start: pdp.apply(t[0], t[1])}
	pdp.subpaths = append(pdp.subpaths, pdp.current)

	// extra pairs after a moveto are implicit linetos
	for hasNumber(pdp.lex) {
		if err := pdp.lineTo(rel); err != nil {
			return err
		}
	}
	return nil
}

func (pdp *pathDescriptionParser) parseLineTo(rel bool) error {
	return pdp.repeat(func() error { return pdp.lineTo(rel) })
}

func (pdp *pathDescriptionParser) lineTo(rel bool) error {
	t, err := parseTuple(pdp.lex)
	if err != nil {
		return err
	}
	t = pdp.abs(t, rel)
	pdp.line(t[0], t[1])
	return nil
}

func (pdp *pathDescriptionParser) line(x, y float64) {
	pdp.add(&Linear{From: pdp.apply(pdp.x, pdp.y), To: pdp.apply(x, y)}, x, y)
}

func (pdp *pathDescriptionParser) parseHLineTo(rel bool) error {
	return pdp.repeat(func() error {
		var n [1]float64
		if err := parseNumbers(pdp.lex, n[:]); err != nil {
			return err
		}
		x := n[0]
		if rel {
			x += pdp.x
		}
		pdp.line(x, pdp.y)
		return nil
	})
}

func (pdp *pathDescriptionParser) parseVLineTo(rel bool) error {
	return pdp.repeat(func() error {
		var n [1]float64
		if err := parseNumbers(pdp.lex, n[:]); err != nil {
			return err
		}
		y := n[0]
		if rel {
			y += pdp.y
		}
		pdp.line(pdp.x, y)
		return nil
	})
}

func (pdp *pathDescriptionParser) parseCurveTo(rel bool) error {
	return pdp.repeat(func() error {
		var n [6]float64
		if err := parseNumbers(pdp.lex, n[:]); err != nil {
			return err
		}
		c1 := pdp.abs(Tuple{n[0], n[1]}, rel)
		c2 := pdp.abs(Tuple{n[2], n[3]}, rel)
		end := pdp.abs(Tuple{n[4], n[5]}, rel)
		pdp.cubic(c1, c2, end)
		return nil
	})
}

func (pdp *pathDescriptionParser) parseSmoothCurveTo(rel bool) error {
	return pdp.repeat(func() error {
		var n [4]float64
		if err := parseNumbers(pdp.lex, n[:]); err != nil {
			return err
		}
		c1 := Tuple{pdp.x, pdp.y}
		if pdp.lastCmd == 'C' || pdp.lastCmd == 'c' || pdp.lastCmd == 'S' || pdp.lastCmd == 's' {
			c1 = Tuple{2*pdp.x - pdp.ctrl[0], 2*pdp.y - pdp.ctrl[1]}
		}
		c2 := pdp.abs(Tuple{n[0], n[1]}, rel)
		end := pdp.abs(Tuple{n[2], n[3]}, rel)
		pdp.cubic(c1, c2, end)
		// repetitions reflect the curve just drawn
		pdp.lastCmd = 'S'
		return nil
	})
}

func (pdp *pathDescriptionParser) cubic(c1, c2, end Tuple) {
	seg := &Cubic{
		P0: pdp.apply(pdp.x, pdp.y),
		P1: pdp.apply(c1[0], c1[1]),
		P2: pdp.apply(c2[0], c2[1]),
		P3: pdp.apply(end[0], end[1]),
	}
	pdp.ctrl = c2
	pdp.add(seg, end[0], end[1])
}

func (pdp *pathDescriptionParser) parseQuadTo(rel bool) error {
	return pdp.repeat(func() error {
		var n [4]float64
		if err := parseNumbers(pdp.lex, n[:]); err != nil {
			return err
		}
		c := pdp.abs(Tuple{n[0], n[1]}, rel)
		end := pdp.abs(Tuple{n[2], n[3]}, rel)
		pdp.quad(c, end)
		return nil
	})
}

func (pdp *pathDescriptionParser) parseSmoothQuadTo(rel bool) error {
	return pdp.repeat(func() error {
		end, err := parseTuple(pdp.lex)
		if err != nil {
			return err
		}
		end = pdp.abs(end, rel)
		c := Tuple{pdp.x, pdp.y}
		if pdp.lastCmd == 'Q' || pdp.lastCmd == 'q' || pdp.lastCmd == 'T' || pdp.lastCmd == 't' {
			c = Tuple{2*pdp.x - pdp.ctrl[0], 2*pdp.y - pdp.ctrl[1]}
		}
		pdp.quad(c, end)
		pdp.lastCmd = 'T'
		return nil
	})
}

func (pdp *pathDescriptionParser) quad(c, end Tuple) {
	seg := &Quadratic{
		P0: pdp.apply(pdp.x, pdp.y),
		P1: pdp.apply(c[0], c[1]),
		P2: pdp.apply(end[0], end[1]),
	}
	pdp.ctrl = c
	pdp.add(seg, end[0], end[1])
}

func (pdp *pathDescriptionParser) parseArcTo(rel bool) error {
	return pdp.repeat(func() error {
		var n [7]float64
		if err := parseNumbers(pdp.lex, n[:]); err != nil {
			return err
		}
		end := pdp.abs(Tuple{n[5], n[6]}, rel)
		if end[0] == pdp.x && end[1] == pdp.y {
			// zero length arcs are omitted
			return nil
		}
		arc := newArc(Tuple{pdp.x, pdp.y}, end, n[0], n[1], n[2], n[3] != 0, n[4] != 0, pdp.transform)
		if arc == nil {
			pdp.line(end[0], end[1])
			return nil
		}
		pdp.add(arc, end[0], end[1])
		return nil
	})
}

func (pdp *pathDescriptionParser) parseClose() {
	pdp.lex.ConsumeWhiteSpace()

	pdp.add(&Linear{
		From: pdp.apply(pdp.x, pdp.y),
		To:   pdp.apply(pdp.startX, pdp.startY),
	}, pdp.startX, pdp.startY)
	pdp.current.Closed = true
}
