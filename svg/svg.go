package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	mt "github.com/rustyoz/Mtransform"
	"golang.org/x/net/html/charset"
)

// Element is a node that can appear inside a document or group: a Shape
// or a nested *Group.
type Element interface {
	bind(g *Group, s *Svg)
}

// Shape is a drawable element. Basic shapes convert to the path element
// that outlines them; a Path converts to itself.
type Shape interface {
	Element
	ToPath() (*Path, error)
}

// Attributes holds the presentation attributes shared by all shapes.
type Attributes struct {
	ID              string `xml:"id,attr"`
	TransformString string `xml:"transform,attr"`
	Style           string `xml:"style,attr"`

	group *Group
	owner *Svg
}

func (a *Attributes) bind(g *Group, s *Svg) {
	a.group = g
	a.owner = s
}

// transform returns the element to document transform: the root
// viewport, every enclosing group from the outside in, then the element's
// own transform attribute.
func (a *Attributes) transform() (mt.Transform, error) {
	t := mt.Identity()
	if a.owner != nil && a.owner.Transform != nil {
		t = *a.owner.Transform
	}

	var chain []*Group
	for g := a.group; g != nil; g = g.Parent {
		chain = append(chain, g)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		if chain[i].Transform != nil {
			t = mt.MultiplyTransforms(t, *chain[i].Transform)
		}
	}

	if a.TransformString != "" {
		own, err := parseTransform(a.TransformString)
		if err != nil {
			return t, err
		}
		t = mt.MultiplyTransforms(t, own)
	}
	return t, nil
}

// length resolves a length attribute. Percentages refer to the viewport
// width (axis 0), height (axis 1) or normalized diagonal (axis 2).
func (a *Attributes) length(v string, axis int) (float64, error) {
	var ref float64
	if a.owner != nil {
		w, h := a.owner.width, a.owner.height
		switch axis {
		case 0:
			ref = w
		case 1:
			ref = h
		default:
			ref = math.Sqrt((w*w + h*h) / 2)
		}
	}
	return parseLength(v, ref)
}

// Svg represents an SVG document. Elements keeps groups and shapes in
// document order.
type Svg struct {
	Name      string
	Elements  []Element
	Transform *mt.Transform

	ViewBox             [4]float64
	Width, Height       float64
	PreserveAspectRatio string

	hasViewBox    bool
	width, height float64 // viewport in user units, for percentages
}

// Group represents an SVG group (usually located in a 'g' XML element)
type Group struct {
	ID              string
	TransformString string
	Transform       *mt.Transform
	Elements        []Element
	Parent          *Group
	Owner           *Svg
}

func (g *Group) bind(parent *Group, s *Svg) {
	g.Parent = parent
	g.Owner = s
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (g *Group) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	for _, attr := range start.Attr {
		switch attr.Name.Local {
		case "id":
			g.ID = attr.Value
		case "transform":
			g.TransformString = attr.Value
			t, err := parseTransform(g.TransformString)
			if err != nil {
				return fmt.Errorf("group %q: %w", g.ID, err)
			}
			g.Transform = &t
		}
	}

	elements, err := decodeChildren(decoder, g, g.Owner)
	if err != nil {
		return err
	}
	g.Elements = elements
	return nil
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
func (s *Svg) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != "svg" {
		return fmt.Errorf("expected svg root element, found %s", start.Name.Local)
	}

	for _, attr := range start.Attr {
		var err error
		switch attr.Name.Local {
		case "width":
			s.Width, err = parseLength(attr.Value, 0)
		case "height":
			s.Height, err = parseLength(attr.Value, 0)
		case "viewBox":
			err = s.parseViewBox(attr.Value)
		case "preserveAspectRatio":
			s.PreserveAspectRatio = strings.TrimSpace(attr.Value)
		}
		if err != nil {
			return fmt.Errorf("svg %s attribute: %w", attr.Name.Local, err)
		}
	}
	s.width, s.height = s.Width, s.Height
	if s.hasViewBox {
		s.width, s.height = s.ViewBox[2], s.ViewBox[3]
	}

	elements, err := decodeChildren(decoder, nil, s)
	if err != nil {
		return err
	}
	s.Elements = elements
	return nil
}

func (s *Svg) parseViewBox(v string) error {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return fmt.Errorf("bad viewBox %q", v)
	}
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return fmt.Errorf("bad viewBox %q: %w", v, err)
		}
		s.ViewBox[i] = n
	}
	s.hasViewBox = s.ViewBox[2] > 0 && s.ViewBox[3] > 0
	return nil
}

// viewport maps viewBox user units onto the width and height of the
// document. Without a usable viewBox it is the identity.
func (s *Svg) viewport() mt.Transform {
	if !s.hasViewBox {
		return mt.Identity()
	}
	minX, minY, vbW, vbH := s.ViewBox[0], s.ViewBox[1], s.ViewBox[2], s.ViewBox[3]
	w, h := s.Width, s.Height
	if w <= 0 {
		w = vbW
	}
	if h <= 0 {
		h = vbH
	}

	sx, sy := w/vbW, h/vbH
	if strings.HasPrefix(s.PreserveAspectRatio, "none") {
		return matrix(sx, 0, 0, sy, -minX*sx, -minY*sy)
	}

	// xMidYMid meet
	k := math.Min(sx, sy)
	tx := (w-vbW*k)/2 - minX*k
	ty := (h-vbH*k)/2 - minY*k
	return matrix(k, 0, 0, k, tx, ty)
}

// containers are walked like groups.
var containers = map[string]bool{"g": true, "a": true, "switch": true, "svg": true}

func newElement(name string) Element {
	switch {
	case containers[name]:
		return &Group{}
	case name == "path":
		return &Path{}
	case name == "rect":
		return &Rect{}
	case name == "circle":
		return &Circle{}
	case name == "ellipse":
		return &Ellipse{}
	case name == "line":
		return &Line{}
	case name == "polyline":
		return &PolyLine{}
	case name == "polygon":
		return &Polygon{}
	}
	return nil
}

// hidden reports whether display is none, either as an attribute or in
// the inline style.
func hidden(attrs []xml.Attr) bool {
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "display":
			if strings.TrimSpace(attr.Value) == "none" {
				return true
			}
		case "style":
			if splitStyle(attr.Value)["display"] == "none" {
				return true
			}
		}
	}
	return false
}

// decodeChildren decodes the children of the current element up to its
// end tag. Unknown elements, including non-rendered containers like defs,
// are skipped together with their subtree.
func decodeChildren(decoder *xml.Decoder, g *Group, s *Svg) ([]Element, error) {
	var elements []Element
	for {
		token, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				return nil, io.ErrUnexpectedEOF
			}
			return nil, err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			e := newElement(tok.Name.Local)
			if e == nil || hidden(tok.Attr) {
				if err := decoder.Skip(); err != nil {
					return nil, err
				}
				continue
			}

			e.bind(g, s)
			if err := decoder.DecodeElement(e, &tok); err != nil {
				return nil, fmt.Errorf("error decoding %s element: %w", tok.Name.Local, err)
			}
			elements = append(elements, e)

		case xml.EndElement:
			return elements, nil
		}
	}
}

// Walk calls fn for every shape of the document in document order,
// descending into groups.
func (s *Svg) Walk(fn func(Shape) error) error {
	return walk(s.Elements, fn)
}

func walk(elements []Element, fn func(Shape) error) error {
	for _, e := range elements {
		switch e := e.(type) {
		case *Group:
			if err := walk(e.Elements, fn); err != nil {
				return err
			}
		case Shape:
			if err := fn(e); err != nil {
				return err
			}
		}
	}
	return nil
}

// ParseSvg parses an SVG string into an SVG struct
func ParseSvg(str string, name string, scale float64) (*Svg, error) {
	return ParseSvgFromReader(strings.NewReader(str), name, scale)
}

// ParseSvgFromReader parses an SVG struct from an io.Reader. A positive
// scale multiplies all coordinates, a negative one divides them.
func ParseSvgFromReader(r io.Reader, name string, scale float64) (*Svg, error) {
	svg := &Svg{Name: name}

	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charset.NewReaderLabel
	if err := decoder.Decode(svg); err != nil {
		if err == io.EOF {
			err = fmt.Errorf("no svg element found")
		}
		return nil, fmt.Errorf("ParseSvg Error: %v", err)
	}

	t := mt.NewTransform()
	if scale > 0 {
		t.Scale(scale, scale)
	}
	if scale < 0 {
		t.Scale(1.0/-scale, 1.0/-scale)
	}
	root := mt.MultiplyTransforms(*t, svg.viewport())
	svg.Transform = &root
	return svg, nil
}
