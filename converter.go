// Package svg2dst converts SVG vector images into Tajima DST embroidery
// files. Every subpath of the drawing is sampled at fixed intervals: the
// first sample is a jump and the rest are stitches.
package svg2dst

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/vasalvit/svg2dst/dst"
	"github.com/vasalvit/svg2dst/svg"
)

// Parser decodes an SVG document.
type Parser interface {
	Parse(r io.Reader, name string) (*svg.Svg, error)
}

// ParserFunc adapts a function to the Parser interface.
type ParserFunc func(r io.Reader, name string) (*svg.Svg, error)

// Parse calls f(r, name).
func (f ParserFunc) Parse(r io.Reader, name string) (*svg.Svg, error) {
	return f(r, name)
}

// Writer serializes a stitch pattern.
type Writer interface {
	Write(w io.Writer, p *dst.Pattern) error
}

// DependencyError reports a converter that lacks one of its collaborators.
type DependencyError struct {
	Detail string
}

func (e *DependencyError) Error() string {
	return "missing dependency: " + e.Detail
}

// Converter turns SVG files into DST files.
type Converter struct {
	Parser Parser
	Writer Writer

	// Scale multiplies user units into stitch units. Zero means
	// DefaultScale.
	Scale float64
	// SegmentLength is the user space distance covered by one stitch.
	// Zero means DefaultSegmentLength.
	SegmentLength float64
	// Tolerance and MinDepth drive the arc length approximation.
	Tolerance float64
	MinDepth  int

	// Logger receives progress lines when set.
	Logger *log.Logger
}

// NewConverter returns a converter using the svg and dst packages, with
// the given DST header label.
func NewConverter(label string) *Converter {
	return &Converter{
		Parser:        ParserFunc(parseSvg),
		Writer:        &dst.Writer{Label: label},
		Scale:         DefaultScale,
		SegmentLength: DefaultSegmentLength,
		Tolerance:     DefaultTolerance,
		MinDepth:      DefaultMinDepth,
	}
}

func parseSvg(r io.Reader, name string) (*svg.Svg, error) {
	return svg.ParseSvgFromReader(r, name, 0)
}

func (c *Converter) logf(format string, v ...interface{}) {
	if c.Logger != nil {
		c.Logger.Printf(format, v...)
	}
}

func (c *Converter) check() error {
	switch {
	case c.Parser == nil:
		return &DependencyError{Detail: "no SVG parser configured"}
	case c.Writer == nil:
		return &DependencyError{Detail: "no DST writer configured"}
	}
	return nil
}

// Convert reads the SVG at svgPath and writes the DST pattern to dstPath.
// The caller is expected to have checked that svgPath exists. The pattern
// is fully encoded before dstPath is created.
func (c *Converter) Convert(svgPath, dstPath string) error {
	if err := c.check(); err != nil {
		return err
	}

	f, err := os.Open(svgPath)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := c.Parser.Parse(f, filepath.Base(svgPath))
	if err != nil {
		return fmt.Errorf("parsing %s: %w", svgPath, err)
	}

	p, err := c.Pattern(doc)
	if err != nil {
		return fmt.Errorf("sampling %s: %w", svgPath, err)
	}

	var buf bytes.Buffer
	if err := c.Writer.Write(&buf, p); err != nil {
		return fmt.Errorf("encoding dst: %w", err)
	}
	if err := os.WriteFile(dstPath, buf.Bytes(), 0o644); err != nil {
		return err
	}

	c.logf("%s: %d jumps, %d stitches, %d bytes", dstPath,
		p.Count(dst.CmdJump), p.Count(dst.CmdStitch), buf.Len())
	return nil
}

// Pattern samples every subpath of doc in document order and returns the
// resulting stitch pattern, terminated by an END at (0,0).
func (c *Converter) Pattern(doc *svg.Svg) (*dst.Pattern, error) {
	p := &dst.Pattern{}
	err := doc.Walk(func(s svg.Shape) error {
		path, err := s.ToPath()
		if err != nil {
			return err
		}
		subpaths, err := path.Subpaths()
		if err != nil {
			return err
		}

		for i, sp := range subpaths {
			points := c.Sample(sp)
			for j, pt := range points {
				cmd := dst.CmdStitch
				if j == 0 {
					cmd = dst.CmdJump
				}
				p.AddStitchAbsolute(cmd, pt.X, pt.Y)
			}
			c.logf("path %q subpath %d: %d points", path.ID, i, len(points))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	p.AddStitchAbsolute(dst.CmdEnd, 0, 0)
	return p, nil
}
