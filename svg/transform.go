package svg

import (
	"fmt"
	"math"
	"strings"

	mt "github.com/rustyoz/Mtransform"
)

// matrix builds the affine transform of the SVG matrix(a b c d e f)
// function.
func matrix(a, b, c, d, e, f float64) mt.Transform {
	return mt.Transform{
		{a, c, e},
		{b, d, f},
		{0, 0, 1},
	}
}

// parseTransform parses a transform attribute. Functions are composed left
// to right, so the rightmost one is applied to points first.
func parseTransform(s string) (mt.Transform, error) {
	t := mt.Identity()
	rest := strings.TrimSpace(s)
	for rest != "" {
		open := strings.IndexByte(rest, '(')
		end := strings.IndexByte(rest, ')')
		if open < 0 || end < open {
			return t, fmt.Errorf("malformed transform %q", s)
		}

		name := strings.TrimSpace(rest[:open])
		args, err := parseNumberList(name, rest[open+1:end])
		if err != nil {
			return t, fmt.Errorf("malformed transform %q: %w", s, err)
		}
		m, err := transformFunc(name, args)
		if err != nil {
			return t, err
		}
		t = mt.MultiplyTransforms(t, m)

		rest = strings.TrimLeft(rest[end+1:], ", \t\r\n")
	}
	return t, nil
}

func transformFunc(name string, args []float64) (mt.Transform, error) {
	argc := len(args)
	switch {
	case name == "matrix" && argc == 6:
		return matrix(args[0], args[1], args[2], args[3], args[4], args[5]), nil
	case name == "translate" && argc == 1:
		return matrix(1, 0, 0, 1, args[0], 0), nil
	case name == "translate" && argc == 2:
		return matrix(1, 0, 0, 1, args[0], args[1]), nil
	case name == "scale" && argc == 1:
		return matrix(args[0], 0, 0, args[0], 0, 0), nil
	case name == "scale" && argc == 2:
		return matrix(args[0], 0, 0, args[1], 0, 0), nil
	case name == "rotate" && argc == 1:
		return rotation(args[0]), nil
	case name == "rotate" && argc == 3:
		cx, cy := args[1], args[2]
		t := mt.MultiplyTransforms(matrix(1, 0, 0, 1, cx, cy), rotation(args[0]))
		return mt.MultiplyTransforms(t, matrix(1, 0, 0, 1, -cx, -cy)), nil
	case name == "skewX" && argc == 1:
		return matrix(1, 0, math.Tan(radians(args[0])), 1, 0, 0), nil
	case name == "skewY" && argc == 1:
		return matrix(1, math.Tan(radians(args[0])), 0, 1, 0, 0), nil
	}
	return mt.Identity(), fmt.Errorf("unsupported transform %s with %d arguments", name, argc)
}

func rotation(deg float64) mt.Transform {
	sin, cos := math.Sincos(radians(deg))
	return matrix(cos, sin, -sin, cos, 0, 0)
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
