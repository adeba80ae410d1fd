package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	gl "github.com/rustyoz/genericlexer"
	"github.com/tdewolff/parse/v2"
)

func parseNumber(i gl.Item) (float64, error) {
	if i.Type != gl.ItemNumber {
		return 0, fmt.Errorf("expected number, got %q", i.Value)
	}
	n, err := strconv.ParseFloat(i.Value, 64)
	if err != nil {
		return 0, fmt.Errorf("error parsing number %q: %w", i.Value, err)
	}
	return n, nil
}

// skipSeparators consumes the whitespace and the single optional comma
// allowed between two numbers.
func skipSeparators(l *gl.Lexer) {
	l.ConsumeWhiteSpace()
	l.ConsumeComma()
	l.ConsumeWhiteSpace()
}

// hasNumber reports whether another number follows, skipping separators.
func hasNumber(l *gl.Lexer) bool {
	skipSeparators(l)
	return l.PeekItem().Type == gl.ItemNumber
}

func parseTuple(l *gl.Lexer) (Tuple, error) {
	var t Tuple
	for i := range t {
		skipSeparators(l)
		n, err := parseNumber(l.NextItem())
		if err != nil {
			return t, err
		}
		t[i] = n
	}
	return t, nil
}

// parseNumbers reads exactly len(dst) numbers.
func parseNumbers(l *gl.Lexer, dst []float64) error {
	for i := range dst {
		skipSeparators(l)
		n, err := parseNumber(l.NextItem())
		if err != nil {
			return err
		}
		dst[i] = n
	}
	return nil
}

// parseNumberList lexes a whitespace or comma separated list of numbers,
// as used by transform arguments and polyline points.
func parseNumberList(name, s string) ([]float64, error) {
	l, _ := gl.Lex(name, s)
	var nums []float64
	for {
		skipSeparators(l)
		i := l.NextItem()
		switch i.Type {
		case gl.ItemEOS:
			return nums, nil
		case gl.ItemError:
			return nil, fmt.Errorf("%s: %s", name, i.Value)
		}
		n, err := parseNumber(i)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		nums = append(nums, n)
	}
}

// splitStyle turns an inline style attribute into a property map.
func splitStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		kv := strings.SplitN(decl, ":", 2)
		if len(kv) != 2 {
			continue
		}
		props[strings.ToLower(strings.TrimSpace(kv[0]))] = strings.TrimSpace(kv[1])
	}
	return props
}

// parseLength converts a length attribute to user units at 96 DPI.
// Percentages are resolved against ref.
func parseLength(v string, ref float64) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}

	nn, _ := parse.Dimension([]byte(v))
	if nn == 0 {
		return 0, fmt.Errorf("bad length %q", v)
	}
	num, err := strconv.ParseFloat(v[:nn], 64)
	if err != nil {
		return 0, fmt.Errorf("bad length %q: %w", v, err)
	}

	switch unit := strings.ToLower(strings.TrimSpace(v[nn:])); unit {
	case "", "px":
		return num, nil
	case "mm":
		return num * 96.0 / 25.4, nil
	case "cm":
		return num * 10.0 * 96.0 / 25.4, nil
	case "q":
		return num * 0.25 * 96.0 / 25.4, nil
	case "in":
		return num * 96.0, nil
	case "pt":
		return num * 96.0 / 72.0, nil
	case "pc":
		return num * 96.0 / 6.0, nil
	case "%":
		return num * ref / 100.0, nil
	default:
		return 0, fmt.Errorf("unknown unit %q in length %q", unit, v)
	}
}

func distance(a, b Tuple) float64 {
	return math.Hypot(b[0]-a[0], b[1]-a[1])
}
