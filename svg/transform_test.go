package svg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseTransform(t *testing.T) {
	tests := []struct {
		transform string
		in, out   Tuple
	}{
		{"", Tuple{1, 2}, Tuple{1, 2}},
		{"translate(10)", Tuple{1, 2}, Tuple{11, 2}},
		{"translate(10, 20)", Tuple{1, 2}, Tuple{11, 22}},
		{"scale(3)", Tuple{1, 2}, Tuple{3, 6}},
		{"scale(3 -1)", Tuple{1, 2}, Tuple{3, -2}},
		{"rotate(90)", Tuple{1, 0}, Tuple{0, 1}},
		{"rotate(180 5 5)", Tuple{0, 0}, Tuple{10, 10}},
		{"matrix(1 0 0 1 7 8)", Tuple{1, 2}, Tuple{8, 10}},
		{"skewX(45)", Tuple{0, 1}, Tuple{1, 1}},
		{"skewY(45)", Tuple{1, 0}, Tuple{1, 1}},
		{"translate(10 0) scale(2)", Tuple{1, 1}, Tuple{12, 2}},
		{"scale(2),translate(10 0)", Tuple{1, 1}, Tuple{22, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.transform, func(t *testing.T) {
			m, err := parseTransform(tt.transform)
			require.NoError(t, err)

			got := applyTransform(m, tt.in)
			require.InDelta(t, tt.out[0], got[0], 1e-9)
			require.InDelta(t, tt.out[1], got[1], 1e-9)
		})
	}
}

func TestParseTransformErrors(t *testing.T) {
	for _, s := range []string{
		"translate(1",
		"spin(3)",
		"rotate(1 2)",
		"matrix(1 2 3)",
		"scale(a)",
	} {
		_, err := parseTransform(s)
		require.Error(t, err, s)
	}
}
