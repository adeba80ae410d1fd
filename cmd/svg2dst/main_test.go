package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasalvit/svg2dst"
	"github.com/vasalvit/svg2dst/dst"
)

const lineSvg = `<svg xmlns="http://www.w3.org/2000/svg"><path d="M0 0 L100 0"/></svg>`

func runCLI(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeSvg(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUsage(t *testing.T) {
	for _, args := range [][]string{nil, {"only.svg"}, {"-v", "only.svg"}} {
		code, stdout, stderr := runCLI(args...)
		assert.Equal(t, 1, code)
		assert.Empty(t, stdout)
		assert.Equal(t, usage+"\n", stderr)
	}
}

func TestUnknownFlag(t *testing.T) {
	code, _, stderr := runCLI("-nope", "a.svg", "b.dst")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, usage)
}

func TestFileNotFound(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.svg")
	code, stdout, stderr := runCLI(missing, "out.dst")
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Equal(t, "Error: File not found: "+missing+"\n", stderr)
}

func TestConvertSuccess(t *testing.T) {
	dir := t.TempDir()
	in := writeSvg(t, dir, "line.svg", lineSvg)
	out := filepath.Join(dir, "line.dst")

	code, stdout, stderr := runCLI("-label", "hoop", in, out)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "✓ Converted to: "+out+"\n", stdout)
	assert.Empty(t, stderr)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	h, stitches, err := dst.Read(f)
	require.NoError(t, err)
	assert.Equal(t, "hoop", h.Label)
	assert.Len(t, stitches, 7)
}

func TestVerbose(t *testing.T) {
	dir := t.TempDir()
	in := writeSvg(t, dir, "line.svg", lineSvg)

	code, _, stderr := runCLI("-v", in, filepath.Join(dir, "line.dst"))
	require.Equal(t, 0, code)
	assert.Contains(t, stderr, "subpath 0: 6 points")
	assert.Contains(t, stderr, "done in")
}

func TestOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	in := writeSvg(t, dir, "logo.svg", lineSvg)
	outDir := filepath.Join(dir, "out") + string(os.PathSeparator)

	code, stdout, _ := runCLI(in, outDir)
	require.Equal(t, 0, code)

	want := filepath.Join(dir, "out", "logo.dst")
	assert.Equal(t, "✓ Converted to: "+want+"\n", stdout)
	_, err := os.Stat(want)
	assert.NoError(t, err)

	// an existing directory without a trailing separator
	code, stdout, _ = runCLI(in, filepath.Join(dir, "out"))
	require.Equal(t, 0, code)
	assert.Equal(t, "✓ Converted to: "+want+"\n", stdout)
}

func TestConversionError(t *testing.T) {
	dir := t.TempDir()
	in := writeSvg(t, dir, "broken.svg", `<svg><path d="M0 0`)

	code, stdout, stderr := runCLI(in, filepath.Join(dir, "broken.dst"))
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.True(t, strings.HasPrefix(stderr, "Error: parsing "), stderr)
}

func TestMissingDependency(t *testing.T) {
	defer func(orig func(string) *svg2dst.Converter) { newConverter = orig }(newConverter)
	newConverter = func(label string) *svg2dst.Converter {
		c := svg2dst.NewConverter(label)
		c.Writer = nil
		return c
	}

	dir := t.TempDir()
	in := writeSvg(t, dir, "line.svg", lineSvg)

	code, _, stderr := runCLI(in, filepath.Join(dir, "line.dst"))
	assert.Equal(t, 1, code)
	assert.Equal(t, "Error: Missing dependency - no DST writer configured\n"+installHint+"\n", stderr)
}
