package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vasalvit/svg2dst"
	"github.com/vasalvit/svg2dst/dst"
	"github.com/vasalvit/svg2dst/utils"
)

const (
	usage       = "Usage: svg2dst [-label name] [-v] <input.svg> <output.dst>"
	installHint = "Install: go install github.com/vasalvit/svg2dst/cmd/svg2dst@latest"
)

// newConverter builds the converter used by run.
var newConverter = svg2dst.NewConverter

func main() {
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("svg2dst", flag.ContinueOnError)
	flags.SetOutput(stderr)
	label := flags.String("label", dst.DefaultLabel, "DST header label")
	verbose := flags.Bool("v", false, "Log every sampled subpath")
	flags.Usage = func() {
		fmt.Fprintln(stderr, usage)
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 1
	}

	out := utils.NewDecorator(stdout)
	errOut := utils.NewDecorator(stderr)
	fail := func(format string, v ...interface{}) int {
		fmt.Fprintln(stderr, errOut.Text(fmt.Sprintf(format, v...), utils.ErrorMessage))
		return 1
	}

	if flags.NArg() < 2 {
		fmt.Fprintln(stderr, usage)
		return 1
	}
	input, output := flags.Arg(0), flags.Arg(1)

	if _, err := os.Stat(input); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fail("Error: File not found: %s", input)
		}
		return fail("Error: %v", err)
	}

	output, err := resolveOutput(input, output)
	if err != nil {
		return fail("Error: %v", err)
	}

	c := newConverter(*label)
	if *verbose {
		c.Logger = log.New(stderr, errOut.Text("svg2dst ", utils.StatusMessage), 0)
	}

	start := time.Now()
	if err := c.Convert(input, output); err != nil {
		var depErr *svg2dst.DependencyError
		if errors.As(err, &depErr) {
			return fail("Error: Missing dependency - %s\n%s", depErr.Detail, installHint)
		}
		return fail("Error: %v", err)
	}

	fmt.Fprintln(stdout, out.Text("✓ Converted to: "+output, utils.SuccessMessage))
	if *verbose {
		c.Logger.Printf("done in %s", utils.FormatTime(time.Since(start)))
	}
	return 0
}

// resolveOutput returns the DST file to write. An output naming an
// existing directory, or ending in a path separator, receives the input
// base name with a .dst extension; the directory is created if missing.
func resolveOutput(input, output string) (string, error) {
	dir := strings.HasSuffix(output, "/") || strings.HasSuffix(output, string(os.PathSeparator))
	if !dir {
		fi, err := os.Stat(output)
		dir = err == nil && fi.IsDir()
	}
	if !dir {
		return output, nil
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		return "", err
	}
	base := filepath.Base(input)
	return filepath.Join(output, strings.TrimSuffix(base, filepath.Ext(base))+".dst"), nil
}
