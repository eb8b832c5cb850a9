package main

import (
	"bytes"
	"flag"
	"fmt"
	"strings"

	"github.com/mush1e/drunken-diver/internal/config"
	"github.com/mush1e/drunken-diver/internal/converter"
)

// stringList collects every use of a repeatable flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

type cliOptions struct {
	Width   int
	Digest  converter.Digest
	Color   converter.ColorMode
	Strings []string
	Files   []string
}

// parseCLIArgs reads flags over the configured defaults.
func parseCLIArgs(args []string, cfg config.Config) (cliOptions, error) {
	opts := cliOptions{Width: cfg.Width, Digest: cfg.Digest, Color: cfg.Color}
	fs := flag.NewFlagSet("diver", flag.ContinueOnError)
	var out bytes.Buffer
	fs.SetOutput(&out)

	var digest, color string
	var literals stringList
	fs.IntVar(&opts.Width, "w", cfg.Width, "Canvas width in columns.")
	fs.StringVar(&digest, "d", cfg.Digest.String(), "Bytes to walk: raw, sha256 or sha512.")
	fs.StringVar(&color, "color", "", "Colour output: auto, always or never.")
	fs.Var(&literals, "s", "Render a literal string (repeatable).")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, fmt.Errorf("%w\n%s", err, out.String())
	}
	if opts.Width <= 0 {
		return cliOptions{}, fmt.Errorf("width must be greater than 0, got %d", opts.Width)
	}
	d, err := converter.ParseDigest(digest)
	if err != nil {
		return cliOptions{}, err
	}
	opts.Digest = d
	if color != "" {
		if opts.Color, err = converter.ParseColorMode(color); err != nil {
			return cliOptions{}, err
		}
	}
	opts.Strings = literals
	opts.Files = fs.Args()
	return opts, nil
}
