package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/mush1e/drunken-diver/internal/config"
	"github.com/mush1e/drunken-diver/internal/converter"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, stdinIsTTY(), os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "diver:", err)
		os.Exit(1)
	}
}

func stdinIsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

type input struct {
	title string
	open  func() (io.ReadCloser, error)
}

func run(args []string, stdin io.Reader, stdinTTY bool, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts, err := parseCLIArgs(args, cfg)
	if err != nil {
		return err
	}

	var inputs []input
	for _, s := range opts.Strings {
		inputs = append(inputs, input{
			title: fmt.Sprintf("%q", s),
			open:  func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader(s)), nil },
		})
	}
	for _, name := range opts.Files {
		inputs = append(inputs, input{
			title: name,
			open:  func() (io.ReadCloser, error) { return os.Open(name) },
		})
	}
	if len(inputs) == 0 {
		if stdinTTY {
			return errors.New("no input: pass files, -s text, or pipe data on stdin")
		}
		inputs = append(inputs, input{
			title: "stdin",
			open:  func() (io.ReadCloser, error) { return io.NopCloser(stdin), nil },
		})
	}

	palette := converter.NewPalette(stdout, opts.Color)
	for i, in := range inputs {
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		if len(inputs) > 1 {
			fmt.Fprintln(stdout, in.title)
		}
		if err := render(stdout, palette, in, converter.Options{Width: opts.Width, Digest: opts.Digest}); err != nil {
			return err
		}
	}
	return nil
}

func render(w io.Writer, p *converter.Palette, in input, opts converter.Options) error {
	rc, err := in.open()
	if err != nil {
		return err
	}
	defer rc.Close()
	rt, err := converter.Render(rc, opts)
	if err != nil {
		return fmt.Errorf("%s: %w", in.title, err)
	}
	_, err = io.WriteString(w, p.Route(rt))
	return err
}
