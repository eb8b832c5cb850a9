package converter

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mush1e/drunken-diver/internal/diver"
)

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return 0, fmt.Errorf("converter: unknown color mode %q (want auto, always or never)", s)
}

// Palette paints a route for a terminal. Right-moving marks, left-moving
// marks, the frame and the entry/exit markers each get their own colour.
type Palette struct {
	border lipgloss.Style
	marker lipgloss.Style
	right  lipgloss.Style
	left   lipgloss.Style
}

// NewPalette prepares styles for output written to w. In ColorAuto mode the
// colour profile is detected from w, so anything that is not a terminal
// gets plain text.
func NewPalette(w io.Writer, mode ColorMode) *Palette {
	r := lipgloss.NewRenderer(w)
	switch mode {
	case ColorAlways:
		r.SetColorProfile(termenv.ANSI256)
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	}
	return &Palette{
		border: r.NewStyle().Foreground(lipgloss.Color("#52525b")),
		marker: r.NewStyle().Foreground(lipgloss.Color("#fde68a")).Bold(true),
		right:  r.NewStyle().Foreground(lipgloss.Color("#bae6fd")),
		left:   r.NewStyle().Foreground(lipgloss.Color("#fca5a5")),
	}
}

func (p *Palette) frame(line string) string {
	before, after, ok := strings.Cut(line, "v")
	if !ok {
		return p.border.Render(line)
	}
	return p.border.Render(before) + p.marker.Render("v") + p.border.Render(after)
}

// Row paints one row. Consecutive marks heading the same way share a style
// run; empty cells are left bare.
func (p *Palette) Row(row diver.Row) string {
	var b strings.Builder
	var run []byte
	var runDir diver.Direction
	flush := func() {
		if len(run) == 0 {
			return
		}
		style := p.left
		if runDir == diver.Right {
			style = p.right
		}
		b.WriteString(style.Render(string(run)))
		run = run[:0]
	}
	for _, n := range row.Notes() {
		if n.IsEmpty() {
			flush()
			b.WriteByte(' ')
			continue
		}
		if len(run) > 0 && n.Direction() != runDir {
			flush()
		}
		runDir = n.Direction()
		run = append(run, n.Glyph())
	}
	flush()
	return b.String()
}

// Top and Bottom paint the frame lines of a route.
func (p *Palette) Top(width int) string { return p.frame(diver.TopBorder(width)) }

func (p *Palette) Bottom(width, end int) string { return p.frame(diver.BottomBorder(width, end)) }

// Route paints the whole picture in the same layout as Route.String.
func (p *Palette) Route(rt *diver.Route) string {
	var b strings.Builder
	b.WriteString(p.Top(rt.Width()) + "\n")
	for _, row := range rt.Rows() {
		b.WriteString(p.border.Render("|") + p.Row(row) + p.border.Render("|") + "\n")
	}
	b.WriteString(p.Bottom(rt.Width(), rt.End()) + "\n")
	return b.String()
}
