package diver

import (
	"bytes"
	"io"
	"strings"
)

// Route is the finished picture: every row the diver passed through, plus
// the column it came to rest in.
type Route struct {
	width int
	rows  []Row
	end   int
}

// NewRoute drains d. The source's read error, if any, is returned along
// with the route built from the bytes read before it.
func NewRoute(d *Dive) (*Route, error) {
	rt := &Route{width: d.Width(), end: d.Width() / 2}
	for row := range d.Rows() {
		rt.rows = append(rt.rows, row)
	}
	if n := len(rt.rows); n > 0 {
		rt.end = rt.rows[n-1].cursor
	}
	return rt, d.Err()
}

// Render returns the art for the bytes of src at the given width.
func Render(src io.ByteReader, width int) (string, error) {
	d, err := NewDive(src, width)
	if err != nil {
		return "", err
	}
	rt, err := NewRoute(d)
	if err != nil {
		return "", err
	}
	return rt.String(), nil
}

func RenderBytes(b []byte, width int) (string, error) {
	return Render(bytes.NewReader(b), width)
}

func (rt *Route) Width() int { return rt.width }
func (rt *Route) Len() int   { return len(rt.rows) }

// Start is the column the diver entered the canvas at.
func (rt *Route) Start() int { return rt.width / 2 }

// End is the column the diver finished in.
func (rt *Route) End() int { return rt.end }

func (rt *Route) Rows() []Row {
	out := make([]Row, len(rt.rows))
	copy(out, rt.rows)
	return out
}

// TopBorder marks the entry column with a 'v'.
func TopBorder(width int) string {
	half := width / 2
	return "+" + strings.Repeat("-", max(half-1, 0)) + "v" + strings.Repeat("-", width-half) + "+"
}

// BottomBorder marks the exit column with a 'v'.
func BottomBorder(width, end int) string {
	return "+" + strings.Repeat("-", end) + "v" + strings.Repeat("-", max(width-end-1, 0)) + "+"
}

func (rt *Route) String() string {
	var b strings.Builder
	rt.WriteTo(&b)
	return b.String()
}

// WriteTo writes the bordered picture, one line per row.
func (rt *Route) WriteTo(w io.Writer) (int64, error) {
	var total int64
	write := func(s string) error {
		n, err := io.WriteString(w, s)
		total += int64(n)
		return err
	}
	if err := write(TopBorder(rt.width) + "\n"); err != nil {
		return total, err
	}
	for _, row := range rt.rows {
		if err := write("|" + row.String() + "|\n"); err != nil {
			return total, err
		}
	}
	err := write(BottomBorder(rt.width, rt.end) + "\n")
	return total, err
}
