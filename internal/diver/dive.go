package diver

import (
	"errors"
	"fmt"
	"io"
	"iter"
)

// ErrInvalidWidth is returned when a canvas has no columns.
var ErrInvalidWidth = errors.New("diver: width must be positive")

// CheckWidth reports whether width can hold a canvas.
func CheckWidth(width int) error {
	if width <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	return nil
}

// Dive walks a diver down the canvas, one byte at a time, and hands out
// each row as the diver leaves it. A Dive is not safe for concurrent use.
type Dive struct {
	src      io.ByteReader
	row      Row
	buffered *Instruction
	done     bool
	err      error
}

// NewDive starts a diver at the centre column of an empty row of the given
// width. No byte is read until Next is called.
func NewDive(src io.ByteReader, width int) (*Dive, error) {
	if err := CheckWidth(width); err != nil {
		return nil, err
	}
	return &Dive{src: src, row: newRow(width, width/2)}, nil
}

func (d *Dive) Width() int { return d.row.Width() }

// Cursor is the diver's column in the row it is currently in.
func (d *Dive) Cursor() int { return d.row.cursor }

// Err returns the first error from the byte source other than io.EOF.
func (d *Dive) Err() error { return d.err }

// apply writes a mark under the diver and moves it. When the diver falls
// out of the row, the completed row is returned and the diver starts the
// next row in the column it just marked.
func (d *Dive) apply(in Instruction) (Row, bool) {
	home := d.row.cursor
	d.row.notes[home] = Mark(in.Direction, in.Style)
	if !d.row.journey(in.Direction) {
		return Row{}, false
	}
	completed := d.row
	d.row = newRow(completed.Width(), home)
	return completed, true
}

// Next returns the next completed row. It returns false once the source
// is exhausted and the last row has been handed out.
func (d *Dive) Next() (Row, bool) {
	if d.done {
		return Row{}, false
	}
	if in := d.buffered; in != nil {
		d.buffered = nil
		if row, ok := d.apply(*in); ok {
			return row, true
		}
	}
	for {
		b, err := d.src.ReadByte()
		if err != nil {
			if err != io.EOF {
				d.err = err
			}
			return d.finish()
		}
		pair := Decode(b)
		if row, ok := d.apply(pair[0]); ok {
			d.buffered = &pair[1]
			return row, true
		}
		if row, ok := d.apply(pair[1]); ok {
			return row, true
		}
	}
}

func (d *Dive) finish() (Row, bool) {
	d.done = true
	if d.row.IsEmpty() {
		return Row{}, false
	}
	last := d.row
	d.row = newRow(last.Width(), last.cursor)
	return last, true
}

// Rows yields every remaining row in order.
func (d *Dive) Rows() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for {
			row, ok := d.Next()
			if !ok || !yield(row) {
				return
			}
		}
	}
}
