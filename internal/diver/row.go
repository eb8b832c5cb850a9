package diver

// marginDivisor sets how many wrapping hops a diver makes before it starts
// looking for an empty cell: width/marginDivisor. Changing it changes
// every rendered picture.
const marginDivisor = 8

// Row is one line of the canvas and the diver's column within it. After a
// row leaves the Dive its cursor records the column the diver left from.
type Row struct {
	notes  []Note
	cursor int
}

func newRow(width, cursor int) Row {
	return Row{notes: make([]Note, width), cursor: cursor}
}

func (r Row) Width() int  { return len(r.notes) }
func (r Row) Cursor() int { return r.cursor }

// Note returns the note in column i.
func (r Row) Note(i int) Note { return r.notes[i] }

// Notes returns a copy of the row's cells, leftmost first.
func (r Row) Notes() []Note {
	out := make([]Note, len(r.notes))
	copy(out, r.notes)
	return out
}

// IsEmpty reports whether no cell of the row has been written.
func (r Row) IsEmpty() bool {
	for _, n := range r.notes {
		if n.full {
			return false
		}
	}
	return true
}

func (r Row) String() string {
	buf := make([]byte, len(r.notes))
	for i, n := range r.notes {
		buf[i] = n.Glyph()
	}
	return string(buf)
}

func (r *Row) atRightEdge() bool { return r.cursor+1 >= len(r.notes) }
func (r *Row) atLeftEdge() bool  { return r.cursor == 0 }

func (r *Row) hop(d Direction) {
	if d == Right {
		if r.atRightEdge() {
			r.cursor = 0
		} else {
			r.cursor++
		}
		return
	}
	if r.atLeftEdge() {
		r.cursor = max(len(r.notes)-1, 0)
	} else {
		r.cursor--
	}
}

// journey moves the cursor after a mark has been written under it. It
// reports true when the diver runs off the edge of the row and must
// descend; otherwise the cursor rests on an empty cell.
func (r *Row) journey(d Direction) bool {
	for range len(r.notes) / marginDivisor {
		if !r.notes[r.cursor].full {
			return false
		}
		r.hop(d)
	}
	for {
		if !r.notes[r.cursor].full {
			return false
		}
		switch {
		case d == Right && r.atRightEdge():
			return true
		case d == Left && r.atLeftEdge():
			return true
		case d == Right:
			r.cursor++
		default:
			r.cursor--
		}
	}
}
