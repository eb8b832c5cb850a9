package diver

import "fmt"

// Style selects one of eight glyphs for a mark. It carries no behaviour.
type Style uint8

const (
	Style0 Style = iota
	Style1
	Style2
	Style3
	Style4
	Style5
	Style6
	Style7
)

type Direction uint8

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	if d == Right {
		return "Right"
	}
	return "Left"
}

// Instruction is one decoded half of an input byte.
type Instruction struct {
	Direction Direction
	Style     Style
}

// Decode unpacks a byte into its two instructions.
//
//	bit 0     direction of the first instruction (1 = Right)
//	bits 1-3  style of the first instruction
//	bit 4     direction of the second instruction (1 = Right)
//	bits 5-7  style of the second instruction
func Decode(b byte) [2]Instruction {
	return [2]Instruction{
		{Direction: Direction(b & 0b1), Style: Style((b >> 1) & 0b111)},
		{Direction: Direction((b >> 4) & 0b1), Style: Style(b >> 5)},
	}
}

var (
	rightGlyphs = [8]byte{'>', '.', '*', 'o', 'x', ')', 'p', 'b'}
	leftGlyphs  = [8]byte{'<', '~', '=', '_', '!', '(', 'q', 'd'}
)

// Note is the content of one cell. The zero value is an empty cell.
type Note struct {
	full  bool
	dir   Direction
	style Style
}

// Mark returns a filled note.
func Mark(d Direction, s Style) Note {
	return Note{full: true, dir: d, style: s & 0b111}
}

func (n Note) IsEmpty() bool        { return !n.full }
func (n Note) Direction() Direction { return n.dir }
func (n Note) Style() Style         { return n.style }

// Glyph returns the character drawn for the note, a space when empty.
func (n Note) Glyph() byte {
	switch {
	case !n.full:
		return ' '
	case n.dir == Right:
		return rightGlyphs[n.style]
	default:
		return leftGlyphs[n.style]
	}
}

func (n Note) String() string {
	if !n.full {
		return "Empty"
	}
	return fmt.Sprintf("Full(%v, Style%d)", n.dir, n.style)
}
