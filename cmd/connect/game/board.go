// Package game provides the connect 4 engine: discs, players, the board,
// win detection and the turn state machine.
package game

import "iter"

const (
	Rows = 6
	Cols = 7
)

// Center is the middle column of the board.
const Center = Cols / 2

type cell struct {
	hasPiece bool
	disc     Disc
}

// Board represents the grid of cells, stored row-major with row 0 at the
// top. A cell below an occupied cell is always occupied.
type Board struct {
	cells [Rows * Cols]cell
	moves int
}

// NewBoard constructs an empty board.
func NewBoard() *Board {
	return &Board{}
}

// PlaceDisc drops the disc into the specified column. The disc lands in the
// lowest empty row which is returned. If the column is out of range or full,
// the board is not changed and false is returned with a row of -1.
func (b *Board) PlaceDisc(column int, disc Disc) (int, bool) {
	if column < 0 || column >= Cols {
		return -1, false
	}

	// Walk the column from the bottom up.
	for row := Rows - 1; row >= 0; row-- {
		c := &b.cells[index(row, column)]
		if c.hasPiece {
			continue
		}

		c.hasPiece = true
		c.disc = disc
		b.moves++

		return row, true
	}

	return -1, false
}

// Cell returns the disc at the specified location. False is returned for an
// empty cell and for any coordinate outside of the board.
func (b *Board) Cell(row int, col int) (Disc, bool) {
	if !inBounds(row, col) {
		return Disc{}, false
	}

	c := b.cells[index(row, col)]

	return c.disc, c.hasPiece
}

// LegalMoves returns the columns that can still accept a disc in ascending
// order. The sequence reads the board each time it is ranged over.
func (b *Board) LegalMoves() iter.Seq[int] {
	return func(yield func(int) bool) {
		for col := range Cols {
			if b.cells[index(0, col)].hasPiece {
				continue
			}

			if !yield(col) {
				return
			}
		}
	}
}

// IsLegal reports whether the column can accept a disc.
func (b *Board) IsLegal(column int) bool {
	if column < 0 || column >= Cols {
		return false
	}

	return !b.cells[index(0, column)].hasPiece
}

// Full reports whether every column is full.
func (b *Board) Full() bool {
	return b.moves == Rows*Cols
}

// Moves returns the number of discs on the board.
func (b *Board) Moves() int {
	return b.moves
}

// Clone returns a copy of the board.
func (b *Board) Clone() *Board {
	c := *b
	return &c
}

// =============================================================================

func index(row int, col int) int {
	return row*Cols + col
}

func inBounds(row int, col int) bool {
	return row >= 0 && row < Rows && col >= 0 && col < Cols
}
