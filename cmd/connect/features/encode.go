// Package features converts a board into the numeric vector used to train
// and query a move scorer.
package features

import (
	"fmt"

	"github.com/ardanlabs/connect4ml/cmd/connect/game"
)

// Len is the number of values in a feature vector.
const Len = game.Rows * game.Cols

// LabelName is the name of the label column in a training table.
const LabelName = "Label"

// Values stored for each cell.
const (
	Mine   = 1
	Theirs = -1
	Vacant = 0
)

const snap = 1e-9

// Encode produces the feature vector of the board as seen by the player
// using the specified symbol. Cells are visited row-major from the top: +1
// for a disc with that symbol, -1 for any other disc, 0 for an empty cell.
func Encode(b *game.Board, symbol rune) []float64 {
	v := make([]float64, Len)

	for row := range game.Rows {
		for col := range game.Cols {
			disc, ok := b.Cell(row, col)
			if !ok {
				continue
			}

			switch disc.Symbol() {
			case symbol:
				v[row*game.Cols+col] = Mine
			default:
				v[row*game.Cols+col] = Theirs
			}
		}
	}

	return v
}

// Names returns the column names of the features: f1 through f42.
func Names() []string {
	names := make([]string, Len)
	for i := range names {
		names[i] = fmt.Sprintf("f%d", i+1)
	}

	return names
}

// Grid turns a feature vector back into a grid of Mine, Theirs and Vacant
// values. Values are snapped to the nearest of the three.
func Grid(v []float64) ([game.Rows][game.Cols]int, error) {
	var grid [game.Rows][game.Cols]int

	if len(v) != Len {
		return grid, fmt.Errorf("grid: got %d values, expected %d", len(v), Len)
	}

	for i, f := range v {
		var value int
		switch {
		case f > snap:
			value = Mine
		case f < -snap:
			value = Theirs
		}

		grid[i/game.Cols][i%game.Cols] = value
	}

	return grid, nil
}
