// Package render draws a board as text or as an image.
package render

import (
	"strconv"
	"strings"

	"github.com/ardanlabs/connect4ml/cmd/connect/game"
)

// Empty is the glyph used for an empty cell.
const Empty = '.'

// Text returns the board as one line per row, top row first, with each disc
// shown by its symbol. A legend of column numbers follows the last row.
func Text(b *game.Board) string {
	var data strings.Builder

	for row := range game.Rows {
		for col := range game.Cols {
			disc, ok := b.Cell(row, col)
			switch {
			case !ok:
				data.WriteRune(Empty)
			default:
				data.WriteRune(disc.Symbol())
			}
		}
		data.WriteString("\n")
	}

	data.WriteString(Legend())
	data.WriteString("\n")

	return data.String()
}

// Legend returns the column numbers in order.
func Legend() string {
	var legend strings.Builder
	for col := range game.Cols {
		legend.WriteString(strconv.Itoa(col))
	}

	return legend.String()
}
