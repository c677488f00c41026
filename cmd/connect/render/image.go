package render

import (
	"bytes"
	"image/color"

	"github.com/ardanlabs/connect4ml/cmd/connect/game"
	"github.com/fogleman/gg"
)

// Dimensions of a rendered image.
const (
	Width  = 190
	Height = 165
)

const (
	margin = 20
	gap    = 25
	radius = 10
)

// Palette maps disc symbols to the color they are drawn with. Symbols that
// are not in the palette are drawn in gray.
type Palette map[rune]color.Color

// DefaultPalette is used when no palette is provided.
var DefaultPalette = Palette{
	'X': color.RGBA{R: 0, G: 0, B: 255, A: 255},
	'O': color.RGBA{R: 255, G: 0, B: 0, A: 255},
}

var (
	emptyColor   = color.RGBA{R: 0, G: 255, B: 0, A: 255}
	unknownColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// PNG draws the board as a grid of circles and returns the encoded image.
func PNG(b *game.Board, palette Palette) ([]byte, error) {
	if palette == nil {
		palette = DefaultPalette
	}

	dc := gg.NewContext(Width, Height)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	y := float64(margin)
	for row := range game.Rows {
		x := float64(margin)

		for col := range game.Cols {
			dc.SetColor(cellColor(b, row, col, palette))
			dc.DrawCircle(x, y, radius)
			dc.Fill()

			x += gap
		}

		y += gap
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func cellColor(b *game.Board, row int, col int, palette Palette) color.Color {
	disc, ok := b.Cell(row, col)
	if !ok {
		return emptyColor
	}

	if c, exists := palette[disc.Symbol()]; exists {
		return c
	}

	return unknownColor
}
