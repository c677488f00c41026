package features_test

import (
	"testing"

	"github.com/ardanlabs/connect4ml/cmd/connect/features"
	"github.com/ardanlabs/connect4ml/cmd/connect/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleBoard() *game.Board {
	b := game.NewBoard()

	x := game.NewDisc('X')
	o := game.NewDisc('O')

	b.PlaceDisc(3, x)
	b.PlaceDisc(3, o)
	b.PlaceDisc(0, x)
	b.PlaceDisc(6, o)

	return b
}

func TestEncodeEmpty(t *testing.T) {
	v := features.Encode(game.NewBoard(), 'X')

	require.Len(t, v, features.Len)
	for i, f := range v {
		assert.Zero(t, f, "index %d", i)
	}
}

func TestEncodeRowMajor(t *testing.T) {
	v := features.Encode(sampleBoard(), 'X')

	require.Len(t, v, game.Rows*game.Cols)

	assert.Equal(t, 1.0, v[5*game.Cols+3])
	assert.Equal(t, -1.0, v[4*game.Cols+3])
	assert.Equal(t, 1.0, v[5*game.Cols+0])
	assert.Equal(t, -1.0, v[5*game.Cols+6])

	var nonZero int
	for _, f := range v {
		if f != 0 {
			nonZero++
		}
	}
	assert.Equal(t, 4, nonZero)
}

func TestEncodeDeterministic(t *testing.T) {
	b := sampleBoard()

	assert.Equal(t, features.Encode(b, 'O'), features.Encode(b, 'O'))
	assert.Equal(t, features.Encode(b, 'O'), features.Encode(b.Clone(), 'O'))
}

func TestEncodePerspectiveFlip(t *testing.T) {
	b := sampleBoard()

	vx := features.Encode(b, 'X')
	vo := features.Encode(b, 'O')

	for i := range vx {
		assert.Equal(t, -vx[i], vo[i], "index %d", i)
	}
}

func TestNames(t *testing.T) {
	names := features.Names()

	require.Len(t, names, features.Len)
	assert.Equal(t, "f1", names[0])
	assert.Equal(t, "f42", names[41])
}

func TestGrid(t *testing.T) {
	grid, err := features.Grid(features.Encode(sampleBoard(), 'X'))
	require.NoError(t, err)

	assert.Equal(t, features.Mine, grid[5][3])
	assert.Equal(t, features.Theirs, grid[4][3])
	assert.Equal(t, features.Vacant, grid[0][0])

	_, err = features.Grid(make([]float64, 3))
	assert.Error(t, err)
}
