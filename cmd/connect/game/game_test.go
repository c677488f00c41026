package game_test

import (
	"testing"

	"github.com/ardanlabs/connect4ml/cmd/connect/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	g, err := game.New(game.Players.One, game.Players.Two)
	require.NoError(t, err)

	assert.Equal(t, game.PlayerOne, g.Turn())
	assert.True(t, g.CurrentPlayer().Equal(game.Players.One))
	assert.Zero(t, g.Board().Moves())
}

func TestNewGameSameDisc(t *testing.T) {
	_, err := game.New(game.NewPlayer("a", 'X'), game.NewPlayer("b", 'X'))
	assert.ErrorIs(t, err, game.ErrSameDisc)
}

func TestSwitchTurn(t *testing.T) {
	g, err := game.New(game.Players.One, game.Players.Two)
	require.NoError(t, err)

	g.SwitchTurn()
	assert.Equal(t, game.PlayerTwo, g.Turn())
	assert.True(t, g.CurrentPlayer().Equal(game.Players.Two))

	g.SwitchTurn()
	assert.Equal(t, game.PlayerOne, g.Turn())
	assert.True(t, g.CurrentPlayer().Equal(game.Players.One))
}

func TestReset(t *testing.T) {
	g, err := game.New(game.Players.One, game.Players.Two)
	require.NoError(t, err)

	g.Board().PlaceDisc(3, g.CurrentPlayer().Disc())
	g.SwitchTurn()

	g.Reset()

	assert.Equal(t, game.PlayerOne, g.Turn())
	assert.Zero(t, g.Board().Moves())
}

func TestTurnString(t *testing.T) {
	assert.Equal(t, "PlayerOne", game.PlayerOne.String())
	assert.Equal(t, "PlayerTwo", game.PlayerTwo.String())
	assert.Equal(t, game.PlayerOne, game.PlayerTwo.Other())
}
