package game

import (
	"errors"
	"fmt"
)

// ErrSameDisc is returned when both players are using the same symbol.
var ErrSameDisc = errors.New("players must use different discs")

// Turn identifies which of the two players owns the current turn.
type Turn int

// Set of turns in a game.
const (
	PlayerOne Turn = iota
	PlayerTwo
)

// Other returns the opposite turn.
func (t Turn) Other() Turn {
	if t == PlayerOne {
		return PlayerTwo
	}

	return PlayerOne
}

// String returns the name of the turn.
func (t Turn) String() string {
	switch t {
	case PlayerOne:
		return "PlayerOne"
	case PlayerTwo:
		return "PlayerTwo"
	}

	return fmt.Sprintf("Turn(%d)", int(t))
}

// =============================================================================

// Game represents a board being played on by two players.
type Game struct {
	board   *Board
	players [2]Player
	turn    Turn
}

// New constructs a game with an empty board where the first player goes
// first.
func New(p1 Player, p2 Player) (*Game, error) {
	if p1.Disc().Equal(p2.Disc()) {
		return nil, fmt.Errorf("new game: %q: %w", p1.Disc(), ErrSameDisc)
	}

	g := Game{
		board:   NewBoard(),
		players: [2]Player{p1, p2},
		turn:    PlayerOne,
	}

	return &g, nil
}

// Board returns the board being played on.
func (g *Game) Board() *Board {
	return g.board
}

// Turn returns who owns the current turn.
func (g *Game) Turn() Turn {
	return g.turn
}

// CurrentPlayer returns the player that owns the current turn.
func (g *Game) CurrentPlayer() Player {
	return g.players[g.turn]
}

// Player returns the player for the specified turn.
func (g *Game) Player(t Turn) Player {
	return g.players[t]
}

// SwitchTurn hands the turn to the other player. It does not check if the
// game is over.
func (g *Game) SwitchTurn() {
	g.turn = g.turn.Other()
}

// Reset clears the board and gives the turn back to the first player.
func (g *Game) Reset() {
	g.board = NewBoard()
	g.turn = PlayerOne
}
