// Package session runs a line oriented game between a person at a console
// and a predictor.
package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ardanlabs/connect4ml/cmd/connect/game"
	"github.com/ardanlabs/connect4ml/cmd/connect/policy"
	"github.com/ardanlabs/connect4ml/cmd/connect/render"
)

// Outcome describes how a session ended.
type Outcome int

// Set of outcomes for a session.
const (
	Won Outcome = iota + 1
	Draw
)

// Result describes a finished session.
type Result struct {
	Outcome Outcome
	Winner  game.Player
	Moves   int
}

// Session manages a game where the first player is typed in at the console
// and the second player is chosen by a predictor.
type Session struct {
	game    *game.Game
	ai      *policy.Predictor
	scanner *bufio.Scanner
	out     io.Writer
}

// New constructs a session reading moves from in and writing the board to
// out.
func New(g *game.Game, ai *policy.Predictor, in io.Reader, out io.Writer) *Session {
	return &Session{
		game:    g,
		ai:      ai,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// Run plays until there is a winner, the board is full or the input ends.
func (s *Session) Run(ctx context.Context) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		fmt.Fprintf(s.out, "\n%s\n", render.Text(s.game.Board()))

		var (
			column int
			err    error
		)

		switch s.game.Turn() {
		case game.PlayerOne:
			column, err = s.readMove()
		default:
			column, err = s.aiMove(ctx)
		}

		if err != nil {
			return Result{}, err
		}

		player := s.game.CurrentPlayer()
		board := s.game.Board()

		row, _ := board.PlaceDisc(column, player.Disc())

		if game.CheckWin(board, row, column) {
			fmt.Fprintf(s.out, "\n%s\n%s wins!\n", render.Text(board), player)
			return Result{Outcome: Won, Winner: player, Moves: board.Moves()}, nil
		}

		if board.Full() {
			fmt.Fprintf(s.out, "\n%s\nIt's a draw.\n", render.Text(board))
			return Result{Outcome: Draw, Moves: board.Moves()}, nil
		}

		s.game.SwitchTurn()
	}
}

// readMove prompts until the person types a playable column.
func (s *Session) readMove() (int, error) {
	player := s.game.CurrentPlayer()

	for {
		fmt.Fprintf(s.out, "%s, choose a column (0-%d): ", player, game.Cols-1)

		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return 0, fmt.Errorf("read move: %w", err)
			}
			return 0, fmt.Errorf("read move: %w", io.EOF)
		}

		column, err := strconv.Atoi(strings.TrimSpace(s.scanner.Text()))
		if err != nil {
			fmt.Fprintln(s.out, "please enter a number")
			continue
		}

		if !s.game.Board().IsLegal(column) {
			fmt.Fprintf(s.out, "column %d is not playable\n", column)
			continue
		}

		return column, nil
	}
}

func (s *Session) aiMove(ctx context.Context) (int, error) {
	player := s.game.CurrentPlayer()

	column, err := s.ai.PredictColumn(ctx, s.game.Board(), player.Disc().Symbol())
	if err != nil {
		return 0, fmt.Errorf("ai move: %w", err)
	}

	fmt.Fprintf(s.out, "%s plays column %d\n", player, column)

	return column, nil
}
