// Package selfplay generates training samples by letting a biased random
// policy play against itself.
package selfplay

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/ardanlabs/connect4ml/cmd/connect/dataset"
	"github.com/ardanlabs/connect4ml/cmd/connect/features"
	"github.com/ardanlabs/connect4ml/cmd/connect/game"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Logger represents a function that will log progress.
type Logger func(format string, v ...any)

// Config holds the settings for a self-play run.
type Config struct {
	Games      int     // Number of games to play.
	MaxMoves   int     // Moves allowed per game before it is cut off.
	Seed       uint64  // Seed for the random policy.
	CenterProb float64 // Chance of taking the center column when it is open.
	Workers    int     // Games played at the same time.
	Log        Logger  // Progress logging, may be nil.
}

// DefaultConfig returns the settings used to build the standard dataset.
func DefaultConfig() Config {
	return Config{
		Games:      4000,
		MaxMoves:   game.Rows * game.Cols,
		Seed:       42,
		CenterProb: 0.35,
		Workers:    1,
	}
}

// Validate checks the configuration can be used.
func (cfg Config) Validate() error {
	switch {
	case cfg.Games < 0:
		return fmt.Errorf("games must not be negative: %d", cfg.Games)
	case cfg.MaxMoves < 1:
		return fmt.Errorf("max moves must be positive: %d", cfg.MaxMoves)
	case cfg.CenterProb < 0 || cfg.CenterProb > 1:
		return fmt.Errorf("center probability must be within [0,1]: %v", cfg.CenterProb)
	case cfg.Workers < 1:
		return fmt.Errorf("workers must be positive: %d", cfg.Workers)
	}

	return nil
}

// =============================================================================

// Outcome describes how a game ended.
type Outcome int

// Set of outcomes.
const (
	Won Outcome = iota
	Draw
	Capped
)

// Result is what a single game produced.
type Result struct {
	Game    int
	Outcome Outcome
	Winner  game.Turn
	Samples []dataset.Sample
}

// Stats summarizes a run.
type Stats struct {
	Games   int
	Samples int
	Wins    [2]int
	Draws   int
	Capped  int
}

func (s *Stats) add(r Result) {
	s.Games++
	s.Samples += len(r.Samples)

	switch r.Outcome {
	case Won:
		s.Wins[r.Winner]++
	case Draw:
		s.Draws++
	case Capped:
		s.Capped++
	}
}

// String returns a readable summary of the run.
func (s Stats) String() string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("games: %d samples: %d wins: %d/%d draws: %d capped: %d",
		s.Games, s.Samples, s.Wins[game.PlayerOne], s.Wins[game.PlayerTwo], s.Draws, s.Capped)
}

// =============================================================================

// Generate plays the configured number of games and returns every sample in
// game then move order.
func Generate(ctx context.Context, cfg Config) ([]dataset.Sample, error) {
	var mem dataset.Memory
	if _, err := Run(ctx, cfg, &mem); err != nil {
		return nil, err
	}

	return mem.Samples, nil
}

// Run plays the configured number of games and writes the samples of each
// game to the sink in game order, regardless of the order workers finish.
// The sink is not closed.
func Run(ctx context.Context, cfg Config, sink dataset.Sink) (Stats, error) {
	if err := cfg.Validate(); err != nil {
		return Stats{}, err
	}

	log := cfg.Log
	if log == nil {
		log = func(format string, v ...any) {}
	}

	var stats Stats

	// Games are played in batches and each batch is written in game order.
	batch := cfg.Workers * 64

	for start := 0; start < cfg.Games; start += batch {
		end := min(start+batch, cfg.Games)
		results := make([]Result, end-start)

		eg, egCtx := errgroup.WithContext(ctx)
		eg.SetLimit(cfg.Workers)

		for id := start; id < end; id++ {
			eg.Go(func() error {
				if err := egCtx.Err(); err != nil {
					return err
				}

				r, err := PlayGame(cfg, id)
				if err != nil {
					return err
				}
				results[id-start] = r

				return nil
			})
		}

		if err := eg.Wait(); err != nil {
			return stats, fmt.Errorf("play: %w", err)
		}

		for _, r := range results {
			if err := sink.Write(ctx, r.Samples); err != nil {
				return stats, fmt.Errorf("write: game %d: %w", r.Game, err)
			}
			stats.add(r)
		}

		p := message.NewPrinter(language.English)
		log("%s\n", p.Sprintf("selfplay: games %d of %d, samples %d", stats.Games, cfg.Games, stats.Samples))
	}

	return stats, nil
}

// =============================================================================

// NewRand returns the random source for the specified game. Each game has
// its own stream so the samples do not depend on how games are scheduled.
func NewRand(seed uint64, id int) *rand.Rand {
	return rand.New(rand.NewPCG(seed, uint64(id)))
}

// PlayGame plays a single game. Before each move the board is encoded from
// the point of view of the player about to move and paired with the column
// the policy chose.
func PlayGame(cfg Config, id int) (Result, error) {
	g, err := game.New(game.Players.One, game.Players.Two)
	if err != nil {
		return Result{}, err
	}

	r := NewRand(cfg.Seed, id)
	b := g.Board()

	result := Result{
		Game:    id,
		Outcome: Capped,
	}

	for move := 0; move < cfg.MaxMoves; move++ {
		legal := slices.Collect(b.LegalMoves())
		if len(legal) == 0 {
			result.Outcome = Draw
			return result, nil
		}

		column := pick(r, legal, cfg.CenterProb)
		player := g.CurrentPlayer()

		result.Samples = append(result.Samples, dataset.Sample{
			Game:     id,
			Move:     move,
			Features: features.Encode(b, player.Disc().Symbol()),
			Label:    column,
		})

		row, ok := b.PlaceDisc(column, player.Disc())
		if !ok {
			return Result{}, errors.New("legal column rejected the disc")
		}

		if game.CheckWin(b, row, column) {
			result.Outcome = Won
			result.Winner = g.Turn()
			return result, nil
		}

		g.SwitchTurn()
	}

	// The cap can land on the move that fills the board.
	if b.Full() {
		result.Outcome = Draw
	}

	return result, nil
}

// pick chooses the center column with the configured probability when it is
// open, otherwise any open column.
func pick(r *rand.Rand, legal []int, centerProb float64) int {
	if slices.Contains(legal, game.Center) && r.Float64() < centerProb {
		return game.Center
	}

	return legal[r.IntN(len(legal))]
}
