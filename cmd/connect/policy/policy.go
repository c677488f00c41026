// Package policy picks the column to play from the scores produced by a
// trained scorer.
package policy

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/ardanlabs/connect4ml/cmd/connect/features"
	"github.com/ardanlabs/connect4ml/cmd/connect/game"
)

// Set of errors returned by the package.
var (
	ErrNoLegalMoves = errors.New("no legal moves")
	ErrScoreLength  = errors.New("wrong number of scores")
)

// Scores holds one score per column, indexed by column.
type Scores []float64

// Scorer is anything that can score every column for a feature vector.
type Scorer interface {
	Score(ctx context.Context, features []float64) (Scores, error)
}

// ScorerFunc allows a function to be used as a Scorer.
type ScorerFunc func(ctx context.Context, features []float64) (Scores, error)

// Score implements the Scorer interface.
func (f ScorerFunc) Score(ctx context.Context, features []float64) (Scores, error) {
	return f(ctx, features)
}

// =============================================================================

// Select returns the legal column with the highest score. Illegal columns
// are never chosen and ties go to the lowest column. The scores are not
// modified.
func Select(scores Scores, legal iter.Seq[int]) (int, error) {
	masked := make(Scores, len(scores))
	for i := range masked {
		masked[i] = math.Inf(-1)
	}

	// best starts at the lowest legal column.
	best := -1
	for col := range legal {
		if col < 0 || col >= len(scores) {
			continue
		}

		v := scores[col]
		if math.IsNaN(v) {
			v = math.Inf(-1)
		}
		masked[col] = v

		if best == -1 || col < best {
			best = col
		}
	}

	if best == -1 {
		return -1, ErrNoLegalMoves
	}

	for col := range masked {
		if masked[col] > masked[best] {
			best = col
		}
	}

	return best, nil
}

// =============================================================================

// Predictor chooses moves for a live board using a scorer.
type Predictor struct {
	scorer Scorer
}

// NewPredictor constructs a predictor over the specified scorer.
func NewPredictor(scorer Scorer) *Predictor {
	return &Predictor{
		scorer: scorer,
	}
}

// PredictColumn encodes the board for the player using the specified symbol,
// scores it and returns the best legal column.
func (p *Predictor) PredictColumn(ctx context.Context, b *game.Board, symbol rune) (int, error) {
	if b.Full() {
		return -1, ErrNoLegalMoves
	}

	scores, err := p.scorer.Score(ctx, features.Encode(b, symbol))
	if err != nil {
		return -1, fmt.Errorf("score: %w", err)
	}

	if len(scores) != game.Cols {
		return -1, fmt.Errorf("score: got %d, expected %d: %w", len(scores), game.Cols, ErrScoreLength)
	}

	return Select(scores, b.LegalMoves())
}
