// Package ai provides the scorers that rate every column of a board: a
// neural network fitted on self-play samples and a chat model.
package ai

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/ardanlabs/connect4ml/cmd/connect/features"
	"github.com/ardanlabs/connect4ml/cmd/connect/game"
	"github.com/ardanlabs/connect4ml/cmd/connect/policy"
	deep "github.com/patrikeh/go-deep"
)

// Network scores columns with a feed forward network that has one input per
// cell and one output per column.
type Network struct {
	mu     sync.Mutex
	neural *deep.Neural
}

// NewNetwork constructs an untrained network with the specified hidden
// layers.
func NewNetwork(hidden ...int) *Network {
	layout := append(append([]int{}, hidden...), game.Cols)

	n := deep.NewNeural(&deep.Config{
		Inputs:     features.Len,
		Layout:     layout,
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeMultiClass,
		Weight:     deep.NewNormal(0.5, 0),
		Bias:       true,
	})

	return &Network{
		neural: n,
	}
}

// LoadNetwork reads a network saved with Save.
func LoadNetwork(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}

	n, err := deep.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal model: %s: %w", path, err)
	}

	if err := checkShape(n.Config); err != nil {
		return nil, fmt.Errorf("model %s: %w", path, err)
	}

	return &Network{neural: n}, nil
}

// Save writes the network to the specified file.
func (nw *Network) Save(path string) error {
	nw.mu.Lock()
	data, err := nw.neural.Marshal()
	nw.mu.Unlock()

	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write model: %w", err)
	}

	return nil
}

// Score implements the policy.Scorer interface.
func (nw *Network) Score(ctx context.Context, input []float64) (policy.Scores, error) {
	if len(input) != features.Len {
		return nil, fmt.Errorf("score: got %d features, expected %d", len(input), features.Len)
	}

	// The network keeps activations on its neurons while predicting.
	nw.mu.Lock()
	out := nw.neural.Predict(input)
	nw.mu.Unlock()

	return policy.Scores(out), nil
}

func checkShape(cfg *deep.Config) error {
	switch {
	case cfg == nil:
		return fmt.Errorf("missing config")
	case cfg.Inputs != features.Len:
		return fmt.Errorf("got %d inputs, expected %d", cfg.Inputs, features.Len)
	case len(cfg.Layout) == 0 || cfg.Layout[len(cfg.Layout)-1] != game.Cols:
		return fmt.Errorf("got layout %v, expected %d outputs", cfg.Layout, game.Cols)
	}

	return nil
}
