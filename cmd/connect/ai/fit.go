package ai

import (
	"errors"
	"fmt"

	"github.com/ardanlabs/connect4ml/cmd/connect/dataset"
	"github.com/ardanlabs/connect4ml/cmd/connect/features"
	"github.com/ardanlabs/connect4ml/cmd/connect/game"
	"github.com/patrikeh/go-deep/training"
)

// FitConfig holds the settings handed to the training library.
type FitConfig struct {
	Hidden       []int   // Width of each hidden layer.
	Iterations   int     // Passes over the training examples.
	LearningRate float64 // SGD learning rate.
	Momentum     float64 // SGD momentum.
	TestFraction float64 // Share of samples held out for validation.
	Verbosity    int     // Report every N iterations, 0 for silence.
}

// DefaultFitConfig returns the settings used by the command line tooling.
func DefaultFitConfig() FitConfig {
	return FitConfig{
		Hidden:       []int{64},
		Iterations:   20,
		LearningRate: 0.01,
		Momentum:     0.5,
		TestFraction: 0.2,
	}
}

// Fit trains a new network on the samples. The training itself is done by
// go-deep; this converts samples into its examples with one-hot labels.
func Fit(samples []dataset.Sample, cfg FitConfig) (*Network, error) {
	if len(samples) == 0 {
		return nil, errors.New("fit: no samples")
	}

	if cfg.Iterations < 1 {
		return nil, fmt.Errorf("fit: iterations must be positive: %d", cfg.Iterations)
	}

	examples, err := Examples(samples)
	if err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}

	examples.Shuffle()

	var train, test training.Examples
	switch cut := int(float64(len(examples)) * (1 - cfg.TestFraction)); {
	case cfg.TestFraction <= 0 || cut >= len(examples) || cut < 1:
		train = examples
	default:
		train, test = examples[:cut], examples[cut:]
	}

	nw := NewNetwork(cfg.Hidden...)

	trainer := training.NewTrainer(training.NewSGD(cfg.LearningRate, cfg.Momentum, 0, false), cfg.Verbosity)
	trainer.Train(nw.neural, train, test, cfg.Iterations)

	return nw, nil
}

// Examples converts samples into training examples. The response of each
// example is the one-hot encoding of the sample's label.
func Examples(samples []dataset.Sample) (training.Examples, error) {
	examples := make(training.Examples, len(samples))

	for i, s := range samples {
		if len(s.Features) != features.Len {
			return nil, fmt.Errorf("sample %d: got %d features, expected %d", i, len(s.Features), features.Len)
		}

		if s.Label < 0 || s.Label >= game.Cols {
			return nil, fmt.Errorf("sample %d: label %d out of range", i, s.Label)
		}

		response := make([]float64, game.Cols)
		response[s.Label] = 1

		examples[i] = training.Example{
			Input:    s.Features,
			Response: response,
		}
	}

	return examples, nil
}
