// Package dataset provides support for the training samples produced by
// self-play and the places they are stored.
package dataset

import (
	"context"

	"github.com/hashicorp/go-multierror"
)

// Sample represents one move: the board as seen by the player about to move
// and the column that player chose.
type Sample struct {
	Game     int
	Move     int
	Features []float64
	Label    int
}

// Sink is anything that can store samples. Samples are written in the order
// they are provided.
type Sink interface {
	Write(ctx context.Context, samples []Sample) error
	Close() error
}

// =============================================================================

// MultiSink writes every sample to each of its sinks.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink constructs a sink that fans out to the specified sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{
		sinks: sinks,
	}
}

// Write implements the Sink interface. Every sink is given the samples even
// when an earlier sink fails.
func (ms *MultiSink) Write(ctx context.Context, samples []Sample) error {
	var errs error
	for _, s := range ms.sinks {
		if err := s.Write(ctx, samples); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return errs
}

// Close implements the Sink interface.
func (ms *MultiSink) Close() error {
	var errs error
	for _, s := range ms.sinks {
		if err := s.Close(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return errs
}

// =============================================================================

// Memory keeps samples in memory.
type Memory struct {
	Samples []Sample
}

// Write implements the Sink interface.
func (m *Memory) Write(ctx context.Context, samples []Sample) error {
	m.Samples = append(m.Samples, samples...)
	return nil
}

// Close implements the Sink interface.
func (*Memory) Close() error {
	return nil
}
