package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/ardanlabs/connect4ml/cmd/connect/features"
	"github.com/ardanlabs/connect4ml/cmd/connect/game"
)

const columns = features.Len + 1

// CSVWriter writes samples as a comma delimited training table. The header
// holds the feature names followed by the label name.
type CSVWriter struct {
	w      *csv.Writer
	header bool
}

// NewCSVWriter constructs a writer for the training table.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{
		w: csv.NewWriter(w),
	}
}

// Write implements the Sink interface.
func (cw *CSVWriter) Write(ctx context.Context, samples []Sample) error {
	if err := cw.writeHeader(); err != nil {
		return err
	}

	row := make([]string, columns)
	for _, s := range samples {
		if len(s.Features) != features.Len {
			return fmt.Errorf("write: game %d move %d: got %d features, expected %d", s.Game, s.Move, len(s.Features), features.Len)
		}

		for i, f := range s.Features {
			row[i] = strconv.FormatFloat(f, 'g', -1, 64)
		}
		row[features.Len] = strconv.Itoa(s.Label)

		if err := cw.w.Write(row); err != nil {
			return fmt.Errorf("write: %w", err)
		}
	}

	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}

// Close implements the Sink interface. A table with no samples still gets
// its header.
func (cw *CSVWriter) Close() error {
	if err := cw.writeHeader(); err != nil {
		return err
	}

	cw.w.Flush()
	if err := cw.w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	return nil
}

func (cw *CSVWriter) writeHeader() error {
	if cw.header {
		return nil
	}

	header := append(features.Names(), features.LabelName)
	if err := cw.w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	cw.header = true

	return nil
}

// =============================================================================

// ReadCSV reads a training table written by CSVWriter. Samples are numbered
// by their row since the table does not carry the game they came from.
func ReadCSV(r io.Reader) ([]Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = columns
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("read header: empty table")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	if header[features.Len] != features.LabelName {
		return nil, fmt.Errorf("read header: got label column %q, expected %q", header[features.Len], features.LabelName)
	}

	var samples []Sample
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read: %w", err)
		}

		s := Sample{
			Move:     line - 2,
			Features: make([]float64, features.Len),
		}

		for i := range features.Len {
			f, err := strconv.ParseFloat(record[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: feature %d: %w", line, i+1, err)
			}
			s.Features[i] = f
		}

		label, err := strconv.Atoi(record[features.Len])
		if err != nil {
			return nil, fmt.Errorf("line %d: label: %w", line, err)
		}

		if label < 0 || label >= game.Cols {
			return nil, fmt.Errorf("line %d: label %d out of range [0,%d)", line, label, game.Cols)
		}
		s.Label = label

		samples = append(samples, s)
	}

	return samples, nil
}
