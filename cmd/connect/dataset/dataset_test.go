package dataset

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ardanlabs/connect4ml/cmd/connect/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func samples() []Sample {
	a := make([]float64, features.Len)
	a[38] = 1

	b := make([]float64, features.Len)
	b[38] = -1
	b[31] = 1

	return []Sample{
		{Game: 0, Move: 0, Features: a, Label: 3},
		{Game: 0, Move: 1, Features: b, Label: 6},
	}
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer

	w := NewCSVWriter(&buf)
	require.NoError(t, w.Write(context.Background(), samples()))
	require.NoError(t, w.Close())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "f1,f2,"))
	assert.True(t, strings.HasSuffix(lines[0], ",f42,Label"))
	assert.True(t, strings.HasSuffix(lines[1], ",1,0,0,0,3"))

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i, s := range samples() {
		assert.Equal(t, s.Features, got[i].Features)
		assert.Equal(t, s.Label, got[i].Label)
	}
}

func TestCSVHeaderOnly(t *testing.T) {
	var buf bytes.Buffer

	w := NewCSVWriter(&buf)
	require.NoError(t, w.Close())

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCSVWriteBadFeatures(t *testing.T) {
	var buf bytes.Buffer

	w := NewCSVWriter(&buf)
	err := w.Write(context.Background(), []Sample{{Features: []float64{1}}})
	assert.Error(t, err)
}

func TestReadCSVErrors(t *testing.T) {
	header := strings.Join(append(features.Names(), features.LabelName), ",")
	zeros := strings.Repeat("0,", features.Len)

	tests := []struct {
		name  string
		table string
	}{
		{"empty", ""},
		{"short row", header + "\n0,1\n"},
		{"bad label", header + "\n" + zeros + "x\n"},
		{"label range", header + "\n" + zeros + "7\n"},
		{"bad feature", header + "\n" + "y," + zeros[2:] + "0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.table))
			assert.Error(t, err)
		})
	}
}

// =============================================================================

type fakeCollection struct {
	docs []any
	err  error
}

func (f *fakeCollection) InsertMany(ctx context.Context, documents []any, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.docs = append(f.docs, documents...)

	return &mongo.InsertManyResult{}, nil
}

func TestMongoSink(t *testing.T) {
	col := fakeCollection{}
	ms := newMongoSink(&col, "run-1")

	require.NoError(t, ms.Write(context.Background(), nil))
	assert.Empty(t, col.docs)

	require.NoError(t, ms.Write(context.Background(), samples()))
	require.Len(t, col.docs, 2)

	doc, ok := col.docs[1].(Document)
	require.True(t, ok)
	assert.Equal(t, "run-1", doc.RunID)
	assert.Equal(t, 1, doc.Move)
	assert.Equal(t, 6, doc.Label)
	assert.Equal(t, "run-1", ms.RunID())
}

func TestMongoSinkError(t *testing.T) {
	col := fakeCollection{err: errors.New("boom")}
	ms := newMongoSink(&col, "run-1")

	assert.Error(t, ms.Write(context.Background(), samples()))
}

// =============================================================================

type failingSink struct {
	err error
}

func (f failingSink) Write(ctx context.Context, samples []Sample) error { return f.err }
func (f failingSink) Close() error                                      { return f.err }

func TestMultiSink(t *testing.T) {
	var a, b Memory

	ms := NewMultiSink(&a, failingSink{errors.New("one")}, &b, failingSink{errors.New("two")})

	err := ms.Write(context.Background(), samples())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "one")
	assert.Contains(t, err.Error(), "two")

	assert.Len(t, a.Samples, 2)
	assert.Len(t, b.Samples, 2)

	err = ms.Close()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 errors occurred")
}

func TestMultiSinkOK(t *testing.T) {
	var a Memory

	ms := NewMultiSink(&a)
	require.NoError(t, ms.Write(context.Background(), samples()))
	require.NoError(t, ms.Close())
}
