package ai_test

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardanlabs/connect4ml/cmd/connect/ai"
	"github.com/ardanlabs/connect4ml/cmd/connect/dataset"
	"github.com/ardanlabs/connect4ml/cmd/connect/features"
	"github.com/ardanlabs/connect4ml/cmd/connect/game"
	"github.com/ardanlabs/connect4ml/cmd/connect/policy"
	"github.com/ardanlabs/connect4ml/cmd/connect/selfplay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

func TestNetworkScore(t *testing.T) {
	nw := ai.NewNetwork(16)

	scores, err := nw.Score(context.Background(), features.Encode(game.NewBoard(), 'X'))
	require.NoError(t, err)
	require.Len(t, scores, game.Cols)

	var sum float64
	for _, s := range scores {
		assert.False(t, math.IsNaN(s))
		sum += s
	}
	assert.InDelta(t, 1.0, sum, 1e-6)

	_, err = nw.Score(context.Background(), []float64{1, 2})
	assert.Error(t, err)
}

func TestNetworkSaveLoad(t *testing.T) {
	nw := ai.NewNetwork(8)
	path := filepath.Join(t.TempDir(), "model.json")

	require.NoError(t, nw.Save(path))

	loaded, err := ai.LoadNetwork(path)
	require.NoError(t, err)

	b := game.NewBoard()
	b.PlaceDisc(3, game.NewDisc('X'))
	input := features.Encode(b, 'O')

	want, err := nw.Score(context.Background(), input)
	require.NoError(t, err)

	got, err := loaded.Score(context.Background(), input)
	require.NoError(t, err)

	assert.InDeltaSlice(t, want, got, 1e-9)
}

func TestLoadNetworkErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ai.LoadNetwork(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("not json"), 0644))

	_, err = ai.LoadNetwork(bad)
	assert.Error(t, err)
}

func TestFit(t *testing.T) {
	cfg := selfplay.DefaultConfig()
	cfg.Games = 20

	samples, err := selfplay.Generate(context.Background(), cfg)
	require.NoError(t, err)

	fit := ai.DefaultFitConfig()
	fit.Hidden = []int{8}
	fit.Iterations = 2

	nw, err := ai.Fit(samples, fit)
	require.NoError(t, err)

	scores, err := nw.Score(context.Background(), samples[0].Features)
	require.NoError(t, err)
	assert.Len(t, scores, game.Cols)
}

func TestFitErrors(t *testing.T) {
	_, err := ai.Fit(nil, ai.DefaultFitConfig())
	assert.Error(t, err)

	bad := []dataset.Sample{{Features: make([]float64, features.Len), Label: 9}}
	_, err = ai.Fit(bad, ai.DefaultFitConfig())
	assert.Error(t, err)

	cfg := ai.DefaultFitConfig()
	cfg.Iterations = 0
	_, err = ai.Fit([]dataset.Sample{{Features: make([]float64, features.Len)}}, cfg)
	assert.Error(t, err)
}

func TestExamples(t *testing.T) {
	samples := []dataset.Sample{{Features: make([]float64, features.Len), Label: 4}}

	examples, err := ai.Examples(samples)
	require.NoError(t, err)
	require.Len(t, examples, 1)
	assert.Equal(t, []float64{0, 0, 0, 0, 1, 0, 0}, examples[0].Response)

	_, err = ai.Examples([]dataset.Sample{{Features: []float64{1}}})
	assert.Error(t, err)
}

// =============================================================================

type fakeChat struct {
	responses []string
	prompts   []string
	err       error
}

func (f *fakeChat) Chat(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	if f.err != nil {
		return "", f.err
	}

	f.prompts = append(f.prompts, prompt)

	r := f.responses[0]
	f.responses = f.responses[1:]

	return r, nil
}

func TestParseScores(t *testing.T) {
	tests := []struct {
		name     string
		response string
		ok       bool
	}{
		{"plain", `{"scores":[0,0.1,0.2,0.9,0.2,0.1,0],"reason":"center"}`, true},
		{"fenced", "```json\n{\"scores\":[1,1,1,1,1,1,1]}\n```", true},
		{"chatter", `Sure! {"scores":[1,2,3,4,5,6,7]} Good luck.`, true},
		{"short", `{"scores":[1,2,3]}`, false},
		{"no doc", `column 3`, false},
		{"bad json", `{"scores":[1,2,}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := ai.ParseScores(tt.response)
			if !tt.ok {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, scores, game.Cols)
		})
	}
}

func TestLLMScore(t *testing.T) {
	chat := fakeChat{
		responses: []string{
			`I think column 3.`,
			`{"scores":[0,0,0,1,0,0,0],"reason":"center"}`,
		},
	}

	logFile := filepath.Join(t.TempDir(), "log.txt")
	llm := ai.NewLLM(&chat, ai.WithDebugLog(logFile))

	b := game.NewBoard()
	b.PlaceDisc(0, game.NewDisc('X'))
	b.PlaceDisc(1, game.NewDisc('O'))

	scores, err := llm.Score(context.Background(), features.Encode(b, 'O'))
	require.NoError(t, err)
	assert.Equal(t, policy.Scores{0, 0, 0, 1, 0, 0, 0}, scores)

	require.Len(t, chat.prompts, 2)
	assert.Contains(t, chat.prompts[0], "| T | M | . | . | . | . | . |")
	assert.Contains(t, chat.prompts[1], "I think column 3.")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Attempts: 2")
}

func TestLLMScoreGivesUp(t *testing.T) {
	chat := fakeChat{
		responses: []string{"no", "still no", "never"},
	}

	llm := ai.NewLLM(&chat, ai.WithAttempts(3))

	_, err := llm.Score(context.Background(), make([]float64, features.Len))
	assert.ErrorIs(t, err, ai.ErrNoScores)
	assert.Len(t, chat.prompts, 3)
}

func TestLLMScoreErrors(t *testing.T) {
	boom := errors.New("connection refused")
	llm := ai.NewLLM(&fakeChat{err: boom})

	_, err := llm.Score(context.Background(), make([]float64, features.Len))
	assert.ErrorIs(t, err, boom)

	_, err = llm.Score(context.Background(), []float64{1})
	assert.Error(t, err)
}

func TestLLMPredictor(t *testing.T) {
	chat := fakeChat{
		responses: []string{`{"scores":[9,0,0,1,0,0,0]}`},
	}

	b := game.NewBoard()
	for range game.Rows {
		b.PlaceDisc(0, game.NewDisc('X'))
	}

	col, err := policy.NewPredictor(ai.NewLLM(&chat)).PredictColumn(context.Background(), b, 'O')
	require.NoError(t, err)
	assert.Equal(t, 3, col)
	assert.True(t, strings.Contains(chat.prompts[0], "| T | . |"))
}

func TestCreateChatterUnknown(t *testing.T) {
	_, err := ai.CreateChatter("nope", "model")
	assert.Error(t, err)
}
