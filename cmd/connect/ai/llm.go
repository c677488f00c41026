package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ardanlabs/connect4ml/cmd/connect/features"
	"github.com/ardanlabs/connect4ml/cmd/connect/game"
	"github.com/ardanlabs/connect4ml/cmd/connect/policy"
	"github.com/tmc/langchaingo/llms"
)

// ErrNoScores is returned when the model never produced a usable answer.
var ErrNoScores = errors.New("model did not provide scores")

// Chatter represents the behavior of a chat model.
type Chatter interface {
	Chat(ctx context.Context, prompt string, options ...llms.CallOption) (string, error)
}

// ScoreResponse is the document the model is asked to respond with.
type ScoreResponse struct {
	Scores []float64 `json:"scores"`
	Reason string    `json:"reason"`
}

// LLM scores columns by asking a chat model.
type LLM struct {
	chat     Chatter
	attempts int
	timeout  time.Duration
	log      debugLog
}

// LLMOption represents a setting for the LLM scorer.
type LLMOption func(*LLM)

// WithDebugLog writes every prompt and response to the specified file.
func WithDebugLog(path string) LLMOption {
	return func(l *LLM) {
		l.log = debugLog{path: path}
	}
}

// WithAttempts sets how many times the model is asked before giving up.
func WithAttempts(attempts int) LLMOption {
	return func(l *LLM) {
		if attempts > 0 {
			l.attempts = attempts
		}
	}
}

// NewLLM constructs a scorer over the specified chat model.
func NewLLM(chat Chatter, opts ...LLMOption) *LLM {
	l := LLM{
		chat:     chat,
		attempts: 2,
		timeout:  300 * time.Second,
	}

	for _, opt := range opts {
		opt(&l)
	}

	return &l
}

// Score implements the policy.Scorer interface.
func (l *LLM) Score(ctx context.Context, input []float64) (policy.Scores, error) {
	grid, err := features.Grid(input)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	prompt := fmt.Sprintf(promptScore, gridText(grid))

	// The model sometimes answers with something other than the document,
	// so we may need to tell it and try again.
	for attempt := 1; attempt <= l.attempts; attempt++ {
		l.log.write(prompt)
		l.log.write("\n")

		response, err := l.chat.Chat(ctx, prompt, llms.WithMaxTokens(1000), llms.WithTemperature(0.2))
		if err != nil {
			return nil, fmt.Errorf("chat: %w", err)
		}

		l.log.write("Response:")
		l.log.write(response)
		l.log.write("\n")

		scores, err := ParseScores(response)
		if err == nil {
			l.log.writef("Attempts: %d", attempt)
			l.log.write("------------------")
			return scores, nil
		}

		l.log.writef("parse: %s", err)

		prompt = fmt.Sprintf(promptScoreAgain, prompt, response)
	}

	return nil, fmt.Errorf("score: %d attempts: %w", l.attempts, ErrNoScores)
}

// ParseScores extracts the column scores from a model's response.
func ParseScores(response string) (policy.Scores, error) {
	// Models like to wrap the document in a markdown fence.
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.Trim(response, "`")

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end < start {
		return nil, errors.New("no json document in response")
	}

	var sr ScoreResponse
	if err := json.Unmarshal([]byte(response[start:end+1]), &sr); err != nil {
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	if len(sr.Scores) != game.Cols {
		return nil, fmt.Errorf("got %d scores, expected %d: %w", len(sr.Scores), game.Cols, policy.ErrScoreLength)
	}

	return policy.Scores(sr.Scores), nil
}

func gridText(grid [game.Rows][game.Cols]int) string {
	var data strings.Builder

	for row := range grid {
		data.WriteString("|")
		for _, v := range grid[row] {
			switch v {
			case features.Mine:
				data.WriteString(" M |")
			case features.Theirs:
				data.WriteString(" T |")
			default:
				data.WriteString(" . |")
			}
		}
		data.WriteString("\n")
	}

	data.WriteString("| 0 | 1 | 2 | 3 | 4 | 5 | 6 |\n")

	return data.String()
}
