package ai

import (
	"fmt"

	"github.com/ardanlabs/connect4ml/cmd/connect/systems/ollama"
)

// Set of known chat systems.
const (
	SystemOllama = "ollama"
)

// CreateChatter can create an implementation of the Chatter interface based
// on well known systems.
func CreateChatter(system string, model string) (Chatter, error) {
	switch system {
	case SystemOllama:
		chat, err := ollama.NewChatter(model)
		if err != nil {
			return nil, err
		}
		return chat, nil
	}

	return nil, fmt.Errorf("unknown system or model: system %q, model %q", system, model)
}
