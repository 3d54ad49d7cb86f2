package advisor

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/scentlab/scent-cli/internal/config"
	"github.com/scentlab/scent-cli/pkg/claude"
	"github.com/scentlab/scent-cli/pkg/ollama"
)

// ollamaGenerator adapts the Ollama client to the Generator contract,
// unwrapping the {response: "..."} transport envelope.
type ollamaGenerator struct {
	client      ollama.Client
	model       string
	temperature float64
}

// NewOllamaGenerator creates a Generator backed by an Ollama server.
func NewOllamaGenerator(client ollama.Client, model string, temperature float64) Generator {
	return &ollamaGenerator{client: client, model: model, temperature: temperature}
}

func (g *ollamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Generate(ctx, ollama.GenerateRequest{
		Model:   g.model,
		Prompt:  prompt,
		Stream:  false,
		Options: &ollama.Options{Temperature: g.temperature},
	})
	if err != nil {
		return "", err
	}
	return resp.Response, nil
}

// FromConfig builds the configured advisory bridge: generator selection,
// endpoint, model, and timeout all come from the explicit config rather than
// ambient environment lookup.
func FromConfig(cfg config.AdvisoryConfig) (*Bridge, error) {
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second

	var gen Generator
	switch cfg.Provider {
	case "", "ollama":
		opts := []ollama.Option{ollama.WithTimeout(timeout)}
		if cfg.BaseURL != "" {
			opts = append(opts, ollama.WithBaseURL(cfg.BaseURL))
		}
		if cfg.Model != "" {
			opts = append(opts, ollama.WithModel(cfg.Model))
		}
		gen = NewOllamaGenerator(ollama.NewClient(opts...), cfg.Model, cfg.Temperature)
	case "claude":
		if cfg.AnthropicKey == "" {
			return nil, eris.New("advisor: claude provider requires an anthropic api key")
		}
		var opts []claude.Option
		if cfg.Model != "" {
			opts = append(opts, claude.WithModel(cfg.Model))
		}
		gen = claude.NewClient(cfg.AnthropicKey, cfg.Temperature, opts...)
	default:
		return nil, eris.Errorf("advisor: unknown provider %q", cfg.Provider)
	}

	return New(gen, timeout), nil
}
