// Package llm wraps a vision-capable language model behind the three
// operations the parsing pipeline needs: page-text extraction with math
// delimiters, section-title validation, and reference parsing. All
// failures here are meant to be recoverable; callers degrade to
// heuristic results.
package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// Config selects the model provider and generation parameters.
type Config struct {
	Provider    string
	Model       string
	Temperature float64
	MaxTokens   int
	Logger      *zap.SugaredLogger
}

// DefaultConfig returns conservative generation settings with the
// provider unset; callers choose the provider explicitly.
func DefaultConfig() Config {
	return Config{
		Temperature: 0.0,
		MaxTokens:   4096,
	}
}

// Client is a configured vision model. The zero value is not usable;
// construct with New.
type Client struct {
	provider string
	model    llms.Model
	cfg      Config
	log      *zap.SugaredLogger
}

// New builds a client for the configured provider. API credentials come
// from the environment (OPENAI_API_KEY, ANTHROPIC_API_KEY, OLLAMA_HOST)
// and are checked at construction so a misconfigured client fails fast
// rather than mid-parse.
func New(cfg Config) (*Client, error) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}

	var model llms.Model
	var err error
	provider := strings.ToLower(cfg.Provider)
	switch provider {
	case "openai":
		model, err = newOpenAI(cfg)
	case "anthropic":
		model, err = newAnthropic(cfg)
	case "ollama":
		model, err = newOllama(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}

	return &Client{provider: provider, model: model, cfg: cfg, log: cfg.Logger}, nil
}

func newOpenAI(cfg Config) (llms.Model, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	opts := []openai.Option{
		openai.WithModel(cfg.Model),
		openai.WithToken(apiKey),
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	return openai.New(opts...)
}

func newAnthropic(cfg Config) (llms.Model, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("ANTHROPIC_API_KEY is not set")
	}
	return anthropic.New(
		anthropic.WithModel(cfg.Model),
		anthropic.WithToken(apiKey),
	)
}

func newOllama(cfg Config) (llms.Model, error) {
	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = "http://127.0.0.1:11434"
	}
	return ollama.New(
		ollama.WithModel(cfg.Model),
		ollama.WithServerURL(host),
	)
}

// generate sends one human message, optionally with an attached image,
// and returns the text of the first choice.
func (c *Client) generate(ctx context.Context, prompt string, image []byte) (string, error) {
	var parts []llms.ContentPart
	if image != nil {
		if c.provider == "openai" {
			parts = append(parts, llms.ImageURLPart("data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(image)))
		} else {
			parts = append(parts, llms.BinaryPart("image/jpeg", image))
		}
	}
	parts = append(parts, llms.TextPart(prompt))

	callOpts := []llms.CallOption{llms.WithTemperature(c.cfg.Temperature)}
	if c.cfg.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(c.cfg.MaxTokens))
	}

	completion, err := c.model.GenerateContent(ctx, []llms.MessageContent{
		{Role: schema.ChatMessageTypeHuman, Parts: parts},
	}, callOpts...)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("llm returned no choices")
	}
	return completion.Choices[0].Content, nil
}
