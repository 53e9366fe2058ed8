// Package generator provides the Gemini-backed implementation of the
// external schedule generator.
package generator

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	coregen "github.com/akif5298/flowstate/core/generator"
	"github.com/akif5298/flowstate/core/logger"
)

// Config holds the Gemini client settings.
type Config struct {
	APIKey         string `json:"api_key"`
	Model          string `json:"model"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Model == "" {
		c.Model = "gemini-2.5-flash"
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
}

// GeminiGenerator calls the Gemini API to draft a day schedule. The response
// is returned as raw text; validation happens in core/reconcile.
type GeminiGenerator struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	log     logger.Logger
}

// NewGeminiGenerator creates a generator from the configuration.
func NewGeminiGenerator(ctx context.Context, cfg Config, log logger.Logger) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("generator: api key is required")
	}
	cfg.SetDefaults()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: cfg.APIKey})
	if err != nil {
		return nil, fmt.Errorf("generator: create client: %w", err)
	}
	return &GeminiGenerator{
		client:  client,
		model:   cfg.Model,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		log:     log,
	}, nil
}

// Generate sends the schedule prompt and returns the raw response text.
func (g *GeminiGenerator) Generate(ctx context.Context, req coregen.Request) (string, error) {
	prompt := BuildSchedulePrompt(req)
	g.log.Debugf("requesting schedule from %s (%d predictions, %d tasks)",
		g.model, len(req.Predictions), len(req.Tasks))

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generate schedule: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("generate schedule: empty response")
	}
	return text, nil
}
