package image

import (
	"context"
	"fmt"

	"tryon/internal/infra"
	"tryon/internal/providers/genai"
)

// NewGeminiFromConfig builds the Gemini-backed generator for apiKey using
// the model and endpoint from cfg.
func NewGeminiFromConfig(ctx context.Context, apiKey string, cfg *infra.Config, logger infra.Logger) (*GeminiGenerator, error) {
	opts := genai.Options{APIKey: apiKey, Logger: &logger}
	if cfg != nil {
		opts.Model = cfg.GeminiModel
		opts.BaseURL = cfg.GeminiBaseURL
	}
	client, err := genai.NewClient(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("image: gemini generator: %w", err)
	}
	return NewGeminiGenerator(client), nil
}
