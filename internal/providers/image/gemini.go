package image

import (
	"context"
	"errors"

	"tryon/internal/domain"
	"tryon/internal/middleware"
	"tryon/internal/providers/genai"
)

type geminiClient interface {
	GenerateImage(ctx context.Context, req genai.ImageRequest) (*genai.InlineData, error)
}

// GeminiGenerator adapts the genai client to the Generator contract.
type GeminiGenerator struct {
	client geminiClient
}

func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

func (g *GeminiGenerator) Generate(ctx context.Context, source domain.InlineImage, prompt string) (domain.InlineImage, error) {
	out, err := g.client.GenerateImage(ctx, genai.ImageRequest{
		Image:     genai.InlineData{MIMEType: source.MIME(), Data: source.Data},
		Prompt:    prompt,
		RequestID: middleware.RequestIDFromContext(ctx),
	})
	if errors.Is(err, genai.ErrNoInlineImage) {
		return domain.InlineImage{}, domain.ErrNoImage
	}
	if err != nil {
		return domain.InlineImage{}, err
	}
	return domain.InlineImage{MIMEType: out.MIMEType, Data: out.Data}, nil
}

var _ Generator = (*GeminiGenerator)(nil)
