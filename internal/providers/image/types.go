package image

import (
	"context"

	"tryon/internal/domain"
)

// Generator is the contract implemented by image providers: one source image
// plus one text prompt in, one inline image out. Implementations return
// domain.ErrNoImage when the provider answered without an image.
type Generator interface {
	Generate(ctx context.Context, source domain.InlineImage, prompt string) (domain.InlineImage, error)
}

// GeneratorFunc adapts a plain function to Generator.
type GeneratorFunc func(ctx context.Context, source domain.InlineImage, prompt string) (domain.InlineImage, error)

func (f GeneratorFunc) Generate(ctx context.Context, source domain.InlineImage, prompt string) (domain.InlineImage, error) {
	return f(ctx, source, prompt)
}
