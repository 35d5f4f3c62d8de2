package imagegen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tryon/internal/domain"
	"tryon/internal/infra"
	"tryon/internal/middleware"
	"tryon/internal/providers/image"
)

// Options configures a Service.
type Options struct {
	Generator image.Generator
	Scenes    []domain.Scene
	Logger    *infra.Logger
}

// Service renders one source image into every configured scene.
type Service struct {
	generator image.Generator
	scenes    []domain.Scene
	logger    infra.Logger
}

// NewService builds a Service. Without explicit scenes the default catalog is used.
func NewService(opts Options) *Service {
	scenes := opts.Scenes
	if len(scenes) == 0 {
		scenes = DefaultScenes()
	} else {
		scenes = append([]domain.Scene(nil), scenes...)
	}
	logger := infra.NopLogger()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &Service{generator: opts.Generator, scenes: scenes, logger: logger}
}

// Scenes returns a copy of the scenes the service renders, in order.
func (s *Service) Scenes() []domain.Scene {
	return append([]domain.Scene(nil), s.scenes...)
}

// Generate calls the generator once per scene, strictly one after another.
// The first failure aborts the run and no partial results are returned.
func (s *Service) Generate(ctx context.Context, source domain.InlineImage) ([]domain.SceneImage, error) {
	if s.generator == nil {
		return nil, domain.NewConfigError("image generator is not configured")
	}
	if len(source.Data) == 0 {
		return nil, domain.NewValidationError("uploaded image is empty")
	}

	requestID := middleware.RequestIDFromContext(ctx)
	out := make([]domain.SceneImage, 0, len(s.scenes))
	for _, scene := range s.scenes {
		if err := ctx.Err(); err != nil {
			return nil, domain.NewUnexpectedError(err)
		}

		start := time.Now()
		img, err := s.generator.Generate(ctx, source, scene.Prompt)
		if errors.Is(err, domain.ErrNoImage) || (err == nil && len(img.Data) == 0) {
			s.logger.Warn().Str("request_id", requestID).Str("scene", scene.ID).Msg("tryon: no image returned")
			return nil, domain.NewGenerationError(scene.ID)
		}
		if err != nil {
			s.logger.Error().Err(err).Str("request_id", requestID).Str("scene", scene.ID).Msg("tryon: scene generation failed")
			if domain.KindOf(err) != domain.KindUnexpected {
				return nil, err
			}
			return nil, domain.NewUnexpectedError(fmt.Errorf("scene %s: %w", scene.ID, err))
		}

		img.MIMEType = img.MIME()
		out = append(out, domain.SceneImage{Scene: scene, Image: img})
		s.logger.Info().
			Str("request_id", requestID).
			Str("scene", scene.ID).
			Int("bytes", len(img.Data)).
			Dur("took", time.Since(start)).
			Msg("tryon: scene generated")
	}
	return out, nil
}
