package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"tryon/internal/http/handlers"
	httpapi "tryon/internal/http/httpapi"
	"tryon/internal/imagegen"
	"tryon/internal/infra"
	"tryon/internal/infra/credentials"
	"tryon/internal/providers/image"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	creds := credentials.FromEnv(os.LookupEnv)
	svcOpts := imagegen.Options{Logger: &logger}
	if key, err := creds.GeminiAPIKey(ctx); err != nil {
		logger.Warn().Msg(credentials.MissingKeyMessage + " Try-on requests will fail until it is set.")
	} else {
		gen, err := image.NewGeminiFromConfig(ctx, key, cfg, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to create gemini client")
		}
		svcOpts.Generator = gen
		logger.Info().
			Str("model", cfg.GeminiModel).
			Str("key_source", creds.Source()).
			Msg("gemini generator ready")
	}
	svc := imagegen.NewService(svcOpts)

	app := handlers.NewApp(cfg, logger, creds, svc)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Msgf("API listening on %s", server.Addr())
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
	logger.Info().Msg("server stopped")
}
