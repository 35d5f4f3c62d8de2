package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"tryon/internal/domain"
	"tryon/internal/infra"
	"tryon/internal/infra/credentials"
)

// TryOnService renders a source portrait into the configured scenes.
type TryOnService interface {
	Generate(ctx context.Context, source domain.InlineImage) ([]domain.SceneImage, error)
	Scenes() []domain.Scene
}

type App struct {
	Config      *infra.Config
	Logger      infra.Logger
	Credentials *credentials.Store
	Service     TryOnService
}

func NewApp(cfg *infra.Config, logger infra.Logger, creds *credentials.Store, svc TryOnService) *App {
	return &App{Config: cfg, Logger: logger, Credentials: creds, Service: svc}
}

type errorResponse struct {
	Error string `json:"error"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, errorResponse{Error: message})
}

// statusFor maps a domain error kind onto an HTTP status.
func statusFor(err error) int {
	if domain.KindOf(err) == domain.KindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
