package credentials

import (
	"context"
	"os"
	"strings"

	"tryon/internal/domain"
)

const (
	ProviderGemini = "gemini"

	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvGoogleAPIKey = "GOOGLE_API_KEY"
)

// MissingKeyMessage is reported to clients when no credential is configured.
const MissingKeyMessage = "Set GEMINI_API_KEY or GOOGLE_API_KEY in your environment."

// LookupFunc matches os.LookupEnv so tests can resolve without touching the
// process environment.
type LookupFunc func(key string) (string, bool)

// Store holds the Gemini credential resolved once at startup.
type Store struct {
	key    string
	source string
}

// NewStore builds a store around an already resolved key.
func NewStore(key, source string) *Store {
	return &Store{key: strings.TrimSpace(key), source: source}
}

// FromEnv resolves the credential from GEMINI_API_KEY, then GOOGLE_API_KEY.
// The first non-empty variable wins.
func FromEnv(lookup LookupFunc) *Store {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for _, name := range []string{EnvGeminiAPIKey, EnvGoogleAPIKey} {
		if v, ok := lookup(name); ok && strings.TrimSpace(v) != "" {
			return NewStore(v, name)
		}
	}
	return &Store{}
}

// GeminiAPIKey returns the configured key or a config error when absent.
func (s *Store) GeminiAPIKey(ctx context.Context) (string, error) {
	return s.Token(ctx, ProviderGemini)
}

func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.key == "" || provider != ProviderGemini {
		return "", domain.NewConfigError(MissingKeyMessage)
	}
	return s.key, nil
}

// Configured reports whether a key was resolved.
func (s *Store) Configured() bool {
	return s != nil && s.key != ""
}

// Source names the environment variable the key came from.
func (s *Store) Source() string {
	if s == nil {
		return ""
	}
	return s.source
}

// Masked returns the key with everything but its edges hidden.
func (s *Store) Masked() string {
	if !s.Configured() {
		return ""
	}
	if len(s.key) <= 8 {
		return strings.Repeat("*", len(s.key))
	}
	return s.key[:4] + strings.Repeat("*", len(s.key)-8) + s.key[len(s.key)-4:]
}
