package infra

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"gopkg.in/yaml.v3"
)

const (
	defaultGeminiModel    = "gemini-2.5-flash-image"
	defaultMaxUploadBytes = 20 << 20
)

// Config represents application configuration loaded from an optional YAML
// file and environment variables. The Gemini credential is resolved
// separately by the credentials package.
type Config struct {
	AppEnv             string        `yaml:"app_env" validate:"required"`
	Port               string        `yaml:"port" validate:"required,numeric"`
	GeminiModel        string        `yaml:"gemini_model" validate:"required"`
	GeminiBaseURL      string        `yaml:"gemini_base_url" validate:"omitempty,url"`
	HTTPReadTimeout    time.Duration `yaml:"-" validate:"gt=0"`
	HTTPWriteTimeout   time.Duration `yaml:"-" validate:"gt=0"`
	HTTPIdleTimeout    time.Duration `yaml:"-" validate:"gt=0"`
	RequestMaxDuration time.Duration `yaml:"-" validate:"gt=0"`
	MaxUploadBytes     int64         `yaml:"max_upload_bytes" validate:"gt=0"`
	CORSAllowedOrigins []string      `yaml:"cors_allowed_origins"`
}

// fileConfig mirrors the YAML layout; durations are expressed in seconds.
type fileConfig struct {
	Config                    `yaml:",inline"`
	HTTPReadTimeoutSeconds    int `yaml:"http_read_timeout_seconds"`
	HTTPWriteTimeoutSeconds   int `yaml:"http_write_timeout_seconds"`
	HTTPIdleTimeoutSeconds    int `yaml:"http_idle_timeout_seconds"`
	RequestMaxDurationSeconds int `yaml:"request_max_duration_seconds"`
}

// LoadConfig loads configuration, applies defaults where needed and validates
// the result. Values from CONFIG_FILE are overridden by the environment.
func LoadConfig() (*Config, error) {
	file, err := loadFileConfig(os.Getenv("CONFIG_FILE"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		AppEnv:             getEnv("APP_ENV", orString(file.AppEnv, "development")),
		Port:               getEnv("PORT", orString(file.Port, "8080")),
		GeminiModel:        getEnv("GEMINI_MODEL", orString(file.GeminiModel, defaultGeminiModel)),
		GeminiBaseURL:      getEnv("GEMINI_BASE_URL", file.GeminiBaseURL),
		HTTPReadTimeout:    time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", orInt(file.HTTPReadTimeoutSeconds, 30))),
		HTTPWriteTimeout:   time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", orInt(file.HTTPWriteTimeoutSeconds, 90))),
		HTTPIdleTimeout:    time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", orInt(file.HTTPIdleTimeoutSeconds, 60))),
		RequestMaxDuration: time.Second * time.Duration(getEnvInt("REQUEST_MAX_DURATION_SECONDS", orInt(file.RequestMaxDurationSeconds, 60))),
		MaxUploadBytes:     int64(getEnvInt("MAX_UPLOAD_BYTES", orInt(int(file.MaxUploadBytes), defaultMaxUploadBytes))),
		CORSAllowedOrigins: file.CORSAllowedOrigins,
	}
	if raw, ok := os.LookupEnv("CORS_ALLOWED_ORIGINS"); ok && strings.TrimSpace(raw) != "" {
		cfg.CORSAllowedOrigins = splitList(raw)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct constraints declared on Config.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func loadFileConfig(path string) (fileConfig, error) {
	var fc fileConfig
	path = strings.TrimSpace(path)
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return fc, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func orString(v, fallback string) string {
	if strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func orInt(v, fallback int) int {
	if v > 0 {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
