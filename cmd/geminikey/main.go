package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"tryon/internal/infra"
	"tryon/internal/infra/credentials"
	"tryon/internal/providers/genai"
)

func main() {
	var (
		keyFlag   string
		probeFlag bool
	)
	flag.StringVar(&keyFlag, "key", "", "API key to check (fallbacks to GEMINI_API_KEY, then GOOGLE_API_KEY)")
	flag.BoolVar(&probeFlag, "probe", false, "Build a Gemini client with the key to catch malformed configuration")
	flag.Parse()

	_ = godotenv.Load()

	store := credentials.FromEnv(os.LookupEnv)
	if key := strings.TrimSpace(keyFlag); key != "" {
		store = credentials.NewStore(key, "-key")
	}
	if !store.Configured() {
		fmt.Fprintln(os.Stderr, credentials.MissingKeyMessage)
		os.Exit(1)
	}

	fmt.Printf("Gemini API key found in %s: %s\n", store.Source(), store.Masked())
	if !probeFlag {
		return
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := infra.NewLogger("cli").With().Str("cmd", "geminikey").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	key, err := store.GeminiAPIKey(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	client, err := genai.NewClient(ctx, genai.Options{
		APIKey:  key,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Logger:  &logger,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create gemini client: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Gemini client ready for model %s\n", client.Model())
}
