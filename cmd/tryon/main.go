package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"tryon/internal/domain"
	"tryon/internal/imagegen"
	"tryon/internal/infra"
	"tryon/internal/infra/credentials"
	"tryon/internal/middleware"
	"tryon/internal/providers/image"
	"tryon/internal/storage"
	"tryon/pkg/zip"
)

func main() {
	var (
		imageFlag  string
		outDirFlag string
		onlyFlag   string
		promptFlag string
		modelFlag  string
		keyFlag    string
		zipFlag    bool
	)
	flag.StringVar(&imageFlag, "image", "", "Path to the source portrait (required)")
	flag.StringVar(&outDirFlag, "out-dir", "outputs", "Directory generated scenes are written to")
	flag.StringVar(&onlyFlag, "only", "", "Comma-separated scene ids to render (subway,cafe,gym)")
	flag.StringVar(&promptFlag, "prompt", "", "Render a single custom scene from this prompt instead of the catalog")
	flag.StringVar(&modelFlag, "model", "", "Gemini model override")
	flag.StringVar(&keyFlag, "api-key", "", "API key override (fallbacks to GEMINI_API_KEY, then GOOGLE_API_KEY)")
	flag.BoolVar(&zipFlag, "zip", false, "Also bundle the generated scenes into tryon.zip")
	flag.Parse()

	_ = godotenv.Load()

	if strings.TrimSpace(imageFlag) == "" {
		fmt.Fprintln(os.Stderr, "-image is required")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := infra.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if m := strings.TrimSpace(modelFlag); m != "" {
		cfg.GeminiModel = m
	}
	logger := infra.NewLogger(cfg.AppEnv).With().Str("cmd", "tryon").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = middleware.WithRequestID(ctx, uuid.NewString())

	store := credentials.FromEnv(os.LookupEnv)
	if k := strings.TrimSpace(keyFlag); k != "" {
		store = credentials.NewStore(k, "-api-key")
	}
	key, err := store.GeminiAPIKey(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	scenes, err := selectScenes(onlyFlag, promptFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	source, err := readSource(imageFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	gen, err := image.NewGeminiFromConfig(ctx, key, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create gemini client: %v\n", err)
		os.Exit(1)
	}
	svc := imagegen.NewService(imagegen.Options{Generator: gen, Scenes: scenes, Logger: &logger})

	runCtx, cancel := context.WithTimeout(ctx, cfg.RequestMaxDuration*3)
	defer cancel()
	images, err := svc.Generate(runCtx, source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "try-on failed (%s): %v\n", domain.KindOf(err), err)
		os.Exit(1)
	}

	files, err := storage.NewFileStore(outDirFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	prefix := strings.TrimSuffix(filepath.Base(imageFlag), filepath.Ext(imageFlag))
	assets := make([]zip.Asset, 0, len(images))
	for _, si := range images {
		written, err := files.WriteScene(ctx, prefix, si)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to write scene %s: %v\n", si.Scene.ID, err)
			os.Exit(1)
		}
		fmt.Printf("%-8s %s\n", si.Scene.ID, files.Path(written))
		assets = append(assets, zip.Asset{Filename: storage.SceneFilename(si), MIME: si.Image.MIME(), Data: si.Image.Data})
	}

	if !zipFlag {
		return
	}
	archive, err := zip.ArchiveAssets(assets)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	written, err := files.Write(ctx, prefix+"/tryon.zip", archive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to write archive: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%-8s %s\n", "zip", files.Path(written))
}

func selectScenes(only, prompt string) ([]domain.Scene, error) {
	if p := strings.TrimSpace(prompt); p != "" {
		if strings.TrimSpace(only) != "" {
			return nil, fmt.Errorf("-only and -prompt cannot be combined")
		}
		return []domain.Scene{imagegen.CustomScene(p)}, nil
	}
	var ids []string
	if strings.TrimSpace(only) != "" {
		ids = strings.Split(only, ",")
	}
	return imagegen.SelectScenes(ids)
}

func readSource(path string) (domain.InlineImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.InlineImage{}, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return domain.InlineImage{}, fmt.Errorf("read image: %s is empty", path)
	}
	mimeType := domain.DefaultImageMIME
	if guessed := mime.TypeByExtension(strings.ToLower(filepath.Ext(path))); guessed != "" {
		if mt, _, err := mime.ParseMediaType(guessed); err == nil {
			mimeType = mt
		}
	}
	return domain.InlineImage{MIMEType: mimeType, Data: data}, nil
}
