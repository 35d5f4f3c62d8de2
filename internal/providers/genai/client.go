package genai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sdk "google.golang.org/genai"

	"tryon/internal/infra"
)

const defaultModel = "gemini-2.5-flash-image"

// ErrNoInlineImage is returned when a response carries no inline image part.
var ErrNoInlineImage = errors.New("genai: response carried no inline image")

// Options controls how the Gemini client is configured.
type Options struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
	Logger     *infra.Logger
}

// Client is a thin facade over the Gemini SDK that speaks in raw image bytes.
type Client struct {
	models *sdk.Models
	model  string
	logger *infra.Logger
}

// InlineData is a binary payload plus its media type.
type InlineData struct {
	MIMEType string
	Data     []byte
}

// ImageRequest is one image-plus-text generation call.
type ImageRequest struct {
	Image     InlineData
	Prompt    string
	RequestID string
}

// NewClient constructs a Gemini client. Callers may provide a nil HTTP
// client; one with a generous timeout is created.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	apiKey := strings.TrimSpace(opts.APIKey)
	if apiKey == "" {
		return nil, errors.New("genai: api key is required")
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}

	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}

	logger := opts.Logger
	if logger == nil {
		l := infra.NopLogger()
		logger = &l
	}

	cfg := &sdk.ClientConfig{
		APIKey:     apiKey,
		Backend:    sdk.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/"); base != "" {
		cfg.HTTPOptions = sdk.HTTPOptions{BaseURL: base + "/"}
	}

	client, err := sdk.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("genai: create client: %w", err)
	}

	return &Client{
		models: client.Models,
		model:  model,
		logger: logger,
	}, nil
}

// Model returns the configured Gemini model identifier.
func (c *Client) Model() string {
	return c.model
}

// GenerateImage sends the source image and prompt in a single user turn and
// returns the first inline image of the first candidate.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (*InlineData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parts := []*sdk.Part{
		sdk.NewPartFromBytes(req.Image.Data, req.Image.MIMEType),
		sdk.NewPartFromText(req.Prompt),
	}
	contents := []*sdk.Content{sdk.NewContentFromParts(parts, sdk.RoleUser)}
	config := &sdk.GenerateContentConfig{
		ResponseModalities: []string{"IMAGE", "TEXT"},
	}

	start := time.Now()
	resp, err := c.models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("genai: generate content: %w", err)
	}

	blob := firstInlineImage(resp)
	c.logger.Debug().
		Str("model", c.model).
		Str("request_id", req.RequestID).
		Bool("image", blob != nil).
		Dur("took", time.Since(start)).
		Msg("genai: generate content")
	if blob == nil {
		return nil, ErrNoInlineImage
	}
	return &InlineData{MIMEType: blob.MIMEType, Data: blob.Data}, nil
}

func firstInlineImage(resp *sdk.GenerateContentResponse) *sdk.Blob {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	candidate := resp.Candidates[0]
	if candidate == nil || candidate.Content == nil {
		return nil
	}
	for _, part := range candidate.Content.Parts {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			return part.InlineData
		}
	}
	return nil
}
