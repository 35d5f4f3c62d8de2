package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"tryon/internal/domain"
	"tryon/internal/imagegen"
	"tryon/internal/middleware"
)

const (
	uploadField      = "file"
	multipartMemory  = 8 << 20
	msgFileRequired  = "Image file is required under field name 'file'."
	msgSingleFile    = "Exactly one image file is expected under field name 'file'."
	msgEmptyUpload   = "Uploaded image is empty."
	msgUploadTooBig  = "Uploaded image exceeds the %d byte limit."
	fallbackMaxBytes = 20 << 20
)

type tryOnResponse struct {
	Images []imagegen.Result `json:"images"`
}

// TryOn accepts one portrait under the multipart field "file" and answers
// with one generated image per scene, in scene order.
func (a *App) TryOn(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	rid := middleware.RequestIDFromContext(ctx)

	// A missing credential fails the request whatever the upload looks like.
	if _, err := a.Credentials.GeminiAPIKey(ctx); err != nil {
		a.fail(w, rid, "credential check", err)
		return
	}
	if a.Service == nil {
		a.fail(w, rid, "service", domain.NewConfigError("image generator is not configured"))
		return
	}

	source, err := a.readUpload(w, r)
	if err != nil {
		a.fail(w, rid, "upload", err)
		return
	}

	if a.Config != nil && a.Config.RequestMaxDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.Config.RequestMaxDuration)
		defer cancel()
	}

	images, err := a.Service.Generate(ctx, source)
	if err != nil {
		a.fail(w, rid, "generate", err)
		return
	}

	a.Logger.Info().
		Str("request_id", rid).
		Int("images", len(images)).
		Msg("tryon: request completed")
	a.json(w, http.StatusOK, tryOnResponse{Images: imagegen.Results(images)})
}

func (a *App) fail(w http.ResponseWriter, rid, stage string, err error) {
	code := statusFor(err)
	evt := a.Logger.Error()
	if code < http.StatusInternalServerError {
		evt = a.Logger.Warn()
	}
	evt.Err(err).
		Str("request_id", rid).
		Str("stage", stage).
		Str("kind", string(domain.KindOf(err))).
		Msg("tryon: request failed")
	a.error(w, code, err.Error())
}

func (a *App) maxUploadBytes() int64 {
	if a.Config != nil && a.Config.MaxUploadBytes > 0 {
		return a.Config.MaxUploadBytes
	}
	return fallbackMaxBytes
}

// readUpload extracts the single uploaded portrait and its media type.
func (a *App) readUpload(w http.ResponseWriter, r *http.Request) (domain.InlineImage, error) {
	limit := a.maxUploadBytes()
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return domain.InlineImage{}, domain.NewValidationError(fmt.Sprintf(msgUploadTooBig, limit))
		}
		return domain.InlineImage{}, domain.NewValidationError(msgFileRequired)
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	files := r.MultipartForm.File[uploadField]
	switch {
	case len(files) == 0:
		return domain.InlineImage{}, domain.NewValidationError(msgFileRequired)
	case len(files) > 1:
		return domain.InlineImage{}, domain.NewValidationError(msgSingleFile)
	}

	header := files[0]
	f, err := header.Open()
	if err != nil {
		return domain.InlineImage{}, domain.NewUnexpectedError(fmt.Errorf("open upload: %w", err))
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.InlineImage{}, domain.NewUnexpectedError(fmt.Errorf("read upload: %w", err))
	}
	if len(data) == 0 {
		return domain.InlineImage{}, domain.NewValidationError(msgEmptyUpload)
	}
	return domain.InlineImage{MIMEType: uploadMIME(header.Header.Get("Content-Type")), Data: data}, nil
}

// uploadMIME keeps the declared media type without parameters, defaulting
// to image/png.
func uploadMIME(declared string) string {
	declared = strings.TrimSpace(declared)
	if declared == "" {
		return domain.DefaultImageMIME
	}
	mt, _, err := mime.ParseMediaType(declared)
	if err != nil || mt == "" {
		if i := strings.IndexByte(declared, ';'); i >= 0 {
			declared = strings.TrimSpace(declared[:i])
		}
		if declared == "" {
			return domain.DefaultImageMIME
		}
		return strings.ToLower(declared)
	}
	return mt
}
