package domain

import (
	"encoding/base64"
	"strings"
)

// DefaultImageMIME is used whenever an image arrives without a media type.
const DefaultImageMIME = "image/png"

// InlineImage is a binary image payload tagged with its media type.
type InlineImage struct {
	MIMEType string
	Data     []byte
}

// MIME returns the media type, falling back to DefaultImageMIME.
func (i InlineImage) MIME() string {
	if m := strings.TrimSpace(i.MIMEType); m != "" {
		return m
	}
	return DefaultImageMIME
}

// Base64 returns the payload in standard base64 encoding.
func (i InlineImage) Base64() string {
	return base64.StdEncoding.EncodeToString(i.Data)
}

// DataURI renders the image as data:<mime>;base64,<payload>.
func (i InlineImage) DataURI() string {
	return "data:" + i.MIME() + ";base64," + i.Base64()
}

// Scene is one fixed target setting for generation.
type Scene struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Prompt string `json:"-"`
}

// SceneImage pairs a scene with the image generated for it.
type SceneImage struct {
	Scene Scene
	Image InlineImage
}
