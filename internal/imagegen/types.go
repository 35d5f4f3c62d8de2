package imagegen

import "tryon/internal/domain"

// Result is the wire form of one generated scene.
type Result struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Src   string `json:"src"`
}

// NewResult renders a generated scene image as a data URI result.
func NewResult(si domain.SceneImage) Result {
	return Result{ID: si.Scene.ID, Title: si.Scene.Title, Src: si.Image.DataURI()}
}

// Results converts generated scene images, keeping their order.
func Results(images []domain.SceneImage) []Result {
	out := make([]Result, len(images))
	for i, si := range images {
		out[i] = NewResult(si)
	}
	return out
}
