package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"tryon/internal/imagegen"
)

//go:embed web/index.html
var webFS embed.FS

var indexTemplate = template.Must(template.ParseFS(webFS, "web/index.html"))

type sceneSlot struct {
	ID    string
	Title string
}

type indexData struct {
	Scenes []sceneSlot
}

// Index serves the upload page with one empty slot per scene.
func (a *App) Index(w http.ResponseWriter, r *http.Request) {
	scenes := imagegen.DefaultScenes()
	if a.Service != nil {
		scenes = a.Service.Scenes()
	}
	data := indexData{Scenes: make([]sceneSlot, 0, len(scenes))}
	for _, s := range scenes {
		data.Scenes = append(data.Scenes, sceneSlot{ID: s.ID, Title: s.Title})
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		a.Logger.Error().Err(err).Msg("render index")
		a.error(w, http.StatusInternalServerError, "failed to render page")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
