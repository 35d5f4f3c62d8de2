package handlers

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
)

//go:embed openapi.json
var openAPIDocument []byte

type apiInfo struct {
	Title   string `json:"title"`
	Version string `json:"version"`
}

// docsInfo is read from the embedded document so the docs page and the
// JSON never disagree on name or version.
var docsInfo = func() apiInfo {
	var doc struct {
		Info apiInfo `json:"info"`
	}
	if err := json.Unmarshal(openAPIDocument, &doc); err != nil {
		panic("handlers: embedded openapi.json: " + err.Error())
	}
	return doc.Info
}()

var docsTemplate = template.Must(template.New("docs").Parse(`<!DOCTYPE html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <title>{{.Title}} {{.Version}}</title>
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <style>body { margin: 0; } redoc { display: block; height: 100vh; }</style>
  </head>
  <body>
    <redoc spec-url="{{.DocumentURL}}"></redoc>
    <script src="https://cdn.jsdelivr.net/npm/redoc@2.2.0/bundles/redoc.standalone.js"></script>
  </body>
</html>`))

const openAPIPath = "/v1/openapi.json"

func (a *App) OpenAPIJSON(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-API-Version", docsInfo.Version)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(openAPIDocument)
}

// OpenAPIDocs renders a redoc page pointing at OpenAPIJSON.
func (a *App) OpenAPIDocs(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	err := docsTemplate.Execute(&buf, struct {
		apiInfo
		DocumentURL string
	}{apiInfo: docsInfo, DocumentURL: openAPIPath})
	if err != nil {
		a.Logger.Error().Err(err).Msg("render api docs")
		a.error(w, http.StatusInternalServerError, "failed to render docs")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
