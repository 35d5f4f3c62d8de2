package handlers

import (
	"net/http"
)

type healthResponse struct {
	Status           string `json:"status"`
	GeminiConfigured bool   `json:"gemini_configured"`
	Scenes           int    `json:"scenes"`
}

func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", GeminiConfigured: a.Credentials.Configured()}
	if a.Service != nil {
		resp.Scenes = len(a.Service.Scenes())
	}
	a.json(w, http.StatusOK, resp)
}
