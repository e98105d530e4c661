package handlers

import (
	"net/http"
	"runtime"

	"github.com/gorilla/mux"
)

// Version is stamped at build time:
//
//	go build -ldflags "-X cinelist/handlers.Version=1.2.0" ./cmd/cinelist
var Version = "dev"

type VersionResponse struct {
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	Language  string `json:"language"`
}

type VersionHandler struct {
	language func() string
}

// NewVersionHandler reports the build version together with the active
// TMDB language.
func NewVersionHandler(language func() string) *VersionHandler {
	return &VersionHandler{language: language}
}

func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	resp := VersionResponse{Version: Version, GoVersion: runtime.Version()}
	if h.language != nil {
		resp.Language = h.language()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *VersionHandler) Register(r *mux.Router) {
	r.HandleFunc("/version", h.GetVersion).Methods(http.MethodGet)
}
