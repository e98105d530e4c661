package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	metadatapkg "cinelist/services/metadata"
	"cinelist/services/ratelimit"
)

type settingsService interface {
	Language() string
	SetLanguage(string) (string, error)
	ClearCache(context.Context) error
	RateLimitStatus(string) (ratelimit.Status, bool)
	RateLimitPolicy() (int, time.Duration)
	ResetRateLimit(string)
}

var _ settingsService = (*metadatapkg.Service)(nil)

type SettingsHandler struct {
	Service settingsService
}

func NewSettingsHandler(s settingsService) *SettingsHandler {
	return &SettingsHandler{Service: s}
}

// LanguageRequest is the body of PUT /api/settings/language.
type LanguageRequest struct {
	Language string `json:"language"`
}

// RateLimitStatusResponse describes the governor record for one endpoint.
type RateLimitStatusResponse struct {
	Endpoint      string     `json:"endpoint"`
	Tracked       bool       `json:"tracked"`
	Count         int        `json:"count"`
	Remaining     int        `json:"remaining"`
	ResetAt       *time.Time `json:"resetAt,omitempty"`
	MaxRequests   int        `json:"maxRequests"`
	WindowSeconds float64    `json:"windowSeconds"`
}

func (h *SettingsHandler) GetLanguage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, LanguageRequest{Language: h.Service.Language()})
}

func (h *SettingsHandler) PutLanguage(w http.ResponseWriter, r *http.Request) {
	var req LanguageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	lang, err := h.Service.SetLanguage(req.Language)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	log.Printf("[settings] api language changed to %s", lang)
	writeJSON(w, http.StatusOK, LanguageRequest{Language: lang})
}

// ClearMetadataCache drops every cached TMDB response.
func (h *SettingsHandler) ClearMetadataCache(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ClearCache(r.Context()); err != nil {
		jsonError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	log.Printf("[settings] metadata cache cleared by user request")
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "message": "Metadata cache cleared"})
}

// RateLimitStatus reports the governor record for ?endpoint=/movie/popular.
// An endpoint without a live record reports the full quota.
func (h *SettingsHandler) RateLimitStatus(w http.ResponseWriter, r *http.Request) {
	endpoint := strings.TrimSpace(r.URL.Query().Get("endpoint"))
	if endpoint == "" {
		jsonError(w, "missing query parameter endpoint", http.StatusBadRequest)
		return
	}
	limit, window := h.Service.RateLimitPolicy()
	resp := RateLimitStatusResponse{
		Endpoint:      endpoint,
		Remaining:     limit,
		MaxRequests:   limit,
		WindowSeconds: window.Seconds(),
	}
	if st, ok := h.Service.RateLimitStatus(endpoint); ok {
		resetAt := st.ResetAt
		resp.Tracked = true
		resp.Count = st.Count
		resp.Remaining = st.Remaining
		resp.ResetAt = &resetAt
	}
	writeJSON(w, http.StatusOK, resp)
}

// ResetRateLimit clears the record for {"endpoint": "..."} or all records
// when the body is empty or names no endpoint.
func (h *SettingsHandler) ResetRateLimit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Endpoint string `json:"endpoint"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	endpoint := strings.TrimSpace(req.Endpoint)
	h.Service.ResetRateLimit(endpoint)
	scope := endpoint
	if scope == "" {
		scope = "all"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "reset": scope})
}

// Register mounts the settings routes. Mutating routes go through guard.
func (h *SettingsHandler) Register(r *mux.Router, guard func(http.HandlerFunc) http.HandlerFunc) {
	if guard == nil {
		guard = func(next http.HandlerFunc) http.HandlerFunc { return next }
	}
	r.HandleFunc("/settings/language", h.GetLanguage).Methods(http.MethodGet)
	r.HandleFunc("/settings/language", guard(h.PutLanguage)).Methods(http.MethodPut)
	r.HandleFunc("/cache", guard(h.ClearMetadataCache)).Methods(http.MethodDelete)
	r.HandleFunc("/ratelimit/status", h.RateLimitStatus).Methods(http.MethodGet)
	r.HandleFunc("/ratelimit/reset", guard(h.ResetRateLimit)).Methods(http.MethodPost)
}
