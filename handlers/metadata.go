package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"cinelist/models"
	metadatapkg "cinelist/services/metadata"
)

type metadataService interface {
	Home(context.Context) (*models.HomeBundle, error)
	Trending(context.Context, metadatapkg.MediaType, string, int) (*models.Page[models.MediaItem], error)
	MovieList(context.Context, string, int) (*models.Page[models.Movie], error)
	TVList(context.Context, string, int) (*models.Page[models.TVShow], error)
	Search(context.Context, metadatapkg.MediaType, string, int) (*models.Page[models.MediaItem], error)
	Discover(context.Context, metadatapkg.MediaType, models.DiscoverQuery) (*models.Page[models.MediaItem], error)
	Genres(context.Context, metadatapkg.MediaType) (*models.GenreList, error)
	MovieDetails(context.Context, int64) (*models.MovieDetails, error)
	TVDetails(context.Context, int64) (*models.TVDetails, error)
	Credits(context.Context, metadatapkg.MediaType, int64) (*models.Credits, error)
	Similar(context.Context, metadatapkg.MediaType, int64, int) (*models.Page[models.MediaItem], error)
	Season(context.Context, int64, int) (*models.SeasonDetails, error)
	PersonDetails(context.Context, int64) (*models.PersonDetails, error)
	PersonCredits(context.Context, int64, metadatapkg.MediaType) (*models.PersonCredits, error)
	PopularPeople(context.Context, int) (*models.Page[models.Person], error)
	Videos(context.Context, metadatapkg.MediaType, int64) (*models.VideoList, error)
	Images(context.Context, metadatapkg.MediaType, int64) (*models.ImageSet, error)
	WatchProviders(context.Context, metadatapkg.MediaType, int64, string) (*models.WatchProviders, error)
	Trailer(context.Context, metadatapkg.MediaType, int64, bool) (*models.TrailerResponse, error)
	RandomPick(context.Context, metadatapkg.MediaType, int64) (*models.MediaItem, error)
}

var _ metadataService = (*metadatapkg.Service)(nil)

type MetadataHandler struct {
	Service metadataService
}

func NewMetadataHandler(s metadataService) *MetadataHandler {
	return &MetadataHandler{Service: s}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Helper for JSON error responses
func jsonError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeServiceError maps catalog errors onto HTTP statuses. Governor denials
// carry a Retry-After hint.
func writeServiceError(w http.ResponseWriter, err error) {
	var rlErr *metadatapkg.RateLimitError
	var statusErr *metadatapkg.StatusError
	switch {
	case errors.As(err, &rlErr):
		retryAfter := rlErr.RetryAfterSeconds()
		if retryAfter < 1 {
			retryAfter = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
		jsonError(w, rlErr.Error(), http.StatusTooManyRequests)
	case errors.Is(err, metadatapkg.ErrInvalidInput):
		jsonError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, metadatapkg.ErrNoResults):
		jsonError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, metadatapkg.ErrMissingAPIKey):
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
	case errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound:
		jsonError(w, "not found", http.StatusNotFound)
	default:
		jsonError(w, err.Error(), http.StatusBadGateway)
	}
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func mediaTypeParam(w http.ResponseWriter, r *http.Request) (metadatapkg.MediaType, bool) {
	mediaType, err := metadatapkg.ParseMediaType(mux.Vars(r)["type"])
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return "", false
	}
	return mediaType, true
}

func parseBool(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func (h *MetadataHandler) Home(w http.ResponseWriter, r *http.Request) {
	bundle, err := h.Service.Home(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (h *MetadataHandler) Trending(w http.ResponseWriter, r *http.Request) {
	mediaType := metadatapkg.MediaType(strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type"))))
	if mediaType == "" {
		mediaType = metadatapkg.MediaAll
	}
	window := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("window")))
	if window == "" {
		window = "week"
	}

	page, err := h.Service.Trending(r.Context(), mediaType, window, pageParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *MetadataHandler) MovieList(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.MovieList(r.Context(), mux.Vars(r)["list"], pageParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *MetadataHandler) TVList(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.TVList(r.Context(), mux.Vars(r)["list"], pageParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *MetadataHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		jsonError(w, "missing query parameter q", http.StatusBadRequest)
		return
	}
	kind := metadatapkg.MediaAll
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("type"))) {
	case "", "multi", "all":
	case "movie", "movies":
		kind = metadatapkg.MediaMovie
	case "tv", "show", "shows":
		kind = metadatapkg.MediaTV
	case "person", "people":
		kind = metadatapkg.MediaPerson
	default:
		jsonError(w, "unsupported search type", http.StatusBadRequest)
		return
	}

	page, err := h.Service.Search(r.Context(), kind, query, pageParam(r))
	if err != nil {
		log.Printf("[metadata] search failed q=%q type=%s: %v", query, kind, err)
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *MetadataHandler) Discover(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	query := models.DiscoverQuery{
		Page:                 pageParam(r),
		SortBy:               strings.TrimSpace(q.Get("sort_by")),
		WithOriginalLanguage: strings.TrimSpace(q.Get("with_original_language")),
	}
	query.Genre, _ = strconv.ParseInt(q.Get("genre"), 10, 64)
	query.Year, _ = strconv.Atoi(q.Get("year"))
	query.FirstAirDateYear, _ = strconv.Atoi(q.Get("first_air_date_year"))
	query.VoteAverageGTE, _ = strconv.ParseFloat(q.Get("vote_average_gte"), 64)
	query.VoteAverageLTE, _ = strconv.ParseFloat(q.Get("vote_average_lte"), 64)
	query.RuntimeGTE, _ = strconv.Atoi(q.Get("with_runtime_gte"))
	query.RuntimeLTE, _ = strconv.Atoi(q.Get("with_runtime_lte"))

	page, err := h.Service.Discover(r.Context(), mediaType, query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *MetadataHandler) Genres(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(w, r)
	if !ok {
		return
	}
	genres, err := h.Service.Genres(r.Context(), mediaType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genres)
}

func (h *MetadataHandler) MovieDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		jsonError(w, "invalid movie id", http.StatusBadRequest)
		return
	}
	details, err := h.Service.MovieDetails(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *MetadataHandler) TVDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		jsonError(w, "invalid tv id", http.StatusBadRequest)
		return
	}
	details, err := h.Service.TVDetails(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *MetadataHandler) Credits(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	credits, err := h.Service.Credits(r.Context(), mediaType, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credits)
}

func (h *MetadataHandler) Similar(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	page, err := h.Service.Similar(r.Context(), mediaType, id, pageParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *MetadataHandler) Season(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		jsonError(w, "invalid tv id", http.StatusBadRequest)
		return
	}
	season, err := strconv.Atoi(mux.Vars(r)["season"])
	if err != nil || season < 0 {
		jsonError(w, "invalid season number", http.StatusBadRequest)
		return
	}
	details, err := h.Service.Season(r.Context(), id, season)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *MetadataHandler) PopularPeople(w http.ResponseWriter, r *http.Request) {
	page, err := h.Service.PopularPeople(r.Context(), pageParam(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *MetadataHandler) PersonDetails(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		jsonError(w, "invalid person id", http.StatusBadRequest)
		return
	}
	person, err := h.Service.PersonDetails(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (h *MetadataHandler) PersonCredits(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(r, "id")
	if !ok {
		jsonError(w, "invalid person id", http.StatusBadRequest)
		return
	}
	mediaType, ok := mediaTypeParam(w, r)
	if !ok {
		return
	}
	credits, err := h.Service.PersonCredits(r.Context(), id, mediaType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, credits)
}

func (h *MetadataHandler) Videos(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	videos, err := h.Service.Videos(r.Context(), mediaType, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

func (h *MetadataHandler) Images(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	images, err := h.Service.Images(r.Context(), mediaType, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

// WatchProviders lists streaming, rental and purchase options for
// ?region=TR, defaulting to the region of the current language.
func (h *MetadataHandler) WatchProviders(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	providers, err := h.Service.WatchProviders(r.Context(), mediaType, id, r.URL.Query().Get("region"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, providers)
}

// Trailer returns the best trailer for a title. ?fallback=true accepts a
// teaser or clip when no trailer exists.
func (h *MetadataHandler) Trailer(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(w, r)
	if !ok {
		return
	}
	id, ok := idParam(r, "id")
	if !ok {
		jsonError(w, "invalid id", http.StatusBadRequest)
		return
	}
	resp, err := h.Service.Trailer(r.Context(), mediaType, id, parseBool(r.URL.Query().Get("fallback")))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *MetadataHandler) Random(w http.ResponseWriter, r *http.Request) {
	mediaType, ok := mediaTypeParam(w, r)
	if !ok {
		return
	}
	genre, _ := strconv.ParseInt(r.URL.Query().Get("genre"), 10, 64)
	item, err := h.Service.RandomPick(r.Context(), mediaType, genre)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Image resolves a TMDB image path to a CDN URL.
func (h *MetadataHandler) Image(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind := metadatapkg.ImagePoster
	if raw := q.Get("kind"); raw != "" {
		parsed, ok := metadatapkg.ParseImageKind(raw)
		if !ok {
			jsonError(w, "unsupported image kind", http.StatusBadRequest)
			return
		}
		kind = parsed
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"url": metadatapkg.ImageURL(q.Get("path"), kind, q.Get("size")),
	})
}

// Register mounts the catalog routes on r. Numeric id routes are registered
// before the list routes they would otherwise shadow.
func (h *MetadataHandler) Register(r *mux.Router) {
	r.HandleFunc("/home", h.Home).Methods(http.MethodGet)
	r.HandleFunc("/trending", h.Trending).Methods(http.MethodGet)
	r.HandleFunc("/search", h.Search).Methods(http.MethodGet)
	r.HandleFunc("/images", h.Image).Methods(http.MethodGet)
	r.HandleFunc("/discover/{type}", h.Discover).Methods(http.MethodGet)
	r.HandleFunc("/genres/{type}", h.Genres).Methods(http.MethodGet)
	r.HandleFunc("/random/{type}", h.Random).Methods(http.MethodGet)

	r.HandleFunc("/movies/{id:[0-9]+}", h.MovieDetails).Methods(http.MethodGet)
	r.HandleFunc("/movies/{list}", h.MovieList).Methods(http.MethodGet)
	r.HandleFunc("/tv/{id:[0-9]+}/season/{season:[0-9]+}", h.Season).Methods(http.MethodGet)
	r.HandleFunc("/tv/{id:[0-9]+}", h.TVDetails).Methods(http.MethodGet)
	r.HandleFunc("/tv/{list}", h.TVList).Methods(http.MethodGet)

	r.HandleFunc("/{type:movie|movies|tv}/{id:[0-9]+}/credits", h.Credits).Methods(http.MethodGet)
	r.HandleFunc("/{type:movie|movies|tv}/{id:[0-9]+}/similar", h.Similar).Methods(http.MethodGet)
	r.HandleFunc("/{type:movie|movies|tv}/{id:[0-9]+}/videos", h.Videos).Methods(http.MethodGet)
	r.HandleFunc("/{type:movie|movies|tv}/{id:[0-9]+}/trailer", h.Trailer).Methods(http.MethodGet)
	r.HandleFunc("/{type:movie|movies|tv}/{id:[0-9]+}/images", h.Images).Methods(http.MethodGet)
	r.HandleFunc("/{type:movie|movies|tv}/{id:[0-9]+}/providers", h.WatchProviders).Methods(http.MethodGet)

	r.HandleFunc("/people/popular", h.PopularPeople).Methods(http.MethodGet)
	r.HandleFunc("/people/{id:[0-9]+}", h.PersonDetails).Methods(http.MethodGet)
	r.HandleFunc("/people/{id:[0-9]+}/{type:movie|tv}_credits", h.PersonCredits).Methods(http.MethodGet)
}
