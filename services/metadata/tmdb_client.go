package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"cinelist/models"
	"cinelist/services/ratelimit"
)

const (
	defaultTMDBBaseURL    = "https://api.themoviedb.org/3"
	defaultRequestSpacing = 100 * time.Millisecond
	// sharedCallTimeout bounds a collapsed GET once it no longer follows any
	// single caller's context.
	sharedCallTimeout = 2 * time.Minute
)

var (
	// ErrRateLimited is matched by every *RateLimitError.
	ErrRateLimited   = errors.New("rate limit exceeded")
	ErrMissingAPIKey = errors.New("tmdb api key not configured")
	ErrInvalidInput  = errors.New("invalid input")
)

// RateLimitError is returned when the request governor denies a call before
// it reaches the network.
type RateLimitError struct {
	Endpoint   string
	RetryAfter time.Duration
	ResetAt    time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limit exceeded, try again in %d seconds", e.RetryAfterSeconds())
}

func (e *RateLimitError) Is(target error) bool { return target == ErrRateLimited }

// RetryAfterSeconds rounds the wait up to whole seconds.
func (e *RateLimitError) RetryAfterSeconds() int {
	return int(math.Ceil(e.RetryAfter.Seconds()))
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// MediaType is the TMDB path segment for a title kind.
type MediaType string

const (
	MediaMovie  MediaType = "movie"
	MediaTV     MediaType = "tv"
	MediaPerson MediaType = "person"
	MediaAll    MediaType = "all"
)

// ParseMediaType accepts "movie"/"movies" and "tv"/"show"/"shows".
func ParseMediaType(value string) (MediaType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "movie", "movies":
		return MediaMovie, nil
	case "tv", "show", "shows", "series":
		return MediaTV, nil
	default:
		return "", invalidInput("unsupported media type %q", value)
	}
}

// ClientConfig configures the TMDB client.
type ClientConfig struct {
	APIKey   string
	BaseURL  string
	Language string

	MaxRetries   int
	InitialDelay time.Duration
	// RequestSpacing is the minimum gap between outbound requests. Zero uses
	// the default; negative disables spacing.
	RequestSpacing time.Duration

	HTTPClient *http.Client
	Governor   *ratelimit.Governor

	retryOptions []retry.Option
}

type tmdbClient struct {
	apiKey       string
	baseURL      string
	httpc        httpDoer
	governor     *ratelimit.Governor
	spacing      *rate.Limiter
	maxRetries   int
	initialDelay time.Duration
	retryOpts    []retry.Option
	group        singleflight.Group

	mu       sync.RWMutex
	language string
}

func newTMDBClient(cfg ClientConfig) *tmdbClient {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultTMDBBaseURL
	}
	lang := strings.TrimSpace(cfg.Language)
	if lang == "" {
		lang = defaultLanguage
	} else {
		lang = normalizeLanguage(lang)
	}
	gov := cfg.Governor
	if gov == nil {
		gov = ratelimit.NewTMDB()
	}
	initialDelay := cfg.InitialDelay
	if initialDelay <= 0 {
		initialDelay = defaultInitialDelay
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	spacing := rate.NewLimiter(rate.Every(defaultRequestSpacing), 1)
	switch {
	case cfg.RequestSpacing > 0:
		spacing = rate.NewLimiter(rate.Every(cfg.RequestSpacing), 1)
	case cfg.RequestSpacing < 0:
		spacing = rate.NewLimiter(rate.Inf, 1)
	}
	return &tmdbClient{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		baseURL:      baseURL,
		httpc:        httpc,
		governor:     gov,
		spacing:      spacing,
		maxRetries:   maxRetries,
		initialDelay: initialDelay,
		retryOpts:    cfg.retryOptions,
		language:     lang,
	}
}

func (c *tmdbClient) Language() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.language
}

func (c *tmdbClient) SetLanguage(lang string) string {
	lang = normalizeLanguage(lang)
	c.mu.Lock()
	c.language = lang
	c.mu.Unlock()
	return lang
}

// buildURL joins endpoint onto the base URL, always adding api_key and
// adding the current language unless params already carry one. Empty values
// are skipped.
func (c *tmdbClient) buildURL(endpoint string, params url.Values) string {
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			if strings.TrimSpace(v) == "" {
				continue
			}
			q.Add(k, v)
		}
	}
	q.Set("api_key", c.apiKey)
	if q.Get("language") == "" {
		q.Set("language", c.Language())
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}
	return c.baseURL + endpoint + "?" + q.Encode()
}

// get runs one logical TMDB call: governor check, request spacing, retried
// fetch, JSON decode. Concurrent identical GETs share one upstream request.
func (c *tmdbClient) get(ctx context.Context, endpoint string, params url.Values, v any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}
	if !strings.HasPrefix(endpoint, "/") {
		endpoint = "/" + endpoint
	}

	decision := c.governor.CheckLimit(endpoint)
	if !decision.Allowed {
		wait := ratelimit.RetryIn(decision, c.governor.Now())
		log.Printf("[tmdb] rate limit exceeded for %s, retry in %s", endpoint, wait.Round(time.Second))
		return &RateLimitError{Endpoint: endpoint, RetryAfter: wait, ResetAt: decision.ResetAt}
	}

	target := c.buildURL(endpoint, params)
	// The shared call outlives a caller that gives up, so joined callers
	// still get their answer.
	ch := c.group.DoChan(target, func() (any, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedCallTimeout)
		defer cancel()
		return c.fetch(callCtx, target)
	})
	var res singleflight.Result
	select {
	case <-ctx.Done():
		return fmt.Errorf("tmdb %s: %w", endpoint, ctx.Err())
	case res = <-ch:
	}
	if res.Err != nil {
		return fmt.Errorf("tmdb %s: %w", endpoint, res.Err)
	}
	if err := json.Unmarshal(res.Val.([]byte), v); err != nil {
		return fmt.Errorf("decode tmdb %s: %w", endpoint, err)
	}
	return nil
}

func (c *tmdbClient) fetch(ctx context.Context, target string) ([]byte, error) {
	if err := c.spacing.Wait(ctx); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	resp, err := fetchWithRetry(ctx, c.httpc, req, c.maxRetries, c.initialDelay, c.retryOpts...)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// normalizePage maps anything below the first page to 1.
func normalizePage(page int) int {
	return max(page, 1)
}

func pageParams(page int) url.Values {
	return url.Values{"page": {strconv.Itoa(normalizePage(page))}}
}

func getPage[T any](ctx context.Context, c *tmdbClient, endpoint string, params url.Values) (*models.Page[T], error) {
	var out models.Page[T]
	if err := c.get(ctx, endpoint, params, &out); err != nil {
		return nil, err
	}
	if out.Results == nil {
		out.Results = []T{}
	}
	return &out, nil
}

var (
	movieLists = map[string]bool{"popular": true, "top_rated": true, "now_playing": true, "upcoming": true}
	tvLists    = map[string]bool{"popular": true, "top_rated": true, "on_the_air": true}
)

func (c *tmdbClient) movieList(ctx context.Context, list string, page int) (*models.Page[models.Movie], error) {
	if !movieLists[list] {
		return nil, invalidInput("unknown movie list %q", list)
	}
	return getPage[models.Movie](ctx, c, "/movie/"+list, pageParams(page))
}

func (c *tmdbClient) tvList(ctx context.Context, list string, page int) (*models.Page[models.TVShow], error) {
	if !tvLists[list] {
		return nil, invalidInput("unknown tv list %q", list)
	}
	return getPage[models.TVShow](ctx, c, "/tv/"+list, pageParams(page))
}

func (c *tmdbClient) trending(ctx context.Context, mediaType MediaType, window string, page int) (*models.Page[models.MediaItem], error) {
	switch mediaType {
	case MediaAll, MediaMovie, MediaTV, MediaPerson:
	default:
		return nil, invalidInput("unsupported trending type %q", mediaType)
	}
	if window != "day" && window != "week" {
		return nil, invalidInput("unsupported trending window %q", window)
	}
	out, err := getPage[models.MediaItem](ctx, c, "/trending/"+string(mediaType)+"/"+window, pageParams(page))
	if err != nil {
		return nil, err
	}
	fillMediaType(out.Results, mediaType)
	return out, nil
}

func (c *tmdbClient) search(ctx context.Context, kind MediaType, query string, page int) (*models.Page[models.MediaItem], error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalidInput("empty search query")
	}
	segment := string(kind)
	if kind == MediaAll {
		segment = "multi"
	}
	switch kind {
	case MediaAll, MediaMovie, MediaTV, MediaPerson:
	default:
		return nil, invalidInput("unsupported search type %q", kind)
	}
	params := pageParams(page)
	params.Set("query", query)
	out, err := getPage[models.MediaItem](ctx, c, "/search/"+segment, params)
	if err != nil {
		return nil, err
	}
	fillMediaType(out.Results, kind)
	return out, nil
}

// fillMediaType stamps single-type results so mixed consumers can tell them
// apart.
func fillMediaType(items []models.MediaItem, kind MediaType) {
	if kind == MediaAll {
		return
	}
	for i := range items {
		if items[i].MediaType == "" {
			items[i].MediaType = string(kind)
		}
	}
}

func discoverParams(mediaType MediaType, q models.DiscoverQuery) url.Values {
	params := pageParams(q.Page)
	if q.Genre > 0 {
		params.Set("with_genres", strconv.FormatInt(q.Genre, 10))
	}
	if mediaType == MediaMovie && q.Year > 0 {
		params.Set("primary_release_year", strconv.Itoa(q.Year))
	}
	year := q.FirstAirDateYear
	if year == 0 {
		year = q.Year
	}
	if mediaType == MediaTV && year > 0 {
		params.Set("first_air_date_year", strconv.Itoa(year))
	}
	if q.SortBy != "" {
		params.Set("sort_by", q.SortBy)
	}
	if q.VoteAverageGTE > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(q.VoteAverageGTE, 'f', -1, 64))
	}
	if q.VoteAverageLTE > 0 {
		params.Set("vote_average.lte", strconv.FormatFloat(q.VoteAverageLTE, 'f', -1, 64))
	}
	if mediaType == MediaMovie && q.RuntimeGTE > 0 {
		params.Set("with_runtime.gte", strconv.Itoa(q.RuntimeGTE))
	}
	if mediaType == MediaMovie && q.RuntimeLTE > 0 {
		params.Set("with_runtime.lte", strconv.Itoa(q.RuntimeLTE))
	}
	if q.WithOriginalLanguage != "" {
		params.Set("with_original_language", q.WithOriginalLanguage)
	}
	return params
}

func (c *tmdbClient) discover(ctx context.Context, mediaType MediaType, q models.DiscoverQuery) (*models.Page[models.MediaItem], error) {
	if mediaType != MediaMovie && mediaType != MediaTV {
		return nil, invalidInput("unsupported discover type %q", mediaType)
	}
	out, err := getPage[models.MediaItem](ctx, c, "/discover/"+string(mediaType), discoverParams(mediaType, q))
	if err != nil {
		return nil, err
	}
	fillMediaType(out.Results, mediaType)
	return out, nil
}

func (c *tmdbClient) genres(ctx context.Context, mediaType MediaType) (*models.GenreList, error) {
	var out models.GenreList
	if err := c.get(ctx, "/genre/"+string(mediaType)+"/list", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tmdbClient) movieDetails(ctx context.Context, id int64) (*models.MovieDetails, error) {
	var out models.MovieDetails
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tmdbClient) tvDetails(ctx context.Context, id int64) (*models.TVDetails, error) {
	var out models.TVDetails
	if err := c.get(ctx, fmt.Sprintf("/tv/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tmdbClient) credits(ctx context.Context, mediaType MediaType, id int64) (*models.Credits, error) {
	var out models.Credits
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/credits", mediaType, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tmdbClient) similar(ctx context.Context, mediaType MediaType, id int64, page int) (*models.Page[models.MediaItem], error) {
	out, err := getPage[models.MediaItem](ctx, c, fmt.Sprintf("/%s/%d/similar", mediaType, id), pageParams(page))
	if err != nil {
		return nil, err
	}
	fillMediaType(out.Results, mediaType)
	return out, nil
}

func (c *tmdbClient) seasonDetails(ctx context.Context, tvID int64, season int) (*models.SeasonDetails, error) {
	if season < 0 {
		return nil, invalidInput("invalid season number %d", season)
	}
	var out models.SeasonDetails
	if err := c.get(ctx, fmt.Sprintf("/tv/%d/season/%d", tvID, season), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tmdbClient) personDetails(ctx context.Context, id int64) (*models.PersonDetails, error) {
	var out models.PersonDetails
	params := url.Values{"append_to_response": {"images,combined_credits"}}
	if err := c.get(ctx, fmt.Sprintf("/person/%d", id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tmdbClient) personCredits(ctx context.Context, id int64, mediaType MediaType) (*models.PersonCredits, error) {
	var out models.PersonCredits
	if err := c.get(ctx, fmt.Sprintf("/person/%d/%s_credits", id, mediaType), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tmdbClient) popularPeople(ctx context.Context, page int) (*models.Page[models.Person], error) {
	return getPage[models.Person](ctx, c, "/person/popular", pageParams(page))
}

// images lists the gallery for a title. TMDB filters images by the request
// language, so untagged and English images are included explicitly.
func (c *tmdbClient) images(ctx context.Context, mediaType MediaType, id int64) (*models.ImageSet, error) {
	include := "en,null"
	if base := languageBase(c.Language()); base != "" && base != "en" {
		include = base + "," + include
	}
	var out models.ImageSet
	params := url.Values{"include_image_language": {include}}
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/images", mediaType, id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type watchProviderResults struct {
	ID      int64                             `json:"id"`
	Results map[string]models.RegionProviders `json:"results"`
}

func (c *tmdbClient) watchProviders(ctx context.Context, mediaType MediaType, id int64) (*watchProviderResults, error) {
	var out watchProviderResults
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/watch/providers", mediaType, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *tmdbClient) fetchVideos(ctx context.Context, mediaType MediaType, id int64, lang string) (*models.VideoList, error) {
	var out models.VideoList
	params := url.Values{"language": {lang}}
	if err := c.get(ctx, fmt.Sprintf("/%s/%d/videos", mediaType, id), params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// videos returns official trailers in the current language, falling back to
// en-US ones. The list is empty when neither language has one. Failures are
// logged and produce an empty list so the caller can still render the title.
func (c *tmdbClient) videos(ctx context.Context, mediaType MediaType, id int64) *models.VideoList {
	empty := &models.VideoList{ID: id, Results: []models.Video{}}
	lang := c.Language()

	current, err := c.fetchVideos(ctx, mediaType, id, lang)
	if err != nil {
		log.Printf("[tmdb] videos fetch failed for %s %d: %v", mediaType, id, err)
		return empty
	}
	if official := officialTrailers(current.Results); len(official) > 0 {
		return &models.VideoList{ID: id, Results: official}
	}
	if lang == fallbackLanguage {
		return empty
	}

	english, err := c.fetchVideos(ctx, mediaType, id, fallbackLanguage)
	if err != nil {
		log.Printf("[tmdb] english videos fetch failed for %s %d: %v", mediaType, id, err)
		return empty
	}
	if official := officialTrailers(english.Results); len(official) > 0 {
		return &models.VideoList{ID: id, Results: official}
	}
	return empty
}

// trailerCandidates lists every video in the current language followed by
// the en-US ones not already present. Only the current-language fetch is
// fatal.
func (c *tmdbClient) trailerCandidates(ctx context.Context, mediaType MediaType, id int64) ([]models.Video, error) {
	lang := c.Language()
	current, err := c.fetchVideos(ctx, mediaType, id, lang)
	if err != nil {
		return nil, err
	}
	out := append([]models.Video{}, current.Results...)
	if lang == fallbackLanguage {
		return out, nil
	}

	english, err := c.fetchVideos(ctx, mediaType, id, fallbackLanguage)
	if err != nil {
		log.Printf("[tmdb] english videos fetch failed for %s %d: %v", mediaType, id, err)
		return out, nil
	}
	seen := make(map[string]struct{}, len(out))
	for _, v := range out {
		seen[v.ID] = struct{}{}
	}
	for _, v := range english.Results {
		if _, ok := seen[v.ID]; ok {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}
