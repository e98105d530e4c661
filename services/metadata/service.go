package metadata

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mozillazg/go-unidecode"
	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"cinelist/models"
	"cinelist/services/ratelimit"
)

const (
	defaultCacheTTL = 6 * time.Hour
	randomPageLimit = 20
)

// ErrNoResults is returned when a lookup succeeds but has nothing to offer.
var ErrNoResults = errors.New("no results")

// Config wires the catalog service. The response cache is chosen in order:
// Redis when a client is given, the file cache when CacheDir is set, none
// otherwise.
type Config struct {
	Client ClientConfig

	CacheDir string
	CacheTTL time.Duration
	CacheFs  afero.Fs

	// Redis is owned by the service from here on and closed by Close.
	Redis       *redis.Client
	RedisPrefix string
}

// Service is the catalog facade used by the HTTP handlers and the CLI.
type Service struct {
	tmdb  *tmdbClient
	cache responseCache

	randMu sync.Mutex
	intn   func(n int) int
}

func NewService(cfg Config) *Service {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	var cache responseCache = noopCache{}
	switch {
	case cfg.Redis != nil:
		cache = newRedisCache(cfg.Redis, cfg.RedisPrefix, ttl)
		log.Printf("[metadata] using redis response cache ttl=%s", ttl)
	case cfg.CacheDir != "":
		dir := filepath.Join(cfg.CacheDir, "metadata")
		cache = newFileCache(cfg.CacheFs, dir, ttl)
		log.Printf("[metadata] using file response cache dir=%s ttl=%s", dir, ttl)
	default:
		log.Printf("[metadata] response cache disabled")
	}

	return &Service{
		tmdb:  newTMDBClient(cfg.Client),
		cache: cache,
		intn:  rand.IntN,
	}
}

// Language reports the language sent with TMDB requests.
// Close releases the response cache connection, if it holds one.
func (s *Service) Close() error {
	if c, ok := s.cache.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Service) Language() string { return s.tmdb.Language() }

// SetLanguage switches the request language and returns the normalized tag.
// Cached entries are keyed by language, so nothing needs clearing.
func (s *Service) SetLanguage(lang string) (string, error) {
	if strings.TrimSpace(lang) == "" {
		return "", invalidInput("language required")
	}
	normalized := s.tmdb.SetLanguage(lang)
	log.Printf("[metadata] api language set to %s", normalized)
	return normalized, nil
}

// ClearCache removes all cached responses.
func (s *Service) ClearCache(ctx context.Context) error {
	if err := s.cache.clear(ctx); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}
	log.Printf("[metadata] cleared response cache")
	return nil
}

// RateLimitStatus reports the governor's record for an upstream endpoint
// path such as "/movie/popular".
func (s *Service) RateLimitStatus(endpoint string) (ratelimit.Status, bool) {
	return s.tmdb.governor.Status(endpoint)
}

// RateLimitPolicy reports the governor's ceiling and window.
func (s *Service) RateLimitPolicy() (int, time.Duration) {
	return s.tmdb.governor.MaxRequests(), s.tmdb.governor.Window()
}

// ResetRateLimit forgets the record for endpoint, or every record when
// endpoint is empty.
func (s *Service) ResetRateLimit(endpoint string) {
	if strings.TrimSpace(endpoint) == "" {
		s.tmdb.governor.ResetAll()
		log.Printf("[metadata] reset all rate limit records")
		return
	}
	s.tmdb.governor.Reset(endpoint)
	log.Printf("[metadata] reset rate limit record endpoint=%s", endpoint)
}

// cached serves key from the response cache or runs fetch and stores the
// result. Cache failures only get logged.
func cached[T any](ctx context.Context, s *Service, key string, fetch func() (T, error)) (T, error) {
	var hit T
	if ok, err := s.cache.get(ctx, key, &hit); err != nil {
		log.Printf("[metadata] cache read failed: %v", err)
	} else if ok {
		return hit, nil
	}

	value, err := fetch()
	if err != nil {
		return value, err
	}
	if err := s.cache.set(ctx, key, value); err != nil {
		log.Printf("[metadata] cache write failed: %v", err)
	}
	return value, nil
}

func (s *Service) key(parts ...string) string {
	return cacheKey(append([]string{"tmdb", s.Language()}, parts...)...)
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }

func requireID(id int64, what string) error {
	if id <= 0 {
		return invalidInput("%s id required", what)
	}
	return nil
}

func requireTitleType(mediaType MediaType) error {
	if mediaType != MediaMovie && mediaType != MediaTV {
		return invalidInput("unsupported media type %q", mediaType)
	}
	return nil
}

// foldQuery normalizes a search query for cache keys so "Amélie" and
// "amelie  " share an entry.
func foldQuery(q string) string {
	return strings.ToLower(strings.Join(strings.Fields(unidecode.Unidecode(q)), " "))
}

func (s *Service) Trending(ctx context.Context, mediaType MediaType, window string, page int) (*models.Page[models.MediaItem], error) {
	if mediaType == "" {
		mediaType = MediaAll
	}
	if window == "" {
		window = "week"
	}
	return cached(ctx, s, s.key("trending", string(mediaType), window, strconv.Itoa(normalizePage(page))), func() (*models.Page[models.MediaItem], error) {
		return s.tmdb.trending(ctx, mediaType, window, page)
	})
}

// MovieList serves popular, top_rated, now_playing and upcoming.
func (s *Service) MovieList(ctx context.Context, list string, page int) (*models.Page[models.Movie], error) {
	return cached(ctx, s, s.key("movie", list, strconv.Itoa(normalizePage(page))), func() (*models.Page[models.Movie], error) {
		return s.tmdb.movieList(ctx, list, page)
	})
}

// TVList serves popular, top_rated and on_the_air.
func (s *Service) TVList(ctx context.Context, list string, page int) (*models.Page[models.TVShow], error) {
	return cached(ctx, s, s.key("tv", list, strconv.Itoa(normalizePage(page))), func() (*models.Page[models.TVShow], error) {
		return s.tmdb.tvList(ctx, list, page)
	})
}

func (s *Service) Search(ctx context.Context, kind MediaType, query string, page int) (*models.Page[models.MediaItem], error) {
	if kind == "" {
		kind = MediaAll
	}
	folded := foldQuery(query)
	if folded == "" {
		return nil, invalidInput("empty search query")
	}
	return cached(ctx, s, s.key("search", string(kind), folded, strconv.Itoa(normalizePage(page))), func() (*models.Page[models.MediaItem], error) {
		return s.tmdb.search(ctx, kind, query, page)
	})
}

func (s *Service) Discover(ctx context.Context, mediaType MediaType, q models.DiscoverQuery) (*models.Page[models.MediaItem], error) {
	if err := requireTitleType(mediaType); err != nil {
		return nil, err
	}
	params := discoverParams(mediaType, q)
	return cached(ctx, s, s.key("discover", string(mediaType), params.Encode()), func() (*models.Page[models.MediaItem], error) {
		return s.tmdb.discover(ctx, mediaType, q)
	})
}

func (s *Service) Genres(ctx context.Context, mediaType MediaType) (*models.GenreList, error) {
	if err := requireTitleType(mediaType); err != nil {
		return nil, err
	}
	return cached(ctx, s, s.key("genres", string(mediaType)), func() (*models.GenreList, error) {
		return s.tmdb.genres(ctx, mediaType)
	})
}

func (s *Service) MovieDetails(ctx context.Context, id int64) (*models.MovieDetails, error) {
	if err := requireID(id, "movie"); err != nil {
		return nil, err
	}
	return cached(ctx, s, s.key("movie", "details", itoa(id)), func() (*models.MovieDetails, error) {
		return s.tmdb.movieDetails(ctx, id)
	})
}

func (s *Service) TVDetails(ctx context.Context, id int64) (*models.TVDetails, error) {
	if err := requireID(id, "tv"); err != nil {
		return nil, err
	}
	return cached(ctx, s, s.key("tv", "details", itoa(id)), func() (*models.TVDetails, error) {
		return s.tmdb.tvDetails(ctx, id)
	})
}

func (s *Service) Credits(ctx context.Context, mediaType MediaType, id int64) (*models.Credits, error) {
	if err := requireTitleType(mediaType); err != nil {
		return nil, err
	}
	if err := requireID(id, string(mediaType)); err != nil {
		return nil, err
	}
	return cached(ctx, s, s.key("credits", string(mediaType), itoa(id)), func() (*models.Credits, error) {
		return s.tmdb.credits(ctx, mediaType, id)
	})
}

func (s *Service) Similar(ctx context.Context, mediaType MediaType, id int64, page int) (*models.Page[models.MediaItem], error) {
	if err := requireTitleType(mediaType); err != nil {
		return nil, err
	}
	if err := requireID(id, string(mediaType)); err != nil {
		return nil, err
	}
	return cached(ctx, s, s.key("similar", string(mediaType), itoa(id), strconv.Itoa(normalizePage(page))), func() (*models.Page[models.MediaItem], error) {
		return s.tmdb.similar(ctx, mediaType, id, page)
	})
}

func (s *Service) Season(ctx context.Context, tvID int64, season int) (*models.SeasonDetails, error) {
	if err := requireID(tvID, "tv"); err != nil {
		return nil, err
	}
	return cached(ctx, s, s.key("season", itoa(tvID), strconv.Itoa(season)), func() (*models.SeasonDetails, error) {
		return s.tmdb.seasonDetails(ctx, tvID, season)
	})
}

func (s *Service) PersonDetails(ctx context.Context, id int64) (*models.PersonDetails, error) {
	if err := requireID(id, "person"); err != nil {
		return nil, err
	}
	return cached(ctx, s, s.key("person", itoa(id)), func() (*models.PersonDetails, error) {
		return s.tmdb.personDetails(ctx, id)
	})
}

// PersonCredits lists a person's movie or TV credits.
func (s *Service) PersonCredits(ctx context.Context, id int64, mediaType MediaType) (*models.PersonCredits, error) {
	if err := requireTitleType(mediaType); err != nil {
		return nil, err
	}
	if err := requireID(id, "person"); err != nil {
		return nil, err
	}
	return cached(ctx, s, s.key("person", itoa(id), string(mediaType)+"_credits"), func() (*models.PersonCredits, error) {
		return s.tmdb.personCredits(ctx, id, mediaType)
	})
}

func (s *Service) PopularPeople(ctx context.Context, page int) (*models.Page[models.Person], error) {
	return cached(ctx, s, s.key("person", "popular", strconv.Itoa(normalizePage(page))), func() (*models.Page[models.Person], error) {
		return s.tmdb.popularPeople(ctx, page)
	})
}

// Images returns the poster, backdrop and logo gallery for a title.
func (s *Service) Images(ctx context.Context, mediaType MediaType, id int64) (*models.ImageSet, error) {
	if err := requireTitleType(mediaType); err != nil {
		return nil, err
	}
	if err := requireID(id, string(mediaType)); err != nil {
		return nil, err
	}
	return cached(ctx, s, s.key(string(mediaType), itoa(id), "images"), func() (*models.ImageSet, error) {
		return s.tmdb.images(ctx, mediaType, id)
	})
}

// WatchProviders reports where a title streams, rents or sells in region.
// An empty region uses the region of the current language.
func (s *Service) WatchProviders(ctx context.Context, mediaType MediaType, id int64, region string) (*models.WatchProviders, error) {
	if err := requireTitleType(mediaType); err != nil {
		return nil, err
	}
	if err := requireID(id, string(mediaType)); err != nil {
		return nil, err
	}
	region = strings.ToUpper(strings.TrimSpace(region))
	if region == "" {
		region = languageRegion(s.Language())
	}
	if region == "" {
		return nil, invalidInput("region required")
	}

	all, err := cached(ctx, s, cacheKey("tmdb", string(mediaType), itoa(id), "providers"), func() (*watchProviderResults, error) {
		return s.tmdb.watchProviders(ctx, mediaType, id)
	})
	if err != nil {
		return nil, err
	}
	out := &models.WatchProviders{ID: id, Region: region}
	if providers, ok := all.Results[region]; ok {
		out.Available = true
		out.RegionProviders = providers
	}
	return out, nil
}

// Videos returns official trailers with the en-US fallback. It never fails;
// upstream errors yield an empty list.
func (s *Service) Videos(ctx context.Context, mediaType MediaType, id int64) (*models.VideoList, error) {
	if err := requireTitleType(mediaType); err != nil {
		return nil, err
	}
	if err := requireID(id, string(mediaType)); err != nil {
		return nil, err
	}
	return s.tmdb.videos(ctx, mediaType, id), nil
}

// Trailer picks the trailer to show for a title. The current language is
// preferred with English as the fallback.
func (s *Service) Trailer(ctx context.Context, mediaType MediaType, id int64, fallbackToAny bool) (*models.TrailerResponse, error) {
	if err := requireTitleType(mediaType); err != nil {
		return nil, err
	}
	if err := requireID(id, string(mediaType)); err != nil {
		return nil, err
	}

	candidates, err := s.tmdb.trailerCandidates(ctx, mediaType, id)
	if err != nil {
		log.Printf("[metadata] trailer lookup failed type=%s id=%d: %v", mediaType, id, err)
		return nil, err
	}

	resp := &models.TrailerResponse{MediaType: string(mediaType), ID: id}
	best := SelectBestTrailer(candidates, preferredLanguages(s.Language()), fallbackToAny)
	if best == nil {
		log.Printf("[metadata] no trailer type=%s id=%d candidates=%d", mediaType, id, len(candidates))
		return resp, nil
	}
	picked := *best
	resp.Available = true
	resp.Trailer = &picked
	resp.WatchURL = picked.WatchURL()
	resp.EmbedURL = picked.EmbedURL()
	return resp, nil
}

// Home fetches the home page sections concurrently. Sections that fail are
// left empty and reported in Errors; only a total failure is an error.
func (s *Service) Home(ctx context.Context) (*models.HomeBundle, error) {
	bundle := &models.HomeBundle{
		Trending:       []models.MediaItem{},
		PopularMovies:  []models.Movie{},
		PopularTV:      []models.TVShow{},
		TopRatedMovies: []models.Movie{},
	}

	var mu sync.Mutex
	fail := func(section string, err error) error {
		mu.Lock()
		if bundle.Errors == nil {
			bundle.Errors = make(map[string]string)
		}
		bundle.Errors[section] = err.Error()
		mu.Unlock()
		log.Printf("[metadata] home section %s failed: %v", section, err)
		return fmt.Errorf("%s: %w", section, err)
	}

	p := pool.New().WithErrors().WithContext(ctx)
	p.Go(func(ctx context.Context) error {
		page, err := s.Trending(ctx, MediaAll, "week", 1)
		if err != nil {
			return fail("trending", err)
		}
		bundle.Trending = page.Results
		return nil
	})
	p.Go(func(ctx context.Context) error {
		page, err := s.MovieList(ctx, "popular", 1)
		if err != nil {
			return fail("popularMovies", err)
		}
		bundle.PopularMovies = page.Results
		return nil
	})
	p.Go(func(ctx context.Context) error {
		page, err := s.TVList(ctx, "popular", 1)
		if err != nil {
			return fail("popularTv", err)
		}
		bundle.PopularTV = page.Results
		return nil
	})
	p.Go(func(ctx context.Context) error {
		page, err := s.MovieList(ctx, "top_rated", 1)
		if err != nil {
			return fail("topRatedMovies", err)
		}
		bundle.TopRatedMovies = page.Results
		return nil
	})

	err := p.Wait()
	if err != nil && len(bundle.Errors) == 4 {
		return nil, err
	}
	return bundle, nil
}

// RandomPick returns one title from a random page of popular titles, or of
// well-rated titles in genre when genre is set.
func (s *Service) RandomPick(ctx context.Context, mediaType MediaType, genre int64) (*models.MediaItem, error) {
	if err := requireTitleType(mediaType); err != nil {
		return nil, err
	}
	page := s.randomIndex(randomPageLimit) + 1

	var items []models.MediaItem
	if genre > 0 {
		result, err := s.Discover(ctx, mediaType, models.DiscoverQuery{
			Page:           page,
			Genre:          genre,
			SortBy:         "popularity.desc",
			VoteAverageGTE: 6.0,
		})
		if err != nil {
			return nil, err
		}
		items = result.Results
	} else if mediaType == MediaMovie {
		result, err := s.MovieList(ctx, "popular", page)
		if err != nil {
			return nil, err
		}
		items = moviesToItems(result.Results)
	} else {
		result, err := s.TVList(ctx, "popular", page)
		if err != nil {
			return nil, err
		}
		items = showsToItems(result.Results)
	}

	if len(items) == 0 {
		return nil, ErrNoResults
	}
	pick := items[s.randomIndex(len(items))]
	return &pick, nil
}

func (s *Service) randomIndex(n int) int {
	s.randMu.Lock()
	defer s.randMu.Unlock()
	return s.intn(n)
}

func moviesToItems(movies []models.Movie) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(movies))
	for _, m := range movies {
		out = append(out, models.MediaItem{
			ID:               m.ID,
			MediaType:        string(MediaMovie),
			Title:            m.Title,
			Overview:         m.Overview,
			PosterPath:       m.PosterPath,
			BackdropPath:     m.BackdropPath,
			ReleaseDate:      m.ReleaseDate,
			VoteAverage:      m.VoteAverage,
			VoteCount:        m.VoteCount,
			Popularity:       m.Popularity,
			Adult:            m.Adult,
			GenreIDs:         m.GenreIDs,
			OriginalLanguage: m.OriginalLanguage,
		})
	}
	return out
}

func showsToItems(shows []models.TVShow) []models.MediaItem {
	out := make([]models.MediaItem, 0, len(shows))
	for _, sh := range shows {
		out = append(out, models.MediaItem{
			ID:               sh.ID,
			MediaType:        string(MediaTV),
			Name:             sh.Name,
			Overview:         sh.Overview,
			PosterPath:       sh.PosterPath,
			BackdropPath:     sh.BackdropPath,
			FirstAirDate:     sh.FirstAirDate,
			VoteAverage:      sh.VoteAverage,
			VoteCount:        sh.VoteCount,
			Popularity:       sh.Popularity,
			Adult:            sh.Adult,
			GenreIDs:         sh.GenreIDs,
			OriginalLanguage: sh.OriginalLanguage,
		})
	}
	return out
}
