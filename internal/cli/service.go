package cli

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"cinelist/internal/config"
	"cinelist/services/metadata"
	"cinelist/services/ratelimit"
)

// buildService turns settings into a catalog service. A configured Redis
// address must answer PING before it is used as the response cache.
func buildService(s *config.Settings) (*metadata.Service, error) {
	governor, err := ratelimit.New(ratelimit.Config{
		MaxRequests: s.RateLimit.MaxRequests,
		Window:      s.RateLimit.Window,
		KeyFunc:     ratelimit.PrefixKey("tmdb:"),
	})
	if err != nil {
		return nil, err
	}

	var rdb *redis.Client
	if s.Cache.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     s.Cache.RedisAddr,
			Password: s.Cache.RedisPassword,
			DB:       s.Cache.RedisDB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, fmt.Errorf("redis %s: %w", s.Cache.RedisAddr, err)
		}
		log.Printf("[cli] connected to redis at %s", s.Cache.RedisAddr)
	}

	return metadata.NewService(metadata.Config{
		Client: metadata.ClientConfig{
			APIKey:         s.TMDB.APIKey,
			BaseURL:        s.TMDB.BaseURL,
			Language:       s.TMDB.Language,
			MaxRetries:     s.TMDB.MaxRetries,
			InitialDelay:   s.TMDB.InitialDelay,
			RequestSpacing: s.TMDB.RequestSpacing,
			HTTPClient:     &http.Client{Timeout: s.TMDB.Timeout},
			Governor:       governor,
		},
		CacheDir:    s.Cache.Dir,
		CacheTTL:    s.Cache.TTL,
		Redis:       rdb,
		RedisPrefix: s.Cache.RedisPrefix,
	}), nil
}
