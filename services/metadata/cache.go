package metadata

import (
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

// responseCache stores decoded upstream payloads by key.
type responseCache interface {
	get(ctx context.Context, key string, v any) (bool, error)
	set(ctx context.Context, key string, v any) error
	clear(ctx context.Context) error
}

func cacheKey(parts ...string) string {
	h := sha1.Sum([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(h[:])
}

var errEmptyKey = errors.New("empty key")

type fileCache struct {
	fs  afero.Fs
	dir string
	ttl time.Duration
}

func newFileCache(fs afero.Fs, dir string, ttl time.Duration) *fileCache {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &fileCache{fs: fs, dir: dir, ttl: ttl}
}

// jitteredTTL staggers expiry between ttl and ttl+ttl/4, derived from the key
// hash so the same key always gets the same TTL.
func (c *fileCache) jitteredTTL(key string) time.Duration {
	spread := c.ttl / 4
	if spread <= 0 {
		return c.ttl
	}
	h := sha256.Sum256([]byte(key))
	n := binary.BigEndian.Uint64(h[:8])
	return c.ttl + time.Duration(n%uint64(spread))
}

func (c *fileCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}

func (c *fileCache) get(_ context.Context, key string, v any) (bool, error) {
	if key == "" {
		return false, errEmptyKey
	}
	path := c.path(key)
	fi, err := c.fs.Stat(path)
	if err != nil {
		return false, nil
	}
	if time.Since(fi.ModTime()) > c.jitteredTTL(key) {
		_ = c.fs.Remove(path)
		return false, nil
	}
	f, err := c.fs.Open(path)
	if err != nil {
		return false, nil
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(v); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *fileCache) set(_ context.Context, key string, v any) error {
	if key == "" {
		return errEmptyKey
	}
	if err := c.fs.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	path := c.path(key)
	tmp := path + ".tmp"
	f, err := c.fs.Create(tmp)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		_ = c.fs.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = c.fs.Remove(tmp)
		return err
	}
	return c.fs.Rename(tmp, path)
}

// clear removes every cached payload. Used when the API key or language
// changes so stale responses are not served.
func (c *fileCache) clear(_ context.Context) error {
	entries, err := afero.ReadDir(c.fs, c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		_ = c.fs.Remove(filepath.Join(c.dir, entry.Name()))
	}
	return nil
}

// noopCache is used when caching is disabled.
type noopCache struct{}

func (noopCache) get(context.Context, string, any) (bool, error) { return false, nil }
func (noopCache) set(context.Context, string, any) error         { return nil }
func (noopCache) clear(context.Context) error                    { return nil }
