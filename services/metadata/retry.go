package metadata

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultMaxRetries   = 3
	defaultInitialDelay = time.Second
)

// httpDoer is satisfied by *http.Client and by test transports.
type httpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Code   int
	Status string
	URL    string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("GET %s failed: %s", e.URL, e.Status)
	}
	return fmt.Sprintf("GET %s failed: %s: %s", e.URL, e.Status, e.Body)
}

// fetchWithRetry performs req, retrying transport errors and non-2xx
// responses. It makes at most 1+maxRetries attempts and waits initialDelay,
// 2*initialDelay, 4*initialDelay... between them. The last error is returned
// once the budget is spent. Cancelling ctx stops the wait.
func fetchWithRetry(ctx context.Context, httpc httpDoer, req *http.Request, maxRetries int, initialDelay time.Duration, extra ...retry.Option) (*http.Response, error) {
	if maxRetries < 0 {
		maxRetries = 0
	}
	attempts := uint(maxRetries) + 1
	req = req.WithContext(ctx)
	target := redactURL(req.URL.String())

	opts := []retry.Option{
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(initialDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if n+1 < attempts {
				log.Printf("[tmdb] WARN: attempt %d/%d for %s failed: %v (retrying)", n+1, attempts, target, err)
			} else {
				log.Printf("[tmdb] max retries reached for %s, last error: %v", target, err)
			}
		}),
	}
	opts = append(opts, extra...)

	return retry.DoWithData(func() (*http.Response, error) {
		resp, err := httpc.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
			resp.Body.Close()
			return nil, &StatusError{
				Code:   resp.StatusCode,
				Status: resp.Status,
				URL:    target,
				Body:   strings.TrimSpace(string(body)),
			}
		}
		return resp, nil
	}, opts...)
}

// redactURL hides the api_key query parameter so URLs can be logged.
func redactURL(raw string) string {
	idx := strings.Index(raw, "api_key=")
	if idx < 0 {
		return raw
	}
	end := strings.IndexByte(raw[idx:], '&')
	if end < 0 {
		return raw[:idx] + "api_key=REDACTED"
	}
	return raw[:idx] + "api_key=REDACTED" + raw[idx+end:]
}
