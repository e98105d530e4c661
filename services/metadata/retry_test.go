package metadata

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGET(t *testing.T) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, "https://tmdb.test/3/movie/popular?api_key=secret&page=1", nil)
	require.NoError(t, err)
	return req
}

func TestFetchWithRetry_ExhaustsBudgetWithDoublingDelays(t *testing.T) {
	var calls atomic.Int32
	httpc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("connection refused")
	})}
	timer := &instantTimer{}

	_, err := fetchWithRetry(context.Background(), httpc, newGET(t), 3, 100*time.Millisecond, retry.WithTimer(timer))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.EqualValues(t, 4, calls.Load())
	assert.Equal(t, []time.Duration{100 * time.Millisecond, 200 * time.Millisecond, 400 * time.Millisecond}, timer.recorded())
}

func TestFetchWithRetry_FirstSuccessDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	httpc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return jsonResponse(http.StatusOK, `{"page":1}`), nil
	})}
	timer := &instantTimer{}

	resp, err := fetchWithRetry(context.Background(), httpc, newGET(t), 3, time.Second, retry.WithTimer(timer))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.JSONEq(t, `{"page":1}`, string(body))
	assert.EqualValues(t, 1, calls.Load())
	assert.Empty(t, timer.recorded())
}

func TestFetchWithRetry_RetriesNon2xxThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	httpc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		if calls.Add(1) < 3 {
			return jsonResponse(http.StatusServiceUnavailable, `{"status_message":"busy"}`), nil
		}
		return jsonResponse(http.StatusOK, `{}`), nil
	})}
	timer := &instantTimer{}

	resp, err := fetchWithRetry(context.Background(), httpc, newGET(t), 3, time.Second, retry.WithTimer(timer))
	require.NoError(t, err)
	resp.Body.Close()

	assert.EqualValues(t, 3, calls.Load())
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, timer.recorded())
}

func TestFetchWithRetry_ReturnsLastStatusError(t *testing.T) {
	httpc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"status_message":"missing"}`), nil
	})}

	_, err := fetchWithRetry(context.Background(), httpc, newGET(t), 1, time.Millisecond, retry.WithTimer(&instantTimer{}))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Contains(t, statusErr.Body, "missing")
	assert.NotContains(t, statusErr.URL, "secret")
}

func TestFetchWithRetry_ZeroRetriesMakesOneAttempt(t *testing.T) {
	var calls atomic.Int32
	httpc := &http.Client{Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
		calls.Add(1)
		return nil, errors.New("boom")
	})}

	_, err := fetchWithRetry(context.Background(), httpc, newGET(t), 0, time.Second, retry.WithTimer(&instantTimer{}))
	require.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestFetchWithRetry_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	httpc := &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return nil, req.Context().Err()
	})}

	_, err := fetchWithRetry(ctx, httpc, newGET(t), 3, time.Hour)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRedactURL(t *testing.T) {
	tests := map[string]string{
		"https://x/movie?api_key=abc&page=2": "https://x/movie?api_key=REDACTED&page=2",
		"https://x/movie?page=2&api_key=abc": "https://x/movie?page=2&api_key=REDACTED",
		"https://x/movie?page=2":             "https://x/movie?page=2",
	}
	for in, want := range tests {
		assert.Equal(t, want, redactURL(in))
	}
}
