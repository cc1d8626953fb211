package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-salon/internal/health"
)

type stubChecker struct {
	processorErr error
}

func (s stubChecker) PingProcessor(_ context.Context, _ time.Duration) error {
	return s.processorErr
}

func TestLive(t *testing.T) {
	handler := health.Handler{}
	rr := httptest.NewRecorder()
	handler.Live(rr, httptest.NewRequest(http.MethodGet, "/health/live", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "ok", rr.Body.String())
}

func TestReadySuccess(t *testing.T) {
	handler := health.Handler{Checker: stubChecker{}, ProcessorTimeout: 50 * time.Millisecond}
	rr := httptest.NewRecorder()
	handler.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var status map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &status))
	require.Equal(t, "ok", status["processor"])
}

func TestReadyFailure(t *testing.T) {
	handler := health.Handler{Checker: stubChecker{processorErr: errors.New("key missing")}}
	rr := httptest.NewRecorder()
	handler.Ready(rr, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

type countingChecker struct {
	calls int
	err   error
}

func (c *countingChecker) PingProcessor(_ context.Context, _ time.Duration) error {
	c.calls++
	return c.err
}

func TestCachedCheckerReusesFreshResult(t *testing.T) {
	upstream := &countingChecker{err: errors.New("key missing")}
	cached := &health.CachedChecker{Checker: upstream, TTL: time.Minute}

	for i := 0; i < 5; i++ {
		err := cached.PingProcessor(context.Background(), time.Second)
		require.EqualError(t, err, "key missing")
	}
	require.Equal(t, 1, upstream.calls)
}

func TestCachedCheckerExpires(t *testing.T) {
	upstream := &countingChecker{}
	cached := &health.CachedChecker{Checker: upstream, TTL: time.Nanosecond}

	require.NoError(t, cached.PingProcessor(context.Background(), time.Second))
	time.Sleep(time.Millisecond)
	require.NoError(t, cached.PingProcessor(context.Background(), time.Second))
	require.Equal(t, 2, upstream.calls)
}

func TestReadinessAfterShutdown(t *testing.T) {
	handler := health.Handler{Checker: stubChecker{}}
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)

	health.SetReady(true)
	rr := httptest.NewRecorder()
	handler.Ready(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	health.SetReady(false)
	rr2 := httptest.NewRecorder()
	handler.Ready(rr2, req)
	require.Equal(t, http.StatusServiceUnavailable, rr2.Code)

	// reset for other tests
	health.SetReady(true)
}
