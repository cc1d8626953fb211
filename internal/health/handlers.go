package health

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Checker represents dependencies that can be probed for readiness.
type Checker interface {
	PingProcessor(ctx context.Context, timeout time.Duration) error
}

// CachedChecker memoises the wrapped probe result for TTL. Load balancers
// poll readiness every few seconds; without the cache each poll would spend
// a live processor API call.
type CachedChecker struct {
	Checker Checker
	TTL     time.Duration

	mu      sync.Mutex
	probed  time.Time
	lastErr error
	primed  bool
}

// PingProcessor returns the cached result when it is still fresh, probing the
// wrapped checker otherwise.
func (c *CachedChecker) PingProcessor(ctx context.Context, timeout time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	ttl := c.TTL
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	if c.primed && time.Since(c.probed) < ttl {
		return c.lastErr
	}
	c.lastErr = c.Checker.PingProcessor(ctx, timeout)
	c.probed = time.Now()
	c.primed = true
	return c.lastErr
}

var ready atomic.Bool

func init() { ready.Store(true) }

// SetReady flips the readiness gate. Called with false during graceful
// shutdown so load balancers drain the instance before the listener closes.
func SetReady(v bool) { ready.Store(v) }

// Handler exposes HTTP handlers for health endpoints.
type Handler struct {
	Checker          Checker
	ProcessorTimeout time.Duration
}

// Live reports liveness status.
func (h Handler) Live(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Ready reports readiness based on the shutdown gate and dependency probes.
func (h Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !ready.Load() {
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
		return
	}
	if h.Checker == nil {
		http.Error(w, "dependencies unavailable", http.StatusServiceUnavailable)
		return
	}
	processorStatus := "ok"
	if err := h.Checker.PingProcessor(r.Context(), h.processorTimeout()); err != nil {
		processorStatus = err.Error()
	}
	status := map[string]string{
		"processor": processorStatus,
	}
	w.Header().Set("Content-Type", "application/json")
	if processorStatus != "ok" {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(status)
}

func (h Handler) processorTimeout() time.Duration {
	if h.ProcessorTimeout <= 0 {
		return 500 * time.Millisecond
	}
	return h.ProcessorTimeout
}
