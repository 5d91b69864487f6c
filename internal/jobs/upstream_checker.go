package jobs

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"pathways/internal/metrics"
)

// UpstreamChecker periodically probes the recommendation backend.
type UpstreamChecker struct {
	url      string
	interval time.Duration
	client   *http.Client

	mu        sync.RWMutex
	healthy   bool
	lastError string
	checkedAt time.Time
}

// NewUpstreamChecker creates a new checker for the given health URL.
func NewUpstreamChecker(url string, interval time.Duration) *UpstreamChecker {
	return &UpstreamChecker{
		url:      url,
		interval: interval,
		client: &http.Client{
			Timeout: 5 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
	}
}

// Start begins the background check loop.
func (u *UpstreamChecker) Start(ctx context.Context) {
	log.Printf("Upstream checker started (url: %s, interval: %v)", u.url, u.interval)

	// Run immediately on start
	u.Check(ctx)

	ticker := time.NewTicker(u.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Upstream checker stopped")
			return
		case <-ticker.C:
			u.Check(ctx)
		}
	}
}

// Check probes the backend once and records the result.
func (u *UpstreamChecker) Check(ctx context.Context) bool {
	errMsg := u.probe(ctx)
	healthy := errMsg == ""

	u.mu.Lock()
	wasHealthy := u.healthy
	u.healthy = healthy
	u.lastError = errMsg
	u.checkedAt = time.Now()
	u.mu.Unlock()

	metrics.SetUpstreamUp(healthy)
	if wasHealthy && !healthy {
		log.Printf("Upstream checker: backend unhealthy: %s", errMsg)
	} else if !wasHealthy && healthy {
		log.Println("Upstream checker: backend healthy")
	}

	return healthy
}

// Status returns the last probe result.
func (u *UpstreamChecker) Status() (healthy bool, lastError string, checkedAt time.Time) {
	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.healthy, u.lastError, u.checkedAt
}

// Ready returns the last probe failure as an error, for readiness probes.
func (u *UpstreamChecker) Ready(ctx context.Context) error {
	healthy, lastError, checkedAt := u.Status()
	if checkedAt.IsZero() {
		return errors.New("backend not checked yet")
	}
	if !healthy {
		return errors.New(lastError)
	}
	return nil
}

// probe performs a GET request; any response below 500 means the backend is up.
func (u *UpstreamChecker) probe(ctx context.Context) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.url, nil)
	if err != nil {
		return "invalid URL: " + err.Error()
	}

	req.Header.Set("User-Agent", "Pathways-HealthChecker/1.0")

	resp, err := u.client.Do(req)
	if err != nil {
		return "connection failed: " + err.Error()
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return "HTTP " + resp.Status
	}
	return ""
}
