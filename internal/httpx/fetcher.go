// Package httpx fetches paste bodies politely: per-host rate limits, a fixed
// minimum interval between successive fetches, bounded retries, and
// robots.txt checks.
package httpx

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gocolly/colly/v2"
	"golang.org/x/time/rate"
)

const (
	requestTimeout = 15 * time.Second
	maxAttempts    = 3

	// Paste hosts are quick to ban aggressive clients; half a second between
	// fetches to the same host is the floor regardless of limiter burst.
	defaultPacing = 500 * time.Millisecond
)

// FetchError carries the last HTTP status alongside the underlying error so
// callers can classify failures (rate limited vs. plain network).
type FetchError struct {
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch failed (status %d)", e.Status)
	}
	return fmt.Sprintf("fetch failed (status %d): %v", e.Status, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher retrieves URLs through per-request colly collectors while owning
// all pacing decisions itself.
type Fetcher struct {
	userAgent string
	timeout   time.Duration
	pacing    time.Duration
	robots    *robotsCache

	mu    sync.Mutex
	hosts map[string]*hostState
}

type hostState struct {
	limiter *rate.Limiter

	mu          sync.Mutex
	nextAllowed time.Time
}

func NewFetcher(userAgent string) *Fetcher {
	if userAgent == "" {
		userAgent = "pastewatch-bot/1.0"
	}
	return &Fetcher{
		userAgent: userAgent,
		timeout:   requestTimeout,
		pacing:    defaultPacing,
		robots:    newRobotsCache(userAgent, requestTimeout),
		hosts:     make(map[string]*hostState),
	}
}

// SetPacing overrides the minimum interval between fetches to the same host.
func (f *Fetcher) SetPacing(d time.Duration) {
	if d >= 0 {
		f.pacing = d
	}
}

// FetchBytes retrieves rawURL and returns the response body and status.
// Retries with exponential backoff on 429 and 5xx responses.
func (f *Fetcher) FetchBytes(ctx context.Context, rawURL string) ([]byte, int, error) {
	target, err := normalizeURL(rawURL)
	if err != nil {
		return nil, 0, err
	}
	if !f.robots.allowed(ctx, target) {
		return nil, 0, &FetchError{Err: fmt.Errorf("blocked by robots.txt: %s", target)}
	}

	host := hostKey(target)
	var body []byte
	var status int
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		if err := f.waitForHost(ctx, host); err != nil {
			return nil, 0, err
		}

		body, status, lastErr = f.fetchOnce(ctx, target.String())
		f.markFetched(host, f.pacing)
		if lastErr == nil {
			return body, status, nil
		}
		if !retryableStatus(status) {
			break
		}
		f.markFetched(host, backoffDelay(attempt))
	}

	return nil, status, &FetchError{Status: status, Err: lastErr}
}

func (f *Fetcher) fetchOnce(ctx context.Context, target string) ([]byte, int, error) {
	c := colly.NewCollector(colly.UserAgent(f.userAgent))
	// robots.txt is enforced by our own cache; colly re-fetching it per
	// collector would defeat the pacing policy.
	c.IgnoreRobotsTxt = true
	c.SetRequestTimeout(f.timeout)

	var body []byte
	status := 0
	var reqErr error

	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
		}
	})
	c.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		body = append([]byte(nil), r.Body...)
	})
	c.OnError(func(r *colly.Response, err error) {
		if r != nil {
			status = r.StatusCode
		}
		reqErr = err
	})

	if err := c.Visit(target); err != nil {
		return nil, status, err
	}
	if ctx.Err() != nil {
		return nil, status, ctx.Err()
	}
	if reqErr != nil {
		return nil, status, reqErr
	}
	if status >= 400 {
		return nil, status, fmt.Errorf("status %d", status)
	}
	if status == 0 {
		status = http.StatusOK
	}
	return body, status, nil
}

func (f *Fetcher) waitForHost(ctx context.Context, host string) error {
	state := f.stateFor(host)

	for {
		state.mu.Lock()
		next := state.nextAllowed
		state.mu.Unlock()

		now := time.Now()
		if !now.Before(next) {
			break
		}
		if err := sleepContext(ctx, next.Sub(now)); err != nil {
			return err
		}
	}
	return state.limiter.Wait(ctx)
}

func (f *Fetcher) markFetched(host string, delay time.Duration) {
	if delay <= 0 {
		return
	}
	state := f.stateFor(host)
	next := time.Now().Add(delay)

	state.mu.Lock()
	if next.After(state.nextAllowed) {
		state.nextAllowed = next
	}
	state.mu.Unlock()
}

func (f *Fetcher) stateFor(host string) *hostState {
	f.mu.Lock()
	defer f.mu.Unlock()
	if state, ok := f.hosts[host]; ok {
		return state
	}
	state := &hostState{limiter: rate.NewLimiter(rate.Every(time.Second), 2)}
	f.hosts[host] = state
	return state
}

func backoffDelay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	return time.Duration(500*(1<<attempt)) * time.Millisecond
}

func retryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || (status >= 500 && status <= 599)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func normalizeURL(rawURL string) (*url.URL, error) {
	if rawURL == "" {
		return nil, errors.New("empty url")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	if u.Host == "" {
		return nil, fmt.Errorf("url missing host: %s", rawURL)
	}
	return u, nil
}

func hostKey(u *url.URL) string {
	host := strings.ToLower(u.Hostname())
	return strings.TrimPrefix(host, "www.")
}
