package httpx

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// robotsCache fetches and caches robots.txt once per host. Lookup failures
// fail open; an unreachable robots.txt must not block every fetch.
type robotsCache struct {
	client    *http.Client
	userAgent string

	mu   sync.Mutex
	data map[string]*robotstxt.RobotsData
}

func newRobotsCache(userAgent string, timeout time.Duration) *robotsCache {
	return &robotsCache{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		data:      make(map[string]*robotstxt.RobotsData),
	}
}

func (r *robotsCache) allowed(ctx context.Context, u *url.URL) bool {
	data, err := r.dataFor(ctx, u)
	if err != nil || data == nil {
		return true
	}

	group := data.FindGroup(r.userAgent)
	if group == nil {
		group = data.FindGroup("*")
	}
	if group == nil {
		return true
	}

	path := u.Path
	if path == "" {
		path = "/"
	}
	return group.Test(path)
}

func (r *robotsCache) dataFor(ctx context.Context, u *url.URL) (*robotstxt.RobotsData, error) {
	host := u.Hostname()

	r.mu.Lock()
	if data, ok := r.data[host]; ok {
		r.mu.Unlock()
		return data, nil
	}
	r.mu.Unlock()

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", u.Scheme, u.Host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := robotstxt.FromResponse(resp)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.data[host] = data
	r.mu.Unlock()
	return data, nil
}
