package observability

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/octovision/pastewatch/internal/httpx"
)

const (
	ErrorNetwork   = "network"
	ErrorParsing   = "parsing"
	ErrorRateLimit = "rate_limit"
	ErrorBlocked   = "blocked"
	ErrorUnknown   = "unknown"
)

// ClassifyFetchError buckets a fetch failure for the error counters.
func ClassifyFetchError(err error) string {
	if err == nil {
		return ErrorUnknown
	}
	var fe *httpx.FetchError
	if errors.As(err, &fe) {
		switch {
		case fe.Status == http.StatusTooManyRequests:
			return ErrorRateLimit
		case fe.Status == 0 && strings.Contains(fe.Error(), "robots.txt"):
			return ErrorBlocked
		default:
			return ErrorNetwork
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorNetwork
	}
	return ErrorUnknown
}

// ClassifyMessage buckets an error that only survives as the message on an
// error-marked paste record.
func ClassifyMessage(msg string) string {
	lower := strings.ToLower(msg)
	switch {
	case lower == "":
		return ErrorUnknown
	case strings.Contains(lower, "robots.txt"):
		return ErrorBlocked
	case strings.Contains(lower, "status 429"):
		return ErrorRateLimit
	case strings.Contains(lower, "parse"):
		return ErrorParsing
	default:
		return ErrorNetwork
	}
}
