package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// RateLimiter limits requests per client IP across the whole API
func RateLimiter(requestsPerSecond int) func(http.Handler) http.Handler {
	return httprate.LimitByIP(requestsPerSecond, time.Second)
}

// AnalysisRateLimiter limits the analysis and report endpoints per client
// IP. These fan out to metered upstream APIs, so they get a much tighter
// per-minute budget than the rest of the surface.
func AnalysisRateLimiter(requestsPerMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(requestsPerMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
	)
}
