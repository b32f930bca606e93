package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
)

// NewRateLimiter returns a middleware that allows at most perMinute requests
// per client IP in a sliding one-minute window. Excess requests are passed to
// onLimit, which should write a 429 response.
func NewRateLimiter(perMinute int, onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	opts := []httprate.Option{httprate.WithKeyFuncs(httprate.KeyByIP)}
	if onLimit != nil {
		opts = append(opts, httprate.WithLimitHandler(onLimit))
	}
	return httprate.Limit(perMinute, time.Minute, opts...)
}
