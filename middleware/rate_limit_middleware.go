package middleware

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/time/rate"

	"central/ipc"
)

// RateLimitMiddleware creates a rate limiter using the token bucket algorithm.
//
// Token bucket: tokens are added at rate r per second, up to a burst size.
// Each request consumes one token. If the bucket is empty, the request is
// rejected. Unlike a leaky bucket (constant drain rate), token bucket
// allows short bursts of traffic — more suitable for a session's request
// pattern than a constant drain rate.
//
// The limiter is created in the OUTER closure, once per wrapped handler
// table, not per request — a fresh limiter per request would always be
// full and defeat the purpose.
//
// Parameters:
//   - r: token refill rate (tokens per second)
//   - burst: maximum bucket size (allows this many requests in a burst)
func RateLimitMiddleware(r float64, burst int) Middleware {
	limiter := rate.NewLimiter(rate.Limit(r), burst)
	return func(message string, next ipc.HandlerFunc) ipc.HandlerFunc {
		return func(ctx context.Context, data json.RawMessage) (ipc.Response, error) {
			if !limiter.Allow() {
				return nil, fmt.Errorf("rate limit exceeded")
			}
			return next(ctx, data)
		}
	}
}
