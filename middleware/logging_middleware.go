package middleware

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"central/ipc"
)

// LoggingMiddleware records the message variant, duration, and any error
// for each dispatched request. It captures the start time before calling
// next, and logs the elapsed time after next returns.
//
// Example output:
//
//	message: Register, Duration: 42µs
//	Error: rate limit exceeded
func LoggingMiddleware() Middleware {
	return func(message string, next ipc.HandlerFunc) ipc.HandlerFunc {
		return func(ctx context.Context, data json.RawMessage) (ipc.Response, error) {
			start := time.Now()

			resp, err := next(ctx, data)

			duration := time.Since(start)
			log.Printf("message: %s, Duration: %s", message, duration)
			if err != nil {
				log.Printf("Error: %s", err)
			}
			return resp, err
		}
	}
}
