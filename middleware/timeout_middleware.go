package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"central/ipc"
)

// TimeOutMiddleware enforces a maximum duration for each dispatched
// request, backing the requirement that a handler must terminate and not
// block its router indefinitely (spec 4.C).
//
// Implementation:
//  1. Create a context with timeout (ctx.Done() fires when timeout expires)
//  2. Run the next handler in a goroutine, sending its result to a channel
//  3. Select between the result channel and ctx.Done()
//
// The handler goroutine is not cancelled — it keeps running in the
// background. The timeout only controls when the router's island gives up
// waiting; a handler that wants real cancellation must check ctx.Done().
func TimeOutMiddleware(timeout time.Duration) Middleware {
	return func(message string, next ipc.HandlerFunc) ipc.HandlerFunc {
		return func(ctx context.Context, data json.RawMessage) (ipc.Response, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			type result struct {
				resp ipc.Response
				err  error
			}
			done := make(chan result, 1)
			go func() {
				resp, err := next(ctx, data)
				done <- result{resp, err}
			}()

			select {
			case r := <-done:
				return r.resp, r.err
			case <-ctx.Done():
				return nil, fmt.Errorf("request timed out")
			}
		}
	}
}
