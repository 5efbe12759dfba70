// Package middleware implements the onion model middleware chain for
// central's routers.
//
// Middleware wraps a router's per-message business handler to add
// cross-cutting concerns (logging, timeout, rate limiting) without
// modifying the handler itself.
//
// Onion model execution order:
//
//	Chain(A, B, C)(name, handler)  →  A(B(C(handler)))
//
//	Request:   A.before → B.before → C.before → handler
//	Response:  handler → C.after → B.after → A.after
//
// Each middleware can:
//   - Do pre-processing (before calling next)
//   - Call next(ctx, data) to pass to the next layer
//   - Do post-processing (after next returns)
//   - Short-circuit by returning early without calling next (e.g., rate limiting)
package middleware

import "central/ipc"

// Middleware wraps a named handler with a new handler. The message name is
// threaded through explicitly because, unlike the teacher's single RPC
// method per call, a router dispatches many message variants through one
// handler table (spec 4.C) and middleware like logging wants to know which.
type Middleware func(message string, next ipc.HandlerFunc) ipc.HandlerFunc

// Chain composes multiple middlewares into one. The first middleware in
// the list is the outermost layer (executed first on request, last on
// response).
func Chain(middlewares ...Middleware) Middleware {
	return func(message string, next ipc.HandlerFunc) ipc.HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](message, next)
		}
		return next
	}
}

// Wrap applies mw to every handler in a router's handler table, returning a
// new table suitable for ipc.NewRouter.
func Wrap(handlers map[string]ipc.HandlerFunc, mw Middleware) map[string]ipc.HandlerFunc {
	wrapped := make(map[string]ipc.HandlerFunc, len(handlers))
	for name, h := range handlers {
		wrapped[name] = mw(name, h)
	}
	return wrapped
}
