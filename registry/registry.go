package registry

import (
	"context"
	"encoding/json"
	"time"

	"central/ipc"
	"central/middleware"
)

// requestTimeout bounds how long a registry handler may run, backing
// spec 4.C's "a handler must terminate; it must not block the router
// indefinitely" for the one router every other daemon depends on.
const requestTimeout = 2 * time.Second

// requestRate and requestBurst bound how many Register/Deregister/
// Require/Check calls the registry's single island will accept per
// second, so a runaway provider can't starve every other daemon waiting
// on the same registry.
const (
	requestRate  = 200
	requestBurst = 400
)

// registry holds the single in-memory capability table (spec 3, "Registry
// state"): name maps to the Unix-domain socket address currently serving
// it. There is exactly one of these per daemon, never persisted, never
// clustered — a restart starts empty and every provider re-registers.
//
// registry itself carries no lock: its handlers run one at a time inside
// the Router's own island goroutine, so plain map access is safe.
type registry struct {
	providers map[string]string
}

// NewRouter builds the registry service's router (spec 4.G): Register,
// Deregister, Require and Check, each keyed by their wire discriminator.
func NewRouter() *ipc.Router {
	r := &registry{providers: make(map[string]string)}

	handlers := map[string]ipc.HandlerFunc{
		"Register":   r.handleRegister,
		"Deregister": r.handleDeregister,
		"Require":    r.handleRequire,
		"Check":      r.handleCheck,
	}
	// Built once at startup, not per-request, per BX-D-mini-RPC/server/
	// server.go's "Build the middleware chain once at startup" — the
	// limiter in RateLimitMiddleware would otherwise always start full.
	chain := middleware.Chain(
		middleware.LoggingMiddleware(),
		middleware.TimeOutMiddleware(requestTimeout),
		middleware.RateLimitMiddleware(requestRate, requestBurst),
	)
	handlers = middleware.Wrap(handlers, chain)

	onError := func(rqsID uint32, err error) ipc.Response {
		return &ErrorResponse{ID: rqsID, Description: err.Error()}
	}
	return ipc.NewRouter(handlers, onError)
}

func (r *registry) handleRegister(_ context.Context, data json.RawMessage) (ipc.Response, error) {
	var req RegisterRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	// Last-write-wins (spec 3): a second Register for the same name simply
	// overwrites the previous address, no error, no history kept.
	r.providers[req.Name] = req.Address
	return &SuccessResponse{ID: req.ID}, nil
}

func (r *registry) handleDeregister(_ context.Context, data json.RawMessage) (ipc.Response, error) {
	var req DeregisterRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	// No-op if absent — deregistering something never registered, or
	// already deregistered, is not an error (spec 4.G).
	delete(r.providers, req.Name)
	return &SuccessResponse{ID: req.ID}, nil
}

func (r *registry) handleRequire(_ context.Context, data json.RawMessage) (ipc.Response, error) {
	var req RequireRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	addr, ok := r.providers[req.Name]
	if !ok {
		return &ErrorResponse{ID: req.ID, Description: "Capability Not Found"}, nil
	}
	return &CapabilityResponse{ID: req.ID, Address: addr}, nil
}

func (r *registry) handleCheck(_ context.Context, data json.RawMessage) (ipc.Response, error) {
	var req CheckRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, err
	}
	return &AliveResponse{ID: req.ID}, nil
}
