package tasks

import (
	"context"
	"encoding/json"
	"time"

	"central/ipc"
	"central/middleware"
)

// requestTimeout backs spec 4.C's "a handler must terminate" for every
// handler this service exposes.
const requestTimeout = 2 * time.Second

// requestRate and requestBurst throttle each capability's inbound
// requests, matching the original's intent that a misbehaving client
// (e.g. task_provider.rs's create-loop) shouldn't be able to flood the
// store's single-threaded island.
const (
	requestRate  = 100
	requestBurst = 200
)

func onError(rqsID uint32, err error) ipc.Response {
	return &ErrorResponse{ID: rqsID, Description: err.Error()}
}

// wrapHandlers applies the logging/timeout/rate-limit chain once, at
// router construction time, per BX-D-mini-RPC/server/server.go's "Build
// the middleware chain once at startup (not per-request)".
func wrapHandlers(handlers map[string]ipc.HandlerFunc) map[string]ipc.HandlerFunc {
	chain := middleware.Chain(
		middleware.LoggingMiddleware(),
		middleware.TimeOutMiddleware(requestTimeout),
		middleware.RateLimitMiddleware(requestRate, requestBurst),
	)
	return middleware.Wrap(handlers, chain)
}

// NewCommandRouter builds the TaskCommand capability's router: Create and
// Complete, operating on the given store. Grounded on the original's
// `router! { TaskStore; [ TaskCommand [ Create ... Complete ... ] ] }`.
func NewCommandRouter(store *Store) *ipc.Router {
	handlers := map[string]ipc.HandlerFunc{
		"Create":   createHandler(store),
		"Complete": completeHandler(store),
	}
	return ipc.NewRouter(wrapHandlers(handlers), onError)
}

// NewQueryRouter builds the TaskQuery capability's router: Get and GetOne.
func NewQueryRouter(store *Store) *ipc.Router {
	handlers := map[string]ipc.HandlerFunc{
		"Get":    getHandler(store),
		"GetOne": getOneHandler(store),
	}
	return ipc.NewRouter(wrapHandlers(handlers), onError)
}

func createHandler(store *Store) ipc.HandlerFunc {
	return func(_ context.Context, data json.RawMessage) (ipc.Response, error) {
		var req CreateRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		store.Create(req.Name)
		return &SuccessResponse{ID: req.ID}, nil
	}
}

// completeHandler is the router's one declared Conditional response (spec
// 4.C, spec 8 scenario 6): the preamble computes an error description, and
// the first matching guarded case — Error if one was found, Success
// otherwise — is what gets sent back.
func completeHandler(store *Store) ipc.HandlerFunc {
	return func(_ context.Context, data json.RawMessage) (ipc.Response, error) {
		var req CompleteRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}

		description, ok := store.Complete(req.TaskID)
		return ipc.FirstMatch(
			ipc.Case{
				When:  !ok,
				Build: func() ipc.Response { return &ErrorResponse{ID: req.ID, Description: description} },
			},
			ipc.Case{
				When:  true,
				Build: func() ipc.Response { return &SuccessResponse{ID: req.ID} },
			},
		), nil
	}
}

func getHandler(store *Store) ipc.HandlerFunc {
	return func(_ context.Context, data json.RawMessage) (ipc.Response, error) {
		var req GetRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}
		return &TasksResponse{ID: req.ID, Tasks: store.Get(req.Query)}, nil
	}
}

func getOneHandler(store *Store) ipc.HandlerFunc {
	return func(_ context.Context, data json.RawMessage) (ipc.Response, error) {
		var req GetOneRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, err
		}

		task, found := store.GetOne(req.Query)
		return ipc.FirstMatch(
			ipc.Case{
				When:  found,
				Build: func() ipc.Response { return &TaskResponse{ID: req.ID, Task: task} },
			},
			ipc.Case{
				When:  true,
				Build: func() ipc.Response { return &NotFoundResponse{ID: req.ID} },
			},
		), nil
	}
}
