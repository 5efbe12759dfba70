package ipc

import (
	"context"
	"encoding/json"
	"fmt"

	"central/frame"
)

// Request is implemented by every request variant a router accepts; it
// names the wire discriminator used to route to a handler.
type Request interface {
	EnvelopeMessage() string
}

// Response is implemented by every response variant a router (or client)
// produces. RqsID echoes the request id the response correlates with.
type Response interface {
	EnvelopeMessage() string
	RqsID() uint32
}

// HandlerFunc decodes a request variant's data and returns the response to
// send back, or an error. A handler must terminate — it must not block its
// router indefinitely (spec 4.C).
type HandlerFunc func(ctx context.Context, data json.RawMessage) (Response, error)

// Case is one guarded arm of a Conditional response (spec 4.C): the first
// Case whose When holds is built; a trailing Case with When=true serves as
// the default.
type Case struct {
	When  bool
	Build func() Response
}

// FirstMatch returns the first matching case's response. It is the
// declarative-router's "conditional response" construct, written by hand:
// a chain of guards ending in an unconditional default.
func FirstMatch(cases ...Case) Response {
	for _, c := range cases {
		if c.When {
			return c.Build()
		}
	}
	return nil
}

type dispatchJob struct {
	ctx   context.Context
	env   frame.Envelope
	reply chan Response
}

// Router is a service's typed request dispatcher (spec 4.C). It owns its
// handler table and runs every dispatch on a single goroutine — its
// "island" — so handlers may freely read and mutate service state without
// external locking, and responses on a session therefore complete in the
// order their requests were handed to the router.
type Router struct {
	handlers map[string]HandlerFunc
	onError  func(rqsID uint32, err error) Response
	jobs     chan dispatchJob
}

// NewRouter starts a router's island goroutine. onError renders a handler or
// decode error as a service-specific Error{description} response variant
// (spec 7, HandlerError); it may be nil, in which case such errors yield no
// response and the session logs and continues.
func NewRouter(handlers map[string]HandlerFunc, onError func(rqsID uint32, err error) Response) *Router {
	r := &Router{
		handlers: handlers,
		onError:  onError,
		jobs:     make(chan dispatchJob),
	}
	go r.run()
	return r
}

func (r *Router) run() {
	for job := range r.jobs {
		job.reply <- r.handle(job.ctx, job.env)
	}
}

// Dispatch hands one decoded request envelope to the router's island and
// blocks until the corresponding response is ready. Suspending here is the
// session's one in-flight-request-at-a-time discipline (spec 4.B).
func (r *Router) Dispatch(ctx context.Context, env frame.Envelope) Response {
	reply := make(chan Response, 1)
	r.jobs <- dispatchJob{ctx: ctx, env: env, reply: reply}
	return <-reply
}

func (r *Router) handle(ctx context.Context, env frame.Envelope) Response {
	h, ok := r.handlers[env.Message]
	if !ok {
		return r.renderError(rqsIDOf(env.Data), fmt.Errorf("unknown request variant %q", env.Message))
	}

	resp, err := h(ctx, env.Data)
	if err != nil {
		return r.renderError(rqsIDOf(env.Data), err)
	}
	return resp
}

func (r *Router) renderError(rqsID uint32, err error) Response {
	if r.onError == nil {
		return nil
	}
	return r.onError(rqsID, err)
}

type rqsIDCarrier struct {
	RqsID uint32 `json:"rqs_id"`
}

func rqsIDOf(data json.RawMessage) uint32 {
	var c rqsIDCarrier
	_ = json.Unmarshal(data, &c)
	return c.RqsID
}
