// Package registry implements the capability registry service (spec 4.G)
// and its three specialized clients (spec 4.H): a well-known daemon,
// reachable at WellKnownPath, mapping capability name to socket address.
package registry

// WellKnownPath is the fixed Unix-domain socket path every registry client
// connects to.
const WellKnownPath = "/tmp/central.registry"

// RegisterRequest asks the registry to map Name to Address, overwriting any
// previous mapping (last-write-wins, spec 3).
type RegisterRequest struct {
	ID      uint32 `json:"rqs_id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

func (RegisterRequest) EnvelopeMessage() string { return "Register" }

// DeregisterRequest removes Name from the registry. It is a no-op if Name
// is not present.
type DeregisterRequest struct {
	ID   uint32 `json:"rqs_id"`
	Name string `json:"name"`
}

func (DeregisterRequest) EnvelopeMessage() string { return "Deregister" }

// RequireRequest looks Name up, expecting CapabilityResponse on success or
// ErrorResponse{description: "Capability Not Found"} otherwise.
type RequireRequest struct {
	ID   uint32 `json:"rqs_id"`
	Name string `json:"name"`
}

func (RequireRequest) EnvelopeMessage() string { return "Require" }

// CheckRequest is a liveness probe; the registry always answers AliveResponse.
type CheckRequest struct {
	ID uint32 `json:"rqs_id"`
}

func (CheckRequest) EnvelopeMessage() string { return "Check" }

// SuccessResponse acknowledges a Register or Deregister.
type SuccessResponse struct {
	ID uint32 `json:"rqs_id"`
}

func (r *SuccessResponse) EnvelopeMessage() string { return "Success" }
func (r *SuccessResponse) RqsID() uint32           { return r.ID }

// CapabilityResponse carries the resolved socket address for a Require.
type CapabilityResponse struct {
	ID      uint32 `json:"rqs_id"`
	Address string `json:"address"`
}

func (r *CapabilityResponse) EnvelopeMessage() string { return "Capability" }
func (r *CapabilityResponse) RqsID() uint32           { return r.ID }

// ErrorResponse is the registry's domain-error case — e.g. capability not
// found — rendered the same way any handler error would be (spec 7).
type ErrorResponse struct {
	ID          uint32 `json:"rqs_id"`
	Description string `json:"description"`
}

func (r *ErrorResponse) EnvelopeMessage() string { return "Error" }
func (r *ErrorResponse) RqsID() uint32           { return r.ID }

// AliveResponse answers a Check.
type AliveResponse struct {
	ID uint32 `json:"rqs_id"`
}

func (r *AliveResponse) EnvelopeMessage() string { return "Alive" }
func (r *AliveResponse) RqsID() uint32           { return r.ID }
