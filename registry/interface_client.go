package registry

import (
	"encoding/json"
	"fmt"

	"central/ipc"
)

// InterfaceClient is the consuming half of a capability lookup: it asks
// the registry to resolve a capability name to a socket address, grounded
// on the original InterfaceClient's Require/await-Capability flow.
type InterfaceClient struct {
	client *ipc.Client
}

func decodeCapability(data []byte) (ipc.Response, error) {
	var r CapabilityResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ConnectInterface dials the registry at path, registering decoders for the
// Capability/Error responses Require can produce.
func ConnectInterface(path string) (*InterfaceClient, error) {
	client, err := ipc.Connect(path, map[string]ipc.ResponseDecoder{
		"Capability": decodeCapability,
		"Error":      decodeError,
	})
	if err != nil {
		return nil, err
	}
	return &InterfaceClient{client: client}, nil
}

// ConnectDefaultInterface dials the well-known registry socket.
func ConnectDefaultInterface() (*InterfaceClient, error) {
	return ConnectInterface(WellKnownPath)
}

// Require resolves name to its registered socket address, returning an
// error if no provider currently serves it.
func (i *InterfaceClient) Require(name string) (string, error) {
	id := i.client.NextID()
	wait := i.client.Wait(id)
	if err := i.client.Send("Require", RequireRequest{ID: id, Name: name}); err != nil {
		i.client.Cancel(id)
		return "", err
	}

	resp, ok := <-wait
	if !ok {
		return "", fmt.Errorf("registry: connection closed before response arrived")
	}
	switch r := resp.(type) {
	case *CapabilityResponse:
		return r.Address, nil
	case *ErrorResponse:
		return "", fmt.Errorf("registry: %s", r.Description)
	default:
		return "", fmt.Errorf("registry: unexpected response type %T", resp)
	}
}

// Close closes the underlying connection.
func (i *InterfaceClient) Close() error {
	return i.client.Close()
}
