package registry

import (
	"encoding/json"
	"fmt"

	"central/ipc"
)

// ProviderClient is the registration half of a provider: it tells the
// registry where a capability lives and can later withdraw it, grounded
// on the original ProviderClient's Register/await-Registered flow.
type ProviderClient struct {
	client *ipc.Client
}

func decodeSuccess(data []byte) (ipc.Response, error) {
	var r SuccessResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func decodeError(data []byte) (ipc.Response, error) {
	var r ErrorResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ConnectProvider dials the registry at path, registering decoders for the
// Success/Error responses Register and Deregister can produce.
func ConnectProvider(path string) (*ProviderClient, error) {
	client, err := ipc.Connect(path, map[string]ipc.ResponseDecoder{
		"Success": decodeSuccess,
		"Error":   decodeError,
	})
	if err != nil {
		return nil, err
	}
	return &ProviderClient{client: client}, nil
}

// ConnectDefaultProvider dials the well-known registry socket.
func ConnectDefaultProvider() (*ProviderClient, error) {
	return ConnectProvider(WellKnownPath)
}

// Register maps name to address in the registry and blocks until the
// registry acknowledges it.
func (p *ProviderClient) Register(name, address string) error {
	id := p.client.NextID()
	wait := p.client.Wait(id)
	if err := p.client.Send("Register", RegisterRequest{ID: id, Name: name, Address: address}); err != nil {
		p.client.Cancel(id)
		return err
	}
	return waitForSuccess(wait)
}

// Deregister removes name from the registry, best-effort: the registry
// treats deregistering an absent name as success.
func (p *ProviderClient) Deregister(name string) error {
	id := p.client.NextID()
	wait := p.client.Wait(id)
	if err := p.client.Send("Deregister", DeregisterRequest{ID: id, Name: name}); err != nil {
		p.client.Cancel(id)
		return err
	}
	return waitForSuccess(wait)
}

// Close closes the underlying connection.
func (p *ProviderClient) Close() error {
	return p.client.Close()
}

func waitForSuccess(wait <-chan ipc.Response) error {
	resp, ok := <-wait
	if !ok {
		return fmt.Errorf("registry: connection closed before response arrived")
	}
	switch r := resp.(type) {
	case *SuccessResponse:
		return nil
	case *ErrorResponse:
		return fmt.Errorf("registry: %s", r.Description)
	default:
		return fmt.Errorf("registry: unexpected response type %T", resp)
	}
}
