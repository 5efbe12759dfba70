package registry

import (
	"encoding/json"
	"fmt"

	"central/ipc"
)

// StatusClient probes the registry's liveness, used by operator tooling
// (spec 4.H Check) rather than by providers or consumers.
type StatusClient struct {
	client *ipc.Client
}

func decodeAlive(data []byte) (ipc.Response, error) {
	var r AliveResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ConnectStatus dials the registry at path, registering the Alive decoder.
func ConnectStatus(path string) (*StatusClient, error) {
	client, err := ipc.Connect(path, map[string]ipc.ResponseDecoder{
		"Alive": decodeAlive,
	})
	if err != nil {
		return nil, err
	}
	return &StatusClient{client: client}, nil
}

// ConnectDefaultStatus dials the well-known registry socket.
func ConnectDefaultStatus() (*StatusClient, error) {
	return ConnectStatus(WellKnownPath)
}

// Check sends a liveness probe and waits for the Alive acknowledgement.
func (s *StatusClient) Check() error {
	id := s.client.NextID()
	wait := s.client.Wait(id)
	if err := s.client.Send("Check", CheckRequest{ID: id}); err != nil {
		s.client.Cancel(id)
		return err
	}

	resp, ok := <-wait
	if !ok {
		return fmt.Errorf("registry: connection closed before response arrived")
	}
	if _, ok := resp.(*AliveResponse); !ok {
		return fmt.Errorf("registry: unexpected response type %T", resp)
	}
	return nil
}

// Close closes the underlying connection.
func (s *StatusClient) Close() error {
	return s.client.Close()
}
