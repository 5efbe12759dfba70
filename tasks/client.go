package tasks

import (
	"encoding/json"
	"fmt"

	"central/ipc"
)

// CommandClient issues Create/Complete actions against a TaskCommand
// capability, ported from the original's `client! { TaskCommand named
// Command { ... } }`.
type CommandClient struct {
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

// ConnectCommand dials a TaskCommand capability's socket.
func ConnectCommand(path string) (*CommandClient, error) {
	client, err := ipc.Connect(path, map[string]ipc.ResponseDecoder{
		"Success": decodeSuccess,
		"Error":   decodeError,
	})
	if err != nil {
		return nil, err
	}
	return &CommandClient{client: client}, nil
}

// Create asks the store to create a task named name and waits for Success.
func (c *CommandClient) Create(name string) error {
	id := c.client.NextID()
	wait := c.client.Wait(id)
	if err := c.client.Send("Create", CreateRequest{ID: id, Name: name}); err != nil {
		c.client.Cancel(id)
		return err
	}
	return waitSuccess(wait)
}

// Complete asks the store to mark taskID complete and waits for Success,
// or the Error{description} the store produced (Task Not Found / Task
// Already Complete).
func (c *CommandClient) Complete(taskID string) error {
	id := c.client.NextID()
	wait := c.client.Wait(id)
	if err := c.client.Send("Complete", CompleteRequest{ID: id, TaskID: taskID}); err != nil {
		c.client.Cancel(id)
		return err
	}
	return waitSuccess(wait)
}

// Close closes the underlying connection.
func (c *CommandClient) Close() error { return c.client.Close() }

func waitSuccess(wait <-chan ipc.Response) error {
	resp, ok := <-wait
	if !ok {
		return fmt.Errorf("tasks: connection closed before response arrived")
	}
	switch r := resp.(type) {
	case *SuccessResponse:
		return nil
	case *ErrorResponse:
		return fmt.Errorf("tasks: %s", r.Description)
	default:
		return fmt.Errorf("tasks: unexpected response type %T", resp)
	}
}

// QueryClient issues Get/GetOne actions against a TaskQuery capability.
type QueryClient struct {
	client *ipc.Client
}

func decodeTasks(data []byte) (ipc.Response, error) {
	var r TasksResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func decodeTask(data []byte) (ipc.Response, error) {
	var r TaskResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func decodeNotFound(data []byte) (ipc.Response, error) {
	var r NotFoundResponse
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// ConnectQuery dials a TaskQuery capability's socket.
func ConnectQuery(path string) (*QueryClient, error) {
	client, err := ipc.Connect(path, map[string]ipc.ResponseDecoder{
		"Tasks":    decodeTasks,
		"Task":     decodeTask,
		"NotFound": decodeNotFound,
	})
	if err != nil {
		return nil, err
	}
	return &QueryClient{client: client}, nil
}

// Get returns every task matching q.
func (c *QueryClient) Get(q Query) ([]Task, error) {
	id := c.client.NextID()
	wait := c.client.Wait(id)
	if err := c.client.Send("Get", GetRequest{ID: id, Query: q}); err != nil {
		c.client.Cancel(id)
		return nil, err
	}

	resp, ok := <-wait
	if !ok {
		return nil, fmt.Errorf("tasks: connection closed before response arrived")
	}
	r, ok := resp.(*TasksResponse)
	if !ok {
		return nil, fmt.Errorf("tasks: unexpected response type %T", resp)
	}
	return r.Tasks, nil
}

// GetOne returns the first task matching q, or (Task{}, false) if none do.
func (c *QueryClient) GetOne(q Query) (Task, bool, error) {
	id := c.client.NextID()
	wait := c.client.Wait(id)
	if err := c.client.Send("GetOne", GetOneRequest{ID: id, Query: q}); err != nil {
		c.client.Cancel(id)
		return Task{}, false, err
	}

	resp, ok := <-wait
	if !ok {
		return Task{}, false, fmt.Errorf("tasks: connection closed before response arrived")
	}
	switch r := resp.(type) {
	case *TaskResponse:
		return r.Task, true, nil
	case *NotFoundResponse:
		return Task{}, false, nil
	default:
		return Task{}, false, fmt.Errorf("tasks: unexpected response type %T", resp)
	}
}

// Close closes the underlying connection.
func (c *QueryClient) Close() error { return c.client.Close() }
