package provider_test

import (
	"os"
	"syscall"
	"testing"
	"time"

	"central/ipc"
	"central/provider"
	"central/registry"
)

func startTestRegistry(t *testing.T) string {
	t.Helper()
	path := registry.WellKnownPath
	if _, err := os.Stat(path); err == nil {
		t.Skip("well-known registry socket already occupied, skipping provider lifecycle test")
	}

	srv, err := ipc.Bind(path, registry.NewRouter())
	if err != nil {
		t.Fatalf("Bind registry: %v", err)
	}
	go srv.Serve()
	t.Cleanup(func() {
		srv.Close()
		os.Remove(path)
	})
	return path
}

func echoRouter() *ipc.Router {
	return ipc.NewRouter(map[string]ipc.HandlerFunc{}, nil)
}

// TestRunRegistersAndDeregistersOnSignal exercises the provider runner's
// whole lifecycle: bind capability sockets, register them, block until a
// termination signal, then deregister everything before returning.
func TestRunRegistersAndDeregistersOnSignal(t *testing.T) {
	startTestRegistry(t)

	done := make(chan error, 1)
	go func() {
		done <- provider.Run(
			provider.Capability{Name: "TaskCommand", Router: echoRouter()},
			provider.Capability{Name: "TaskQuery", Router: echoRouter()},
		)
	}()

	// Give the runner time to bind and register both capabilities before
	// we check the registry and send the shutdown signal.
	time.Sleep(200 * time.Millisecond)

	iface, err := registry.ConnectDefaultInterface()
	if err != nil {
		t.Fatalf("ConnectInterface: %v", err)
	}
	addr, err := iface.Require("task_command")
	if err != nil {
		t.Fatalf("Require(task_command) before shutdown: %v", err)
	}
	if addr == "" {
		t.Fatal("Require(task_command) returned empty address")
	}
	iface.Close()

	if err := syscall.Kill(os.Getpid(), syscall.SIGTERM); err != nil {
		t.Fatalf("Kill: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after SIGTERM")
	}

	iface2, err := registry.ConnectDefaultInterface()
	if err != nil {
		t.Fatalf("ConnectInterface (post-shutdown): %v", err)
	}
	defer iface2.Close()
	if _, err := iface2.Require("task_command"); err == nil {
		t.Fatal("expected task_command to be deregistered after shutdown")
	}
}
