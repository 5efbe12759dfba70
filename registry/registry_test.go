package registry_test

import (
	"path/filepath"
	"testing"

	"central/ipc"
	"central/registry"
)

func startRegistry(t *testing.T) (string, *ipc.Server) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registry.sock")
	srv, err := ipc.Bind(path, registry.NewRouter())
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	go srv.Serve()
	t.Cleanup(func() { srv.Close() })
	return path, srv
}

func TestRegisterThenRequireResolvesAddress(t *testing.T) {
	path, _ := startRegistry(t)

	provider, err := registry.ConnectProvider(path)
	if err != nil {
		t.Fatalf("ConnectProvider: %v", err)
	}
	defer provider.Close()

	if err := provider.Register("tasks", "/tmp/central.tasks.abcd"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	consumer, err := registry.ConnectInterface(path)
	if err != nil {
		t.Fatalf("ConnectInterface: %v", err)
	}
	defer consumer.Close()

	addr, err := consumer.Require("tasks")
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	if addr != "/tmp/central.tasks.abcd" {
		t.Fatalf("Require returned %q, want %q", addr, "/tmp/central.tasks.abcd")
	}
}

func TestRequireMissingCapabilityReturnsError(t *testing.T) {
	path, _ := startRegistry(t)

	consumer, err := registry.ConnectInterface(path)
	if err != nil {
		t.Fatalf("ConnectInterface: %v", err)
	}
	defer consumer.Close()

	_, err = consumer.Require("nonexistent")
	if err == nil {
		t.Fatal("expected error for missing capability, got nil")
	}
}

func TestDeregisterRemovesCapability(t *testing.T) {
	path, _ := startRegistry(t)

	provider, err := registry.ConnectProvider(path)
	if err != nil {
		t.Fatalf("ConnectProvider: %v", err)
	}
	defer provider.Close()

	if err := provider.Register("tasks", "/tmp/central.tasks.abcd"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := provider.Deregister("tasks"); err != nil {
		t.Fatalf("Deregister: %v", err)
	}

	consumer, err := registry.ConnectInterface(path)
	if err != nil {
		t.Fatalf("ConnectInterface: %v", err)
	}
	defer consumer.Close()

	if _, err := consumer.Require("tasks"); err == nil {
		t.Fatal("expected error after deregistration, got nil")
	}
}

func TestDeregisterAbsentCapabilityIsNotAnError(t *testing.T) {
	path, _ := startRegistry(t)

	provider, err := registry.ConnectProvider(path)
	if err != nil {
		t.Fatalf("ConnectProvider: %v", err)
	}
	defer provider.Close()

	if err := provider.Deregister("never-registered"); err != nil {
		t.Fatalf("Deregister of absent capability should succeed, got: %v", err)
	}
}

func TestRegisterIsLastWriteWins(t *testing.T) {
	path, _ := startRegistry(t)

	provider, err := registry.ConnectProvider(path)
	if err != nil {
		t.Fatalf("ConnectProvider: %v", err)
	}
	defer provider.Close()

	if err := provider.Register("tasks", "/tmp/central.tasks.first"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := provider.Register("tasks", "/tmp/central.tasks.second"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	consumer, err := registry.ConnectInterface(path)
	if err != nil {
		t.Fatalf("ConnectInterface: %v", err)
	}
	defer consumer.Close()

	addr, err := consumer.Require("tasks")
	if err != nil {
		t.Fatalf("Require: %v", err)
	}
	if addr != "/tmp/central.tasks.second" {
		t.Fatalf("Require returned %q, want the second registration to win", addr)
	}
}

func TestCheckReturnsAlive(t *testing.T) {
	path, _ := startRegistry(t)

	status, err := registry.ConnectStatus(path)
	if err != nil {
		t.Fatalf("ConnectStatus: %v", err)
	}
	defer status.Close()

	if err := status.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}
}

// TestRestartLosesState models a registry crash/restart: a fresh router has
// no memory of a capability registered against the previous one, matching
// the non-durable, memory-only registry state spec'd for this service.
func TestRestartLosesState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.sock")

	srv, err := ipc.Bind(path, registry.NewRouter())
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	go srv.Serve()

	provider, err := registry.ConnectProvider(path)
	if err != nil {
		t.Fatalf("ConnectProvider: %v", err)
	}
	if err := provider.Register("tasks", "/tmp/central.tasks.abcd"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	provider.Close()
	srv.Close()
	srv.Wait()

	// "Restart" with a brand new router sharing no state.
	srv2, err := ipc.Bind(path, registry.NewRouter())
	if err != nil {
		t.Fatalf("Bind after restart: %v", err)
	}
	go srv2.Serve()
	defer srv2.Close()

	consumer, err := registry.ConnectInterface(path)
	if err != nil {
		t.Fatalf("ConnectInterface: %v", err)
	}
	defer consumer.Close()

	if _, err := consumer.Require("tasks"); err == nil {
		t.Fatal("expected Require to fail after restart, registry state should not survive")
	}
}
