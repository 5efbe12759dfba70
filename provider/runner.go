// Package provider implements the provider runner (spec 4.I): the glue
// that brings a service online, grounded on
// original_source/macros/src/definitions/registry/mod.rs's generated
// register_providers/deregister_providers pair and
// original_source/central/src/runners/mod.rs's block-until-signal main loop.
package provider

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/iancoleman/strcase"

	"central/ipc"
	"central/middleware"
	"central/registry"
)

// connectRetries and connectBaseDelay give a provider a chance to come up
// before the registry daemon does — e.g. taskd started by the same
// supervisor as registryd, racing it to the well-known socket — without
// treating that as a fatal startup error.
const (
	connectRetries   = 5
	connectBaseDelay = 100 * time.Millisecond
)

// Capability is one socket a provider runner binds and registers: Name is
// its registry key (snake_cased for the wire and the socket path), Router
// is the handler table restricted to that capability's request type.
type Capability struct {
	Name   string
	Router *ipc.Router
}

// Run starts a service: it binds one server per declared capability on a
// freshly generated socket path, registers each with the registry, then
// blocks until SIGINT/SIGTERM, at which point it deregisters everything
// and closes the servers.
//
// Run never returns until the process receives a termination signal (or a
// capability fails to start, in which case it returns the startup error
// immediately, per spec 4.I "any step in 2 fails the startup and aborts").
func Run(capabilities ...Capability) error {
	servers := make([]*ipc.Server, 0, len(capabilities))
	names := make([]string, 0, len(capabilities))

	var provider *registry.ProviderClient
	err := middleware.Retry(connectRetries, connectBaseDelay, func() error {
		var dialErr error
		provider, dialErr = registry.ConnectDefaultProvider()
		return dialErr
	})
	if err != nil {
		return fmt.Errorf("provider: connect to registry: %w", err)
	}
	defer provider.Close()

	for _, capability := range capabilities {
		name := strcase.ToSnake(capability.Name)
		path := socketPath(name)

		srv, err := ipc.Bind(path, capability.Router)
		if err != nil {
			closeAll(servers)
			return fmt.Errorf("provider: start capability %s: %w", name, err)
		}
		go srv.Serve()
		servers = append(servers, srv)

		if err := provider.Register(name, path); err != nil {
			closeAll(servers)
			return fmt.Errorf("provider: register capability %s: %w", name, err)
		}
		names = append(names, name)
		log.Printf("provider: capability %s registered at %s", name, path)
	}

	waitForSignal()
	log.Printf("provider: shutting down")

	deregisterAll(names)
	closeAll(servers)
	return nil
}

// socketPath builds the well-known capability socket name
// /tmp/central.<snake_case(name)>.<uuid-v4>, per spec 4.I/6.
func socketPath(name string) string {
	return fmt.Sprintf("/tmp/central.%s.%s", name, uuid.New().String())
}

func waitForSignal() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

// deregisterAll is best-effort (spec 4.I step 4): a failure to reach the
// registry is logged, never fatal to shutdown. It opens its own connection
// since the runner's startup-time client may already be in a bad state.
func deregisterAll(names []string) {
	var client *registry.ProviderClient
	err := middleware.Retry(connectRetries, connectBaseDelay, func() error {
		var dialErr error
		client, dialErr = registry.ConnectDefaultProvider()
		return dialErr
	})
	if err != nil {
		log.Printf("provider: deregister: couldn't reach registry: %v", err)
		return
	}
	defer client.Close()

	for _, name := range names {
		if err := client.Deregister(name); err != nil {
			log.Printf("provider: deregister %s: %v", name, err)
		}
	}
}

func closeAll(servers []*ipc.Server) {
	for _, s := range servers {
		_ = s.Close()
	}
}
