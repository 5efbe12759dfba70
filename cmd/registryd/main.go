// Command registryd runs the capability registry daemon (spec 4.G) at its
// well-known socket path. It is the first process any other central daemon
// needs reachable: providers register against it, consumers resolve
// against it.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"central/ipc"
	"central/registry"
)

func main() {
	srv, err := ipc.Bind(registry.WellKnownPath, registry.NewRouter())
	if err != nil {
		log.Fatalf("registryd: %v", err)
	}

	go func() {
		if err := srv.Serve(); err != nil {
			log.Printf("registryd: serve: %v", err)
		}
	}()
	log.Printf("registryd: listening on %s", registry.WellKnownPath)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Printf("registryd: shutting down")
	srv.Close()
	srv.Wait()
}
