package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"central/registry"
)

// newStatusCommand checks the registry's liveness, ported from
// original_source/central/src/cli/status.rs's `check_status` (minus the
// `ps aux` process scraping, which has no analog once the collaborator
// daemons are plain OS processes supervised externally).
func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Checks whether the registry daemon is reachable",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}
}

// runStatus wraps the Check call with an external timeout, per spec 5:
// "The core defines no request timeout; callers ... wrap calls with
// external timeouts."
func runStatus() error {
	done := make(chan error, 1)
	go func() {
		client, err := registry.ConnectDefaultStatus()
		if err != nil {
			done <- err
			return
		}
		defer client.Close()
		done <- client.Check()
	}()

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	select {
	case err := <-done:
		if err != nil {
			fmt.Printf("registry: %s Error(%v)\n", time.Since(start), err)
			return err
		}
		fmt.Printf("registry: %s Ok\n", time.Since(start))
		return nil
	case <-ctx.Done():
		fmt.Printf("registry: %s Error(timed out)\n", time.Since(start))
		return ctx.Err()
	}
}
