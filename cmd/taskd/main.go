// Command taskd provides the TaskCommand and TaskQuery capabilities over
// a single in-memory task store, grounded on
// original_source/examples/tasks/examples/task_provider.rs's
// `run_provide! { TaskStore => [TaskCommand, TaskQuery] }`.
package main

import (
	"log"

	"central/provider"
	"central/tasks"
)

func main() {
	store := tasks.NewStore()

	err := provider.Run(
		provider.Capability{Name: tasks.CapabilityCommand, Router: tasks.NewCommandRouter(store)},
		provider.Capability{Name: tasks.CapabilityQuery, Router: tasks.NewQueryRouter(store)},
	)
	if err != nil {
		log.Fatalf("taskd: %v", err)
	}
}
