package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"central/registry"
	"central/tasks"
)

// newTaskCommand is the Note-equivalent subtree from
// original_source/central/src/cli/notes/mod.rs, generalized to the tasks
// capability this repo provides instead of notes.
func newTaskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manages tasks served by the task_command/task_query capabilities",
	}

	cmd.AddCommand(newTaskCreateCommand())
	cmd.AddCommand(newTaskCompleteCommand())
	cmd.AddCommand(newTaskListCommand())
	return cmd
}

func connectCommandCapability() (*tasks.CommandClient, error) {
	iface, err := registry.ConnectDefaultInterface()
	if err != nil {
		return nil, err
	}
	defer iface.Close()

	addr, err := iface.Require(tasks.CapabilityCommand)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", tasks.CapabilityCommand, err)
	}
	return tasks.ConnectCommand(addr)
}

func connectQueryCapability() (*tasks.QueryClient, error) {
	iface, err := registry.ConnectDefaultInterface()
	if err != nil {
		return nil, err
	}
	defer iface.Close()

	addr, err := iface.Require(tasks.CapabilityQuery)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", tasks.CapabilityQuery, err)
	}
	return tasks.ConnectQuery(addr)
}

func newTaskCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create <name>",
		Short: "Creates a new task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connectCommandCapability()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Create(args[0]); err != nil {
				return err
			}
			fmt.Printf("created %q\n", args[0])
			return nil
		},
	}
}

func newTaskCompleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <task-id>",
		Short: "Marks a task complete",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connectCommandCapability()
			if err != nil {
				return err
			}
			defer client.Close()

			if err := client.Complete(args[0]); err != nil {
				return err
			}
			fmt.Printf("completed %s\n", args[0])
			return nil
		},
	}
}

func newTaskListCommand() *cobra.Command {
	var onlyOpen bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lists tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := connectQueryCapability()
			if err != nil {
				return err
			}
			defer client.Close()

			query := tasks.All()
			if onlyOpen {
				query = tasks.ByDone(false)
			}

			items, err := client.Get(query)
			if err != nil {
				return err
			}
			for _, t := range items {
				status := "open"
				if t.Complete {
					status = "done"
				}
				fmt.Printf("%s\t%s\t%s\n", t.ID, status, t.Name)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&onlyOpen, "open", false, "only list incomplete tasks")
	return cmd
}
