// Command centralctl is the thin CLI dispatcher described in spec 6: a
// hierarchical command line where each leaf connects to a capability via
// the interface client and invokes one action. Grounded on
// original_source/central/src/cli/mod.rs's Central{Status, Note} dispatch
// tree, generalized here to the tasks capability this repo ships.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "centralctl",
		Short: "Dispatches commands to central's capability providers",
	}

	root.AddCommand(newStatusCommand())
	root.AddCommand(newTaskCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
