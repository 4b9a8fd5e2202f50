package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-nodeblock/internal/app"
)

var importNodesCmd = &cobra.Command{
	Use:     "import-nodes <file>",
	Short:   "Import nodes from a YAML or JSON file",
	GroupID: "nodes",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		count, err := app.ImportNodesFile(cmdContext(cmd), a.Nodes, args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d nodes\n", count)
		return nil
	},
}
