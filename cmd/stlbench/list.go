package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the known workloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, w := range workloads {
				fmt.Fprintf(out, "%-14s %-40s [%s]\n", w.name, w.help, strings.Join(w.containers, ", "))
			}
			return nil
		},
	}
}
