package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	var report bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a table of loaded modules and their health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := newHost()
			if err != nil {
				return err
			}
			if report {
				fmt.Fprint(cmd.OutOrStdout(), host.Monitor.GenerateReport())
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), host.StatusTable())
			return nil
		},
	}
	cmd.Flags().BoolVar(&report, "report", false, "render the health monitor's own multi-line report instead of the table")
	return cmd
}
