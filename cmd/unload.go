package cmd

import (
	"context"
	"fmt"

	"github.com/pluginhost/pluginhost/internal/cli"
	"github.com/spf13/cobra"
)

func newUnloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unload <module-name>",
		Short: "Unload a running module",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := newHost()
			if err != nil {
				return err
			}
			if err := host.Unload(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("unloaded %s", args[0])))
			return nil
		},
	}
}
