package cmd

import (
	"context"
	"fmt"

	"github.com/pluginhost/pluginhost/internal/cli"
	"github.com/spf13/cobra"
)

func newReloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reload <module-name>",
		Short: "Hot-swap a running module for the build currently on disk",
		Long: `Reload stops and tears down the named module, then loads it again
from the path it was originally opened from. If the rebuild on disk
fails to init or start, the module is left unregistered rather than
rolled back to the previous instance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := newHost()
			if err != nil {
				return err
			}
			info, err := host.Reload(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("reloaded %s v%s", info.Name, info.Version)))
			return nil
		},
	}
}
