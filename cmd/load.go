package cmd

import (
	"context"
	"fmt"

	"github.com/pluginhost/pluginhost/internal/cli"
	"github.com/spf13/cobra"
)

func newLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load <plugin.so>",
		Short: "Load a plugin and run it until interrupted",
		Long: `Load opens the plugin at the given path, constructs and starts its
module instance, and then blocks, running the health monitor against it
until the process receives an interrupt signal, at which point the
module is cleanly unloaded before exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := newHost()
			if err != nil {
				return err
			}

			info, err := host.Load(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("loaded %s v%s", info.Name, info.Version)))

			host.Monitor.StartMonitoring(cmd.Context())
			return runUntilInterrupted(cmd, host)
		},
	}
}
