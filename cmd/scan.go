package cmd

import (
	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Cross-reference loaded modules against /proc/self/maps",
		Long: `Scan lists every .so currently mapped into this process's address
space (read from /proc/self/maps) and reports which ones the registry
recognizes as a managed module versus an unmanaged shared library, and
whether any managed module's backing file is missing from the map. This
is diagnostic only: /proc/self/maps reflects what the runtime loader has
mapped, not what the registry believes is loaded, and the two can
briefly disagree around a load or unload.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := newHost()
			if err != nil {
				return err
			}
			host.Registry.ScanRuntimeSharedLibraries()
			return nil
		},
	}
}
