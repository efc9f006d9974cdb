package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/pluginhost/pluginhost/internal/cli"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

// runUntilInterrupted blocks until SIGINT/SIGTERM, then shuts host down
// cleanly. Used by any subcommand (load, watch) that keeps the process
// alive to run the health monitor against what it loaded.
func runUntilInterrupted(cmd *cobra.Command, host *cli.Host) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	fmt.Fprintln(cmd.OutOrStdout(), "\nshutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return host.Shutdown(shutdownCtx)
}
