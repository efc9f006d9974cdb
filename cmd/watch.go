package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	"github.com/pluginhost/pluginhost/internal/cli"
	"github.com/pluginhost/pluginhost/internal/config"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the plugin directory and hot-swap modules as they change",
		Long: `Watch loads every plugin already present in the configured plugin
directory, then follows filesystem events on that directory: a new or
rewritten .so is loaded or reloaded, and a removed .so is unloaded.
Runs until interrupted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			host, err := newHost()
			if err != nil {
				return err
			}

			watcher, err := config.NewPluginWatcher(host.Config.Plugins.Directory)
			if err != nil {
				return err
			}
			defer watcher.Stop()

			events := make(chan config.PluginEvent, 16)
			ctx := cmd.Context()
			go watcher.Events(ctx, events)

			existing, err := filepath.Glob(filepath.Join(host.Config.Plugins.Directory, "*.so"))
			if err != nil {
				return err
			}
			for _, path := range existing {
				handlePluginEvent(cmd, host, config.PluginEvent{Path: path, Op: config.PluginCreated})
			}

			host.Monitor.StartMonitoring(ctx)

			s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
			s.Suffix = fmt.Sprintf(" watching %s for plugin changes...", host.Config.Plugins.Directory)
			s.Start()
			defer s.Stop()

			go func() {
				for ev := range events {
					handlePluginEvent(cmd, host, ev)
				}
			}()

			return runUntilInterrupted(cmd, host)
		},
	}
}

func handlePluginEvent(cmd *cobra.Command, host *cli.Host, ev config.PluginEvent) {
	out := cmd.OutOrStdout()
	ctx := context.Background()

	switch ev.Op {
	case config.PluginRemoved:
		name, ok := host.Registry.NameForPath(ev.Path)
		if !ok {
			return
		}
		if err := host.Unload(ctx, name); err != nil {
			fmt.Fprintln(out, cli.FormatError(fmt.Errorf("unload %s: %w", name, err)))
			return
		}
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("watched change: unloaded %s", name)))

	case config.PluginCreated, config.PluginWritten:
		if name, ok := host.Registry.NameForPath(ev.Path); ok {
			info, err := host.Reload(ctx, name)
			if err != nil {
				fmt.Fprintln(out, cli.FormatError(fmt.Errorf("hot-swap %s: %w", name, err)))
				return
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("watched change: hot-swapped %s v%s", info.Name, info.Version)))
			return
		}
		info, err := host.Load(ctx, ev.Path)
		if err != nil {
			fmt.Fprintln(out, cli.FormatError(fmt.Errorf("load %s: %w", ev.Path, err)))
			return
		}
		fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("watched change: loaded %s v%s", info.Name, info.Version)))
	}
}
