// Package cmd implements pluginhostctl, the command-line front end for
// the plugin host: load, unload, reload, status, watch, and scan.
package cmd

import (
	"os"

	"github.com/pluginhost/pluginhost/internal/cli"
	"github.com/pluginhost/pluginhost/internal/config"
	"github.com/pluginhost/pluginhost/internal/hosterrors"
	"github.com/pluginhost/pluginhost/pkg/logging"

	"github.com/spf13/cobra"
)

// Exit codes for pluginhostctl.
const (
	ExitCodeSuccess  = 0
	ExitCodeError    = 1
	ExitCodeNotFound = 2
)

var configDir string

// rootCmd is the base command for pluginhostctl.
var rootCmd = &cobra.Command{
	Use:   "pluginhostctl",
	Short: "Load, monitor, and hot-swap native plugins",
	Long: `pluginhostctl drives a runtime plugin host: loading Go plugins built
with -buildmode=plugin, tracking their health, and hot-swapping a running
module for a new build on disk without restarting the process.`,
	SilenceUsage: true,
}

// SetVersion injects the build-time version into the root command.
func SetVersion(v string) {
	rootCmd.Version = v
}

// GetVersion returns the current version string.
func GetVersion() string {
	return rootCmd.Version
}

// Execute runs the root command and exits the process with a status
// code derived from any returned error.
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "pluginhostctl version %s\n" .Version}}`)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCodeFor(err))
	}
}

func exitCodeFor(err error) int {
	if hosterrors.IsNotFound(err) {
		return ExitCodeNotFound
	}
	return ExitCodeError
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default: $HOME/.config/pluginhost)")

	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newUnloadCmd())
	rootCmd.AddCommand(newReloadCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// newHost loads configuration (from --config-dir, or the default
// location) and builds a cli.Host from it.
func newHost() (*cli.Host, error) {
	dir := configDir
	if dir == "" {
		d, err := config.DefaultConfigDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return nil, err
	}
	logging.InitForCLI(levelFromString(cfg.Log.Level), os.Stderr)
	return cli.NewHost(cfg), nil
}

func levelFromString(s string) logging.LogLevel {
	switch s {
	case "debug":
		return logging.LevelDebug
	case "warn":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	case "critical":
		return logging.LevelCritical
	default:
		return logging.LevelInfo
	}
}
