// Package config loads the plugin host's settings (health-monitor
// interval and failure threshold, the plugin search directory, log
// level) from config.yaml, and watches the plugin directory for files
// appearing, changing, or disappearing so the CLI can react to them.
package config
