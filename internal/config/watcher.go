package config

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/pluginhost/pluginhost/pkg/logging"
)

// PluginOp is the kind of change observed in the watched plugin directory.
type PluginOp int

const (
	PluginCreated PluginOp = iota
	PluginWritten
	PluginRemoved
)

func (op PluginOp) String() string {
	switch op {
	case PluginCreated:
		return "created"
	case PluginWritten:
		return "written"
	case PluginRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// PluginEvent reports a single change to a .so file under a watched
// plugin directory.
type PluginEvent struct {
	Path string
	Op   PluginOp
}

// PluginWatcher watches a directory for .so files being added, rewritten,
// or removed, and reports each change on a channel. It never reacts to
// changes itself — load/unload/reload decisions stay with whatever reads
// the channel (the CLI's "watch" subcommand, or an embedder).
type PluginWatcher struct {
	dir     string
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	stopped bool
}

// NewPluginWatcher starts watching dir for plugin file changes. Call
// Events to receive changes and Stop to release the underlying fsnotify
// watcher.
func NewPluginWatcher(dir string) (*PluginWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, err
	}
	return &PluginWatcher{dir: dir, watcher: w}, nil
}

// Events runs the translation loop until ctx is canceled or Stop is
// called, sending a PluginEvent on out for every .so create/write/remove
// seen under the watched directory. It returns when the loop exits.
func (w *PluginWatcher) Events(ctx context.Context, out chan<- PluginEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !isSharedObject(ev.Name) {
				continue
			}
			op, ok := translateOp(ev.Op)
			if !ok {
				continue
			}
			select {
			case out <- PluginEvent{Path: ev.Name, Op: op}:
			case <-ctx.Done():
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logging.Error("PluginWatcher", err, "watch error on %s", w.dir)
		}
	}
}

// Stop releases the underlying OS watch. Safe to call more than once.
func (w *PluginWatcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return nil
	}
	w.stopped = true
	return w.watcher.Close()
}

func isSharedObject(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".so"
}

func translateOp(op fsnotify.Op) (PluginOp, bool) {
	switch {
	case op&fsnotify.Create == fsnotify.Create:
		return PluginCreated, true
	case op&fsnotify.Write == fsnotify.Write:
		return PluginWritten, true
	case op&fsnotify.Remove == fsnotify.Remove, op&fsnotify.Rename == fsnotify.Rename:
		return PluginRemoved, true
	default:
		return 0, false
	}
}
