package registry

import (
	"bufio"
	"os"
	"strings"
)

// mappedSharedLibraries parses a Linux /proc/<pid>/maps-style file and
// returns the distinct .so paths currently mapped into this process. It
// is a diagnostic cross-check, not an authoritative list: a path can
// appear here that the registry never loaded (a transitive dependency of
// a loaded plugin, or of the host binary itself), and Go's plugin
// package never unmaps anything, so a path the registry has since
// unloaded can still appear here too.
func mappedSharedLibraries(mapsPath string) ([]string, error) {
	f, err := os.Open(mapsPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	seen := make(map[string]bool)
	var paths []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}
		path := fields[len(fields)-1]
		if !strings.HasSuffix(path, ".so") && !strings.Contains(path, ".so.") {
			continue
		}
		if seen[path] {
			continue
		}
		seen[path] = true
		paths = append(paths, path)
	}
	return paths, scanner.Err()
}
