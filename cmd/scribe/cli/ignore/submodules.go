package ignore

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// submodulePathRe extracts the value of a "path = ..." line in .gitmodules.
// Case-insensitive, one declaration per line. The block structure of the
// file is not parsed; only path keys are consulted.
var submodulePathRe = regexp.MustCompile(`(?i)^\s*path\s*=\s*(.+)$`)

// ReadSubmodulePaths reads the .gitmodules file at root and returns the set
// of declared submodule paths, separators normalized to forward slashes.
// An absent or unreadable file yields an empty set. Declared paths are not
// checked against the working tree.
func ReadSubmodulePaths(root string) map[string]struct{} {
	declared := make(map[string]struct{})

	data, err := os.ReadFile(filepath.Join(root, ".gitmodules"))
	if err != nil {
		return declared
	}

	for _, line := range strings.Split(string(data), "\n") {
		m := submodulePathRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		path := strings.TrimSpace(m[1])
		path = strings.ReplaceAll(path, "\\", "/")
		if path != "" {
			declared[path] = struct{}{}
		}
	}

	return declared
}
