// Package pathutil converts between absolute and relative paths.
//
// Arbor indexes and stores absolute paths internally for consistency
// and to avoid ambiguity across re-indexing runs, but CLI and bridge
// output should use paths relative to the repository root for
// readability. This package is the conversion layer between the two.
package pathutil

import (
	"path/filepath"
	"strings"

	"github.com/arbor-dev/arbor/internal/graph"
)

// ToRelative converts an absolute path to relative based on a root
// directory. Falls back to the original path if conversion fails or
// the path is already relative.
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}
	if strings.HasPrefix(relPath, "..") {
		return absPath
	}
	return relPath
}

// ToRelativeNodeInfos converts the File field of each NodeInfo from
// absolute to relative, for rendering search/impact/context results at
// the CLI and bridge boundaries without mutating the graph's own copy.
func ToRelativeNodeInfos(nodes []graph.NodeInfo, rootDir string) []graph.NodeInfo {
	if len(nodes) == 0 {
		return nodes
	}
	converted := make([]graph.NodeInfo, len(nodes))
	copy(converted, nodes)
	for i := range converted {
		converted[i].File = ToRelative(converted[i].File, rootDir)
	}
	return converted
}
