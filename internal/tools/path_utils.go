package tools

import (
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath expands ~, resolves inputPath against workspaceRoot, and reports
// whether the result escapes the workspace.
// Returns: (resolvedPath, isOutside, error)
func ResolvePath(workspaceRoot, inputPath string) (string, bool, error) {
	path := inputPath
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}
		path = filepath.Join(home, path[2:])
	}

	var absPath string
	if filepath.IsAbs(path) {
		absPath = path
	} else {
		absPath = filepath.Join(workspaceRoot, path)
	}
	absPath = filepath.Clean(absPath)

	if workspaceRoot == "" {
		return absPath, false, nil
	}

	relPath, err := filepath.Rel(filepath.Clean(workspaceRoot), absPath)
	if err != nil {
		return "", false, err
	}

	outside := relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator))
	return absPath, outside, nil
}
