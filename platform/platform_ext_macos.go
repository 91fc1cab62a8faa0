//go:build darwin

package platform

import (
	"os"
	"path/filepath"
)

const volumesDir = "/Volumes"

// GetStorageRoots returns "/" and every listable entry under /Volumes.
func GetStorageRoots() []string {
	roots := []string{}
	if IsEnumerable("/") {
		roots = append(roots, "/")
	}

	entries, err := os.ReadDir(volumesDir)
	if err != nil {
		return roots
	}

	for _, entry := range entries {
		// The boot volume shows up as a symlink back to "/".
		if entry.Type()&os.ModeSymlink != 0 {
			continue
		}

		path := filepath.Join(volumesDir, entry.Name())
		if IsEnumerable(path) {
			roots = append(roots, path)
		}
	}

	return roots
}

// GetExcludedPaths lists trees a walk of "/" must skip: device nodes and the
// firmlinked data volume, which mirrors /Users and /Applications.
func GetExcludedPaths() []string {
	return []string{"/dev", "/System/Volumes", volumesDir}
}

// GetSteamInstallPaths returns the per-user Steam location when present.
func GetSteamInstallPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	steam := filepath.Join(home, "Library", "Application Support", "Steam")
	if _, err := os.Stat(steam); err != nil {
		return nil
	}

	return []string{steam}
}
