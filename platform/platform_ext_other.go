//go:build !windows && !linux && !darwin

package platform

import (
	"os"
	"path/filepath"
)

func GetStorageRoots() []string {
	if IsEnumerable("/") {
		return []string{"/"}
	}

	return nil
}

func GetExcludedPaths() []string {
	return []string{"/dev", "/proc"}
}

func GetSteamInstallPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	steam := filepath.Join(home, ".local", "share", "Steam")
	if _, err := os.Stat(steam); err != nil {
		return nil
	}

	return []string{steam}
}
