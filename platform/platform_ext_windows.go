//go:build windows

package platform

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const defaultSteamLocation = "C:\\Program Files (x86)\\Steam"

// GetStorageRoots returns the root of every drive letter that currently
// exists and can be listed.
func GetStorageRoots() []string {
	mask, err := windows.GetLogicalDrives()
	if err != nil {
		// Fall back to probing every letter.
		mask = 1<<26 - 1
	}

	roots := []string{}
	for i := 0; i < 26; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}

		root := string(rune('A'+i)) + ":\\"
		if IsEnumerable(root) {
			roots = append(roots, root)
		}
	}

	return roots
}

// GetExcludedPaths is empty on Windows: drive roots never nest.
func GetExcludedPaths() []string {
	return nil
}

// GetSteamInstallPaths returns the Steam install recorded in the registry,
// followed by the default install location.
func GetSteamInstallPaths() []string {
	result := []string{}

	key, err := registry.OpenKey(registry.CURRENT_USER, `SOFTWARE\Valve\Steam`, registry.QUERY_VALUE)
	if err == nil {
		defer key.Close()

		steamPath, _, err := key.GetStringValue("SteamPath")
		if err == nil && steamPath != "" {
			result = append(result, filepath.Clean(steamPath))
		}
	}

	if _, err := os.Stat(defaultSteamLocation); err == nil {
		result = append(result, defaultSteamLocation)
	}

	return result
}

func canList(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	return err == nil || errors.Is(err, io.EOF)
}
