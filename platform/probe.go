// Package platform hides how storage roots and Steam installs are found on
// each host OS.
package platform

import "os"

// IsEnumerable reports whether path exists, is a directory and can be listed
// by the current user.
func IsEnumerable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}

	return canList(path)
}
