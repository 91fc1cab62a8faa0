//go:build linux

package platform

import (
	"os"
	"path/filepath"

	"github.com/moby/sys/mountinfo"
)

var pseudoFilesystems = map[string]bool{
	"autofs":      true,
	"binfmt_misc": true,
	"bpf":         true,
	"cgroup":      true,
	"cgroup2":     true,
	"configfs":    true,
	"debugfs":     true,
	"devpts":      true,
	"devtmpfs":    true,
	"fusectl":     true,
	"hugetlbfs":   true,
	"mqueue":      true,
	"nsfs":        true,
	"proc":        true,
	"pstore":      true,
	"rpc_pipefs":  true,
	"securityfs":  true,
	"squashfs":    true,
	"sysfs":       true,
	"tmpfs":       true,
	"tracefs":     true,
}

func pseudoTypes() []string {
	types := make([]string, 0, len(pseudoFilesystems))
	for t := range pseudoFilesystems {
		types = append(types, t)
	}
	return types
}

// realMounts skips pseudo filesystems.
func realMounts(m *mountinfo.Info) (skip, stop bool) {
	return pseudoFilesystems[m.FSType], false
}

func mountPoints(filter mountinfo.FilterFunc) []string {
	mounts, err := mountinfo.GetMounts(filter)
	if err != nil {
		return nil
	}

	points := make([]string, 0, len(mounts))
	for _, m := range mounts {
		points = append(points, filepath.Clean(m.Mountpoint))
	}
	return points
}

// GetStorageRoots returns every mounted, listable, non-pseudo filesystem.
// "/" is always included when listable.
func GetStorageRoots() []string {
	seen := map[string]bool{}
	roots := []string{}

	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] || !IsEnumerable(path) {
			return
		}
		seen[path] = true
		roots = append(roots, path)
	}

	add("/")
	for _, point := range mountPoints(realMounts) {
		add(point)
	}

	return roots
}

// GetExcludedPaths returns mount points of pseudo filesystems, which a walk
// of "/" must not descend into.
func GetExcludedPaths() []string {
	return append([]string{"/proc", "/sys", "/dev"}, mountPoints(mountinfo.FSTypeFilter(pseudoTypes()...))...)
}

// GetSteamInstallPaths returns the usual native, legacy-symlink and flatpak
// Steam locations that exist for the current user.
func GetSteamInstallPaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}

	candidates := []string{
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".var", "app", "com.valvesoftware.Steam", ".local", "share", "Steam"),
	}

	result := []string{}
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			result = append(result, candidate)
		}
	}

	return result
}
