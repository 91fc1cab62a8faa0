//go:build linux

package platform

import (
	"testing"

	"github.com/moby/sys/mountinfo"
	"github.com/stretchr/testify/assert"
)

func TestRealMountsSkipsPseudoFilesystems(t *testing.T) {
	for fsType, isReal := range map[string]bool{
		"ext4":       true,
		"btrfs":      true,
		"fuse.sshfs": true,
		"proc":       false,
		"tmpfs":      false,
		"cgroup2":    false,
	} {
		skip, stop := realMounts(&mountinfo.Info{Mountpoint: "/mnt/x", FSType: fsType})
		assert.Equal(t, !isReal, skip, fsType)
		assert.False(t, stop)
	}
}

func TestGetStorageRootsIncludesSlash(t *testing.T) {
	roots := GetStorageRoots()
	assert.Contains(t, roots, "/")
}

func TestGetExcludedPathsCoversProc(t *testing.T) {
	assert.Contains(t, GetExcludedPaths(), "/proc")
}
