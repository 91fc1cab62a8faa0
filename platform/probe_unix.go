//go:build unix

package platform

import "golang.org/x/sys/unix"

func canList(path string) bool {
	return unix.Access(path, unix.R_OK|unix.X_OK) == nil
}
