//go:build !windows

package core

import (
	"io/fs"

	"github.com/google/renameio/v2"
)

// An existing file keeps its permissions; mode applies to new files.
func writeFileAtomic(path string, data []byte, mode fs.FileMode) error {
	return renameio.WriteFile(path, data, mode)
}
