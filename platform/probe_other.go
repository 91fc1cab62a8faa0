//go:build !unix && !windows

package platform

import (
	"errors"
	"io"
	"os"
)

func canList(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	return err == nil || errors.Is(err, io.EOF)
}
