package core

import (
	"io/fs"
	"os"
)

// LocalFs is the slice of the filesystem the pipeline touches. Tests swap in
// implementations that fail on purpose.
type LocalFs interface {
	ReadFile(path string) ([]byte, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	WriteFileAtomic(path string, data []byte, mode fs.FileMode) error
}

type DefaultLocalFs struct {
}

var defaultFs *DefaultLocalFs

func GetDefaultLocalFs() *DefaultLocalFs {
	if defaultFs == nil {
		defaultFs = &DefaultLocalFs{}
	}

	return defaultFs
}

func (d *DefaultLocalFs) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (d *DefaultLocalFs) ReadDir(path string) ([]fs.DirEntry, error) {
	return os.ReadDir(path)
}

func (d *DefaultLocalFs) Stat(path string) (fs.FileInfo, error) {
	return os.Stat(path)
}

// WriteFileAtomic replaces path with data so that readers see either the old
// or the new contents, never a truncated file.
func (d *DefaultLocalFs) WriteFileAtomic(path string, data []byte, mode fs.FileMode) error {
	return writeFileAtomic(path, data, mode)
}
