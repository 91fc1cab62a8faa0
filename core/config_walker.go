package core

import (
	"io/fs"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const GamesDir = "games"

type ConfigWalker struct {
	fs  LocalFs
	log logrus.FieldLogger
}

func NewConfigWalker(lfs LocalFs, log logrus.FieldLogger) *ConfigWalker {
	if lfs == nil {
		lfs = GetDefaultLocalFs()
	}
	if log == nil {
		log = Log
	}

	return &ConfigWalker{fs: lfs, log: log}
}

// FindConfigs returns <packageFolder>/games/<title>/jbg.config.jet for every
// title that has one as a regular file.
func (w *ConfigWalker) FindConfigs(packageFolder string) []string {
	gamesPath := filepath.Join(packageFolder, GamesDir)
	entries, err := w.fs.ReadDir(gamesPath)
	if err != nil {
		w.log.WithField("path", gamesPath).WithError(err).Debug("No games directory in package")
		return nil
	}

	result := []string{}
	for _, entry := range entries {
		titlePath := filepath.Join(gamesPath, entry.Name())
		if !isDir(w.fs, entry, titlePath) {
			continue
		}

		configPath := filepath.Join(titlePath, ConfigFileName)
		info, err := w.fs.Stat(configPath)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}

		result = append(result, configPath)
	}

	return result
}

// isDir follows symlinks.
func isDir(lfs LocalFs, entry fs.DirEntry, path string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&fs.ModeSymlink == 0 {
		return false
	}

	info, err := lfs.Stat(path)
	return err == nil && info.IsDir()
}
