package core

import (
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// Log is shared by every component. Output is discarded until one of the
// InitLogging functions points it at a file.
var Log = newDiscardLogger()

const DefaultLogPath = "jbpatch.log"

func newDiscardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.InfoLevel)
	return l
}

func InitLoggingWithDefaultPath(verbose bool) error {
	path, err := os.UserCacheDir()
	if err != nil {
		return err
	}

	return InitLoggingWithPath(filepath.Join(path, DefaultLogPath), verbose)
}

func InitLoggingWithPath(path string, verbose bool) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return err
	}

	Log.SetOutput(file)
	Log.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	if verbose {
		Log.SetLevel(logrus.DebugLevel)
	} else {
		Log.SetLevel(logrus.InfoLevel)
	}

	Log.WithFields(logrus.Fields{"path": path, "level": Log.GetLevel()}).Info("Logging enabled")
	return nil
}
