package core

import "errors"

var (
	// ErrDiscoveryAccess marks a directory that could not be listed during
	// library discovery. The subtree is skipped.
	ErrDiscoveryAccess = errors.New("directory not accessible")

	// ErrConfigParse marks a config file that could not be read or is not a
	// JSON object.
	ErrConfigParse = errors.New("config file is not a valid JSON object")

	// ErrConfigWrite marks a config file whose rewrite failed after a
	// successful parse. The original contents are left in place.
	ErrConfigWrite = errors.New("config file could not be written")

	ErrSessionStarted = errors.New("session already started")
	ErrSessionActive  = errors.New("another session is still running")
)
