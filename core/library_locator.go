package core

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/samber/oops"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"jbpatch/platform"
)

const SteamAppsDir = "steamapps"

type LocateKind int

const (
	LocateExplicit LocateKind = iota
	LocateAuto
	LocateSteam
)

func (k LocateKind) String() string {
	switch k {
	case LocateExplicit:
		return "explicit"
	case LocateAuto:
		return "auto"
	case LocateSteam:
		return "steam"
	default:
		return "unknown"
	}
}

// LocateMode selects how library directories are found. Root is only used by
// LocateExplicit.
type LocateMode struct {
	Kind LocateKind
	Root string
}

func ExplicitMode(root string) LocateMode {
	return LocateMode{Kind: LocateExplicit, Root: root}
}

func AutoMode() LocateMode {
	return LocateMode{Kind: LocateAuto}
}

func SteamMode() LocateMode {
	return LocateMode{Kind: LocateSteam}
}

// ParseLocateMode maps "auto" and "steam" to their modes and anything else to
// an explicit root.
func ParseLocateMode(s string) LocateMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto":
		return AutoMode()
	case "steam":
		return SteamMode()
	default:
		return ExplicitMode(s)
	}
}

// StorageRootProvider supplies the roots an auto search walks, plus paths the
// walk must not enter.
type StorageRootProvider interface {
	Roots() []string
	Excluded() []string
}

// VolumeRootProvider enumerates the host's drives or mounts.
type VolumeRootProvider struct{}

func (VolumeRootProvider) Roots() []string {
	return platform.GetStorageRoots()
}

func (VolumeRootProvider) Excluded() []string {
	return platform.GetExcludedPaths()
}

// FixedRootProvider walks a fixed list of directories.
type FixedRootProvider struct {
	Paths []string
}

func (p FixedRootProvider) Roots() []string {
	return p.Paths
}

func (p FixedRootProvider) Excluded() []string {
	return nil
}

type LibraryLocator struct {
	fs            LocalFs
	roots         StorageRootProvider
	steamInstalls func() []string
	log           logrus.FieldLogger
}

type LocatorOption func(*LibraryLocator)

func WithRootProvider(p StorageRootProvider) LocatorOption {
	return func(l *LibraryLocator) {
		l.roots = p
	}
}

func WithSteamInstalls(fn func() []string) LocatorOption {
	return func(l *LibraryLocator) {
		l.steamInstalls = fn
	}
}

func NewLibraryLocator(lfs LocalFs, log logrus.FieldLogger, opts ...LocatorOption) *LibraryLocator {
	if lfs == nil {
		lfs = GetDefaultLocalFs()
	}
	if log == nil {
		log = Log
	}

	l := &LibraryLocator{
		fs:            lfs,
		roots:         VolumeRootProvider{},
		steamInstalls: platform.GetSteamInstallPaths,
		log:           log,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Locate returns the steamapps directories to search. Explicit mode does not
// check that the directory exists.
func (l *LibraryLocator) Locate(ctx context.Context, mode LocateMode) []string {
	switch mode.Kind {
	case LocateExplicit:
		return []string{filepath.Join(mode.Root, SteamAppsDir)}
	case LocateAuto:
		return l.locateAuto(ctx)
	case LocateSteam:
		return l.locateSteam()
	default:
		l.log.WithField("mode", mode.Kind).Error("Unknown locate mode")
		return nil
	}
}

func (l *LibraryLocator) locateAuto(ctx context.Context) []string {
	roots := l.roots.Roots()

	excluded := map[string]bool{}
	for _, path := range l.roots.Excluded() {
		excluded[filepath.Clean(path)] = true
	}
	// Nested roots are walked on their own.
	for _, root := range roots {
		excluded[filepath.Clean(root)] = true
	}

	var mu sync.Mutex
	result := []string{}

	var g errgroup.Group
	for _, root := range roots {
		root := filepath.Clean(root)
		g.Go(func() error {
			l.log.WithField("root", root).Info("Searching storage root")
			l.walk(ctx, root, excluded, func(path string) {
				mu.Lock()
				defer mu.Unlock()
				result = append(result, path)
			})
			return nil
		})
	}
	_ = g.Wait()

	return result
}

// walk visits every directory below dir without following symlinks and
// reports each one named steamapps, including a symlink to a directory.
// Unreadable directories are skipped.
func (l *LibraryLocator) walk(ctx context.Context, dir string, excluded map[string]bool, found func(string)) {
	if ctx.Err() != nil {
		return
	}

	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		l.log.WithError(oops.With("path", dir).Wrapf(ErrDiscoveryAccess, "%v", err)).
			WithField("path", dir).Debug("Skipping unreadable directory")
		if len(entries) == 0 {
			return
		}
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if excluded[path] {
			continue
		}

		// A linked steamapps counts as a library, but links are never descended.
		if entry.Type()&fs.ModeSymlink != 0 {
			if entry.Name() == SteamAppsDir && isDir(l.fs, entry, path) {
				l.log.WithField("path", path).Info("Found linked library")
				found(path)
			}
			continue
		}

		if !entry.IsDir() {
			continue
		}

		if entry.Name() == SteamAppsDir {
			l.log.WithField("path", path).Info("Found library")
			found(path)
		}

		l.walk(ctx, path, excluded, found)
	}
}

func (l *LibraryLocator) locateSteam() []string {
	seen := map[string]bool{}
	result := []string{}
	add := func(path string) {
		path = filepath.Clean(path)
		if seen[path] {
			return
		}
		seen[path] = true
		result = append(result, path)
	}

	for _, install := range l.steamInstalls() {
		steamApps := filepath.Join(install, SteamAppsDir)
		add(steamApps)

		folders, err := ReadLibraryFolders(l.fs, filepath.Join(steamApps, LibraryFoldersFile))
		if err != nil {
			l.log.WithError(err).WithField("install", install).Info("Could not read library folders")
			continue
		}

		for _, folder := range folders {
			l.log.WithFields(logrus.Fields{
				"path":  folder.Path,
				"label": folder.Label,
				"apps":  len(folder.Apps),
			}).Debug("Steam library folder")
			add(filepath.Join(folder.Path, SteamAppsDir))
		}
	}

	return result
}
