package core

import (
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"
)

const (
	CommonDir = "common"

	// PackagePattern matches any directory name containing "Jackbox".
	PackagePattern = `(?i)^.*Jackbox.*$`
)

type PackageMatcher struct {
	fs      LocalFs
	pattern *regexp.Regexp
	log     logrus.FieldLogger
}

func NewPackageMatcher(lfs LocalFs, log logrus.FieldLogger) *PackageMatcher {
	if lfs == nil {
		lfs = GetDefaultLocalFs()
	}
	if log == nil {
		log = Log
	}

	return &PackageMatcher{
		fs:      lfs,
		pattern: regexp.MustCompile(PackagePattern),
		log:     log,
	}
}

// MatchName reports whether a package directory name belongs to the family.
func (m *PackageMatcher) MatchName(name string) bool {
	return m.pattern.MatchString(name)
}

// Match returns the matching package directories under library/common. A
// missing or unreadable common directory yields nothing.
func (m *PackageMatcher) Match(library string) []string {
	commonPath := filepath.Join(library, CommonDir)
	entries, err := m.fs.ReadDir(commonPath)
	if err != nil {
		m.log.WithField("path", commonPath).WithError(err).Debug("No common directory in library")
		return nil
	}

	result := []string{}
	for _, entry := range entries {
		if !m.MatchName(entry.Name()) {
			continue
		}

		path := filepath.Join(commonPath, entry.Name())
		if !isDir(m.fs, entry, path) {
			continue
		}

		result = append(result, path)
	}

	return result
}
