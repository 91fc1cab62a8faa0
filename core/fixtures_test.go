package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, path string, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func mkdirTest(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(path, 0755))
}

// makeSteamRoot lays out root/steamapps/common/<package>/games/<title>/jbg.config.jet
// for each config given as "package/title" => content.
func makeSteamRoot(t *testing.T, root string, configs map[string]string) {
	t.Helper()
	common := filepath.Join(root, SteamAppsDir, CommonDir)
	mkdirTest(t, common)
	for rel, content := range configs {
		pkg, title := filepath.Split(rel)
		path := filepath.Join(common, filepath.Clean(pkg), GamesDir, title, ConfigFileName)
		writeTestFile(t, path, content)
	}
}

func readTestFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
