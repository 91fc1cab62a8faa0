package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateExplicit(t *testing.T) {
	locator := NewLibraryLocator(nil, nil)

	libraries := locator.Locate(context.Background(), ExplicitMode("/games/Steam"))
	assert.Equal(t, []string{filepath.Join("/games/Steam", SteamAppsDir)}, libraries)

	// Explicit roots are not checked for existence.
	missing := filepath.Join(t.TempDir(), "nope")
	assert.Equal(t, []string{filepath.Join(missing, SteamAppsDir)}, locator.Locate(context.Background(), ExplicitMode(missing)))
}

func TestLocateAuto(t *testing.T) {
	rootA := t.TempDir()
	rootB := t.TempDir()

	mkdirTest(t, filepath.Join(rootA, "Steam", SteamAppsDir, CommonDir))
	mkdirTest(t, filepath.Join(rootA, "deep", "er", "Library", SteamAppsDir))
	mkdirTest(t, filepath.Join(rootA, "other", "steamapps-backup"))
	mkdirTest(t, filepath.Join(rootB, SteamAppsDir, "nested", SteamAppsDir))
	writeTestFile(t, filepath.Join(rootB, "file", SteamAppsDir), "a file, not a library")
	require.NoError(t, os.Symlink(filepath.Join(rootA, "Steam"), filepath.Join(rootB, "linked")))

	// steamapps moved to another drive and linked back.
	moved := t.TempDir()
	mkdirTest(t, filepath.Join(moved, "inner", SteamAppsDir))
	mkdirTest(t, filepath.Join(rootA, "Linked Steam"))
	require.NoError(t, os.Symlink(moved, filepath.Join(rootA, "Linked Steam", SteamAppsDir)))
	writeTestFile(t, filepath.Join(moved, "notes.txt"), "")
	mkdirTest(t, filepath.Join(rootB, "Dangling"))
	require.NoError(t, os.Symlink(filepath.Join(moved, "notes.txt"), filepath.Join(rootB, "Dangling", SteamAppsDir)))

	locator := NewLibraryLocator(nil, nil, WithRootProvider(FixedRootProvider{Paths: []string{rootA, rootB}}))
	libraries := locator.Locate(context.Background(), AutoMode())

	expected := []string{
		filepath.Join(rootA, "Steam", SteamAppsDir),
		filepath.Join(rootA, "deep", "er", "Library", SteamAppsDir),
		filepath.Join(rootA, "Linked Steam", SteamAppsDir),
		filepath.Join(rootB, SteamAppsDir),
		filepath.Join(rootB, SteamAppsDir, "nested", SteamAppsDir),
	}
	if diff := cmp.Diff(expected, libraries, cmpopts.SortSlices(func(a, b string) bool { return a < b })); diff != "" {
		t.Errorf("Locate(auto) mismatch (-want +got):\n%s", diff)
	}
}

func TestLocateAutoSkipsUnreadableDirectories(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := t.TempDir()
	mkdirTest(t, filepath.Join(root, "open", SteamAppsDir))
	locked := filepath.Join(root, "locked")
	mkdirTest(t, filepath.Join(locked, SteamAppsDir))
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { os.Chmod(locked, 0755) })

	locator := NewLibraryLocator(nil, nil, WithRootProvider(FixedRootProvider{Paths: []string{root}}))
	assert.Equal(t, []string{filepath.Join(root, "open", SteamAppsDir)}, locator.Locate(context.Background(), AutoMode()))
}

func TestLocateAutoDoesNotEnterOtherRoots(t *testing.T) {
	outer := t.TempDir()
	inner := filepath.Join(outer, "mnt")
	mkdirTest(t, filepath.Join(inner, SteamAppsDir))

	locator := NewLibraryLocator(nil, nil, WithRootProvider(FixedRootProvider{Paths: []string{outer, inner}}))
	assert.Equal(t, []string{filepath.Join(inner, SteamAppsDir)}, locator.Locate(context.Background(), AutoMode()))
}

func TestLocateAutoCancelled(t *testing.T) {
	root := t.TempDir()
	mkdirTest(t, filepath.Join(root, "Steam", SteamAppsDir))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	locator := NewLibraryLocator(nil, nil, WithRootProvider(FixedRootProvider{Paths: []string{root}}))
	assert.Empty(t, locator.Locate(ctx, AutoMode()))
}

const libraryFoldersTemplate = `"libraryfolders"
{
	"0"
	{
		"path"		"%s"
		"label"		""
		"apps"
		{
			"1211020"		"1234567"
		}
	}
	"1"
	{
		"path"		"%s"
		"label"		"Games"
	}
}
`

const legacyLibraryFoldersTemplate = `"LibraryFolders"
{
	"TimeNextStatsReport"		"1633425542"
	"ContentStatsID"		"-1234567890"
	"1"		"%s"
}
`

func TestLocateSteam(t *testing.T) {
	install := t.TempDir()
	extra := t.TempDir()
	writeTestFile(t, filepath.Join(install, SteamAppsDir, LibraryFoldersFile), fmt.Sprintf(libraryFoldersTemplate, install, extra))

	locator := NewLibraryLocator(nil, nil, WithSteamInstalls(func() []string { return []string{install} }))
	libraries := locator.Locate(context.Background(), SteamMode())

	assert.Equal(t, []string{
		filepath.Join(install, SteamAppsDir),
		filepath.Join(extra, SteamAppsDir),
	}, libraries)
}

func TestLocateSteamLegacyLayout(t *testing.T) {
	install := t.TempDir()
	extra := t.TempDir()
	writeTestFile(t, filepath.Join(install, SteamAppsDir, LibraryFoldersFile), fmt.Sprintf(legacyLibraryFoldersTemplate, extra))

	locator := NewLibraryLocator(nil, nil, WithSteamInstalls(func() []string { return []string{install, install} }))
	libraries := locator.Locate(context.Background(), SteamMode())

	assert.Equal(t, []string{
		filepath.Join(install, SteamAppsDir),
		filepath.Join(extra, SteamAppsDir),
	}, libraries)
}

func TestLocateSteamWithoutLibraryFile(t *testing.T) {
	install := t.TempDir()

	locator := NewLibraryLocator(nil, nil, WithSteamInstalls(func() []string { return []string{install} }))
	assert.Equal(t, []string{filepath.Join(install, SteamAppsDir)}, locator.Locate(context.Background(), SteamMode()))

	none := NewLibraryLocator(nil, nil, WithSteamInstalls(func() []string { return nil }))
	assert.Empty(t, none.Locate(context.Background(), SteamMode()))
}

func TestReadLibraryFolders(t *testing.T) {
	path := filepath.Join(t.TempDir(), LibraryFoldersFile)
	writeTestFile(t, path, fmt.Sprintf(libraryFoldersTemplate, "/data/Steam", "/mnt/games"))

	folders, err := ReadLibraryFolders(GetDefaultLocalFs(), path)
	require.NoError(t, err)

	expected := []LibraryFolder{
		{Path: "/data/Steam", Label: "", Apps: map[string]string{"1211020": "1234567"}},
		{Path: "/mnt/games", Label: "Games", Apps: map[string]string{}},
	}
	assert.Equal(t, expected, folders)
}

func TestReadLibraryFoldersRejectsOtherFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), LibraryFoldersFile)
	writeTestFile(t, path, "\"AppState\"\n{\n\t\"appid\"\t\t\"10\"\n}\n")

	_, err := ReadLibraryFolders(GetDefaultLocalFs(), path)
	assert.Error(t, err)
}

func TestParseLocateMode(t *testing.T) {
	assert.Equal(t, AutoMode(), ParseLocateMode("AUTO"))
	assert.Equal(t, SteamMode(), ParseLocateMode("steam"))
	assert.Equal(t, ExplicitMode("/home/me/.steam"), ParseLocateMode("/home/me/.steam"))
}
