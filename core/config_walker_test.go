package core

import (
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindConfigs(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "The Jackbox Party Pack")
	games := filepath.Join(pkg, GamesDir)

	writeTestFile(t, filepath.Join(games, "Quiplash", ConfigFileName), `{}`)
	writeTestFile(t, filepath.Join(games, "Fibbage", ConfigFileName), `{}`)
	writeTestFile(t, filepath.Join(games, "Drawful", "other.json"), `{}`)
	mkdirTest(t, filepath.Join(games, "Broken", ConfigFileName))
	writeTestFile(t, filepath.Join(games, "README"), "")
	writeTestFile(t, filepath.Join(games, "Deep", "nested", ConfigFileName), `{}`)

	configs := NewConfigWalker(nil, nil).FindConfigs(pkg)
	sort.Strings(configs)

	assert.Equal(t, []string{
		filepath.Join(games, "Fibbage", ConfigFileName),
		filepath.Join(games, "Quiplash", ConfigFileName),
	}, configs)
}

func TestFindConfigsWithoutGames(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "Jackbox Empty")
	mkdirTest(t, pkg)

	assert.Empty(t, NewConfigWalker(nil, nil).FindConfigs(pkg))
}
