package core

import (
	"bytes"
	"sort"
	"strconv"
	"strings"

	"github.com/andygrunwald/vdf"
	"github.com/samber/oops"
)

const LibraryFoldersFile = "libraryfolders.vdf"

// ReadLibraryFolders parses a Steam libraryfolders.vdf file. Both the current
// layout (numbered blocks with a "path" key) and the legacy layout (numbered
// keys whose value is the path) are understood.
func ReadLibraryFolders(lfs LocalFs, path string) ([]LibraryFolder, error) {
	content, err := lfs.ReadFile(path)
	if err != nil {
		return nil, oops.Wrapf(err, "failed to read %s", path)
	}

	parser := vdf.NewParser(bytes.NewReader(content))
	parsed, err := parser.Parse()
	if err != nil {
		return nil, oops.Wrapf(err, "failed to parse %s", path)
	}

	var root map[string]interface{}
	for key, value := range parsed {
		if strings.EqualFold(key, "libraryfolders") {
			root, _ = value.(map[string]interface{})
		}
	}
	if root == nil {
		return nil, oops.Errorf("%s has no libraryfolders section", path)
	}

	keys := make([]string, 0, len(root))
	for key := range root {
		if _, err := strconv.Atoi(key); err == nil {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, _ := strconv.Atoi(keys[i])
		b, _ := strconv.Atoi(keys[j])
		return a < b
	})

	folders := []LibraryFolder{}
	for _, key := range keys {
		switch entry := root[key].(type) {
		case string:
			if entry != "" {
				folders = append(folders, LibraryFolder{Path: entry})
			}
		case map[string]interface{}:
			folder := LibraryFolder{Apps: map[string]string{}}
			folder.Path, _ = entry["path"].(string)
			folder.Label, _ = entry["label"].(string)
			if apps, ok := entry["apps"].(map[string]interface{}); ok {
				for id, size := range apps {
					folder.Apps[id], _ = size.(string)
				}
			}
			if folder.Path != "" {
				folders = append(folders, folder)
			}
		}
	}

	return folders, nil
}
