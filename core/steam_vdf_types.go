package core

// LibraryFolder is one entry of steamapps/libraryfolders.vdf.
type LibraryFolder struct {
	Path  string
	Label string
	Apps  map[string]string
}
