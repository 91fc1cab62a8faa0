package core

import (
	"io/fs"
	"strings"

	"github.com/samber/oops"
)

const (
	ServerUrlKey   = "serverUrl"
	ConfigFileName = "jbg.config.jet"

	defaultConfigMode fs.FileMode = 0644
)

type Action int

const (
	ActionApply Action = iota
	ActionRemove
)

func (a Action) String() string {
	switch a {
	case ActionApply:
		return "apply"
	case ActionRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// ParseAction accepts "apply"/"patch" and "remove"/"unpatch".
func ParseAction(s string) (Action, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "apply", "patch":
		return ActionApply, nil
	case "remove", "unpatch":
		return ActionRemove, nil
	default:
		return 0, oops.Errorf("unknown action %q", s)
	}
}

type OutcomeKind int

const (
	Unchanged OutcomeKind = iota
	Patched
	Cleared
	ReadError
)

func (k OutcomeKind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Patched:
		return "patched"
	case Cleared:
		return "cleared"
	case ReadError:
		return "read error"
	default:
		return "unknown"
	}
}

type PatchOutcome struct {
	Kind OutcomeKind
	Path string
	// Err is set for ReadError and wraps ErrConfigParse or ErrConfigWrite.
	Err error
}

// Mutated reports whether the file on disk was changed.
func (o PatchOutcome) Mutated() bool {
	return o.Kind == Patched || o.Kind == Cleared
}

type ConfigPatcher struct {
	fs LocalFs
}

func NewConfigPatcher(lfs LocalFs) *ConfigPatcher {
	if lfs == nil {
		lfs = GetDefaultLocalFs()
	}

	return &ConfigPatcher{fs: lfs}
}

// Patch applies or removes the serverUrl override in a single config file.
// An existing serverUrl is never overwritten. The file is only rewritten when
// its contents change.
func (p *ConfigPatcher) Patch(path string, serverUrl string, action Action) PatchOutcome {
	content, err := p.fs.ReadFile(path)
	if err != nil {
		return PatchOutcome{Kind: ReadError, Path: path, Err: oops.With("path", path).Wrapf(ErrConfigParse, "read failed: %v", err)}
	}

	doc, err := ParseConfigDocument(content)
	if err != nil {
		return PatchOutcome{Kind: ReadError, Path: path, Err: oops.With("path", path).Wrapf(ErrConfigParse, "%v", err)}
	}

	kind := Unchanged
	switch action {
	case ActionApply:
		if !doc.Has(ServerUrlKey) {
			if err := doc.Set(ServerUrlKey, serverUrl); err != nil {
				return PatchOutcome{Kind: ReadError, Path: path, Err: oops.With("path", path).Wrapf(ErrConfigWrite, "%v", err)}
			}
			kind = Patched
		}
	case ActionRemove:
		if doc.Delete(ServerUrlKey) {
			kind = Cleared
		}
	}

	if kind == Unchanged {
		return PatchOutcome{Kind: Unchanged, Path: path}
	}

	if err := p.write(path, doc); err != nil {
		return PatchOutcome{Kind: ReadError, Path: path, Err: oops.With("path", path).Wrapf(ErrConfigWrite, "%v", err)}
	}

	return PatchOutcome{Kind: kind, Path: path}
}

func (p *ConfigPatcher) write(path string, doc *ConfigDocument) error {
	data, err := doc.MarshalIndent()
	if err != nil {
		return err
	}

	mode := defaultConfigMode
	if info, err := p.fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	return p.fs.WriteFileAtomic(path, data, mode)
}
