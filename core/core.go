package core

import (
	"context"
	_ "embed"
	"fmt"
	"path/filepath"
	"strings"
)

//go:embed version.txt
var VersionRevision string

const APP_NAME = "jbpatch"

type EventKind int

const (
	EventStarted EventKind = iota
	EventLibrariesLocated
	EventPackagesMatched
	EventConfigsFound
	EventFileProcessed
	EventDone
)

// Event is one progress report from a running session. Exactly one event with
// Finished set is sent, and it is always the last.
type Event struct {
	Kind     EventKind
	Finished bool
	Message  string
	Err      error

	// Outcome and DisplayPath are set on EventFileProcessed.
	Outcome     *PatchOutcome
	DisplayPath string

	// Count is the number of items found for discovery events and the number
	// of changed files for EventDone.
	Count int
}

type ChannelProvider struct {
	Events chan Event
	Cancel context.CancelFunc
}

func MakeDefaultChannelProvider() *ChannelProvider {
	return &ChannelProvider{
		Events: make(chan Event, 100),
		Cancel: nil,
	}
}

func MakeChannelProviderWithCancelFunction(cancelFn context.CancelFunc) *ChannelProvider {
	provider := MakeDefaultChannelProvider()
	provider.Cancel = cancelFn
	return provider
}

// DisplayPath returns the part of a config path after its games directory,
// e.g. "Quiplash/jbg.config.jet".
func DisplayPath(path string) string {
	sep := string(filepath.Separator)
	marker := sep + GamesDir + sep
	if i := strings.LastIndex(path, marker); i >= 0 {
		return path[i+len(marker):]
	}

	return path
}

func fileEvent(outcome PatchOutcome) Event {
	display := DisplayPath(outcome.Path)
	event := Event{
		Kind:        EventFileProcessed,
		Outcome:     &outcome,
		DisplayPath: display,
	}

	if outcome.Kind == ReadError {
		event.Err = outcome.Err
		event.Message = fmt.Sprintf("Error reading file: %v", outcome.Path)
	} else {
		event.Message = fmt.Sprintf("Processed file: %v (%v)", display, outcome.Kind)
	}

	return event
}

func doneEvent(action Action, mutated int, cancelled bool) Event {
	label := "Patching complete"
	if action == ActionRemove {
		label = "Reset complete"
	}
	if cancelled {
		label += " (cancelled)"
	}

	return Event{
		Kind:     EventDone,
		Finished: true,
		Message:  fmt.Sprintf("%v. Files changed: %v", label, mutated),
		Count:    mutated,
	}
}

// ConsoleLogger prints every event until the finished one arrives, and
// returns that final event.
func ConsoleLogger(input <-chan Event, print func(string)) Event {
	for result := range input {
		if result.Err != nil {
			Log.WithError(result.Err).Warn(result.Message)
		} else {
			Log.Info(result.Message)
		}

		print(result.Message)
		if result.Finished {
			return result
		}
	}

	return Event{Kind: EventDone, Finished: true}
}
