package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const DefaultWorkers = 4

type SessionState int

const (
	StateIdle SessionState = iota
	StateRunning
	StateDone
)

func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

type SessionConfig struct {
	Action    Action
	ServerUrl string
	Mode      LocateMode

	// Workers bounds how many files are patched at once. Zero means
	// DefaultWorkers.
	Workers int

	Fs             LocalFs
	Logger         logrus.FieldLogger
	LocatorOptions []LocatorOption
}

type PatchSessionResult struct {
	// Mutated counts Patched and Cleared outcomes.
	Mutated  int
	Outcomes []PatchOutcome
	// Cancelled is set when the context ended before the run finished.
	// Files that were not reached are absent from Outcomes.
	Cancelled bool
}

// PatchSession is a single apply or remove run. It moves from idle to running
// on Start and to done once the final event has been sent.
type PatchSession struct {
	config  SessionConfig
	log     logrus.FieldLogger
	locator *LibraryLocator
	matcher *PackageMatcher
	walker  *ConfigWalker
	patcher *ConfigPatcher

	// emitMu orders outcome recording with event sends. mu guards state and
	// result and is never held while sending.
	emitMu sync.Mutex
	mu     sync.Mutex
	state  SessionState
	result PatchSessionResult
	cancel context.CancelFunc
	done   chan struct{}
}

func NewPatchSession(config SessionConfig) *PatchSession {
	if config.Fs == nil {
		config.Fs = GetDefaultLocalFs()
	}
	if config.Logger == nil {
		config.Logger = Log
	}
	if config.Workers <= 0 {
		config.Workers = DefaultWorkers
	}

	log := config.Logger.WithFields(logrus.Fields{
		"action": config.Action,
		"mode":   config.Mode.Kind,
	})

	return &PatchSession{
		config:  config,
		log:     log,
		locator: NewLibraryLocator(config.Fs, log, config.LocatorOptions...),
		matcher: NewPackageMatcher(config.Fs, log),
		walker:  NewConfigWalker(config.Fs, log),
		patcher: NewConfigPatcher(config.Fs),
		done:    make(chan struct{}),
	}
}

func (s *PatchSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start runs the session in the background and returns its event stream. The
// channel is closed after the finished event. A session can only be started
// once.
func (s *PatchSession) Start(ctx context.Context) (<-chan Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return nil, ErrSessionStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	channels := MakeChannelProviderWithCancelFunction(cancel)
	s.cancel = channels.Cancel
	s.state = StateRunning

	go s.run(ctx, channels)

	return channels.Events, nil
}

// Cancel stops the session between files. It is a no-op unless running.
func (s *PatchSession) Cancel() {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Wait blocks until the session is done and returns its result. It does not
// read events: a caller of Start must drain the channel, or the session
// stalls once the buffer fills and Wait never returns. Run does both.
func (s *PatchSession) Wait() PatchSessionResult {
	<-s.done
	return s.Result()
}

func (s *PatchSession) Result() PatchSessionResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := s.result
	result.Outcomes = append([]PatchOutcome(nil), s.result.Outcomes...)
	return result
}

// Run starts the session, drains its events into sink (which may be nil) and
// returns the result.
func (s *PatchSession) Run(ctx context.Context, sink func(Event)) (PatchSessionResult, error) {
	events, err := s.Start(ctx)
	if err != nil {
		return PatchSessionResult{}, err
	}

	for event := range events {
		if sink != nil {
			sink(event)
		}
	}

	return s.Wait(), nil
}

func (s *PatchSession) run(ctx context.Context, channels *ChannelProvider) {
	events := channels.Events
	defer channels.Cancel()
	defer close(events)

	s.log.Info("Session started")
	events <- Event{Kind: EventStarted, Message: "Starting processing..."}

	libraries := s.locator.Locate(ctx, s.config.Mode)
	events <- Event{
		Kind:    EventLibrariesLocated,
		Message: fmt.Sprintf("Libraries found: %v", len(libraries)),
		Count:   len(libraries),
	}

	packages := []string{}
	for _, library := range libraries {
		if ctx.Err() != nil {
			break
		}
		packages = append(packages, s.matcher.Match(library)...)
	}
	events <- Event{
		Kind:    EventPackagesMatched,
		Message: fmt.Sprintf("Game packages found: %v", len(packages)),
		Count:   len(packages),
	}

	configs := []string{}
	for _, pkg := range packages {
		if ctx.Err() != nil {
			break
		}
		configs = append(configs, s.walker.FindConfigs(pkg)...)
	}
	events <- Event{
		Kind:    EventConfigsFound,
		Message: fmt.Sprintf("Config files found: %v", len(configs)),
		Count:   len(configs),
	}

	var g errgroup.Group
	g.SetLimit(s.config.Workers)
	for _, path := range configs {
		if ctx.Err() != nil {
			break
		}

		path := path
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}

			outcome := s.patcher.Patch(path, s.config.ServerUrl, s.config.Action)
			s.record(outcome, events)
			return nil
		})
	}
	_ = g.Wait()

	s.mu.Lock()
	cancelled := ctx.Err() != nil
	s.result.Cancelled = cancelled
	final := doneEvent(s.config.Action, s.result.Mutated, cancelled)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"mutated":   final.Count,
		"cancelled": cancelled,
	}).Info("Session finished")

	events <- final

	s.mu.Lock()
	s.state = StateDone
	s.mu.Unlock()
	close(s.done)
}

// record stores the outcome and sends its event, keeping the result in the
// order events were sent.
func (s *PatchSession) record(outcome PatchOutcome, events chan<- Event) {
	entry := s.log.WithField("path", outcome.Path)
	if outcome.Err != nil {
		entry.WithError(outcome.Err).Warn("Config file skipped")
	} else {
		entry.WithField("outcome", outcome.Kind).Debug("Config file processed")
	}

	s.emitMu.Lock()
	defer s.emitMu.Unlock()

	s.mu.Lock()
	s.result.Outcomes = append(s.result.Outcomes, outcome)
	if outcome.Mutated() {
		s.result.Mutated++
	}
	s.mu.Unlock()

	events <- fileEvent(outcome)
}
