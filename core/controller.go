package core

import (
	"context"
	"sync"
)

// Controller owns at most one running session at a time.
type Controller struct {
	mu     sync.Mutex
	active *PatchSession
}

func NewController() *Controller {
	return &Controller{}
}

// Start creates and starts a session for config. It returns ErrSessionActive
// while the previous session has not reached StateDone.
func (c *Controller) Start(ctx context.Context, config SessionConfig) (*PatchSession, <-chan Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active != nil && c.active.State() != StateDone {
		return nil, nil, ErrSessionActive
	}

	session := NewPatchSession(config)
	events, err := session.Start(ctx)
	if err != nil {
		return nil, nil, err
	}

	c.active = session
	return session, events, nil
}

// Busy reports whether a session is still running.
func (c *Controller) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.active != nil && c.active.State() != StateDone
}

// Cancel asks the running session, if any, to stop between files.
func (c *Controller) Cancel() {
	c.mu.Lock()
	active := c.active
	c.mu.Unlock()

	if active != nil {
		active.Cancel()
	}
}
