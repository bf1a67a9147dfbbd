package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/shopsearch/internal/core/ports/driving"
	"github.com/custodia-labs/shopsearch/internal/logger"
)

// Ensure Autosaver implements the interface.
var _ driving.Autosaver = (*Autosaver)(nil)

// DefaultAutosaveInterval is how often long-running sessions persist state.
const DefaultAutosaveInterval = time.Minute

// Autosaver periodically persists engine state for long-running sessions
// (the MCP server and the TUI). A final save runs when it stops.
type Autosaver struct {
	profiles driving.ProfileService
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	done    chan struct{}

	statsMu  sync.Mutex
	saves    int
	lastErr  error
	lastSave time.Time
}

// NewAutosaver creates an autosaver. A non-positive interval uses the default.
func NewAutosaver(profiles driving.ProfileService, interval time.Duration) *Autosaver {
	if interval <= 0 {
		interval = DefaultAutosaveInterval
	}
	return &Autosaver{
		profiles: profiles,
		interval: interval,
	}
}

// Start runs the save loop. It blocks until Stop is called or ctx is done.
func (a *Autosaver) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return nil // Already running
	}
	a.running = true
	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	stopCh, done := a.stopCh, a.done
	a.mu.Unlock()

	defer close(done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.markStopped()
			a.save(context.WithoutCancel(ctx))
			return ctx.Err()
		case <-stopCh:
			a.save(ctx)
			return nil
		case <-ticker.C:
			a.save(ctx)
		}
	}
}

// Stop ends the loop and waits for the final save.
func (a *Autosaver) Stop() {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return
	}
	a.running = false
	close(a.stopCh)
	done := a.done
	a.mu.Unlock()

	<-done
}

// Stats reports how many saves ran and the most recent outcome.
func (a *Autosaver) Stats() (saves int, lastSave time.Time, lastErr error) {
	a.statsMu.Lock()
	defer a.statsMu.Unlock()
	return a.saves, a.lastSave, a.lastErr
}

func (a *Autosaver) markStopped() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.running = false
}

func (a *Autosaver) save(ctx context.Context) {
	err := a.profiles.Persist(ctx)
	if err != nil {
		logger.Warn("autosave failed: %v", err)
	}

	a.statsMu.Lock()
	defer a.statsMu.Unlock()
	a.saves++
	a.lastErr = err
	a.lastSave = time.Now()
}
