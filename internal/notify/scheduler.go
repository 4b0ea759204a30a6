// Package notify owns the single auto-hide timer behind the notification
// slice of the state tree.
package notify

import (
	"sync"
	"time"

	"github.com/blackwell-systems/catalogctl/internal/store"
)

// Scheduler shows notifications and arms their auto-hide. At most one
// notification is active; showing a new one supersedes the current and
// cancels its pending timer, so a stale hide can never fire against a newer
// notification.
type Scheduler struct {
	store *store.Store

	mu    sync.Mutex
	timer *time.Timer
	seq   uint64
}

// NewScheduler creates a scheduler dispatching into st.
func NewScheduler(st *store.Store) *Scheduler {
	return &Scheduler{store: st}
}

// Show dispatches the notification and arms its auto-hide timer.
// autoHide 0 applies the store default; pass a negative duration for a
// notification that stays until hidden explicitly.
func (s *Scheduler) Show(message string, severity store.Severity, autoHide time.Duration) {
	if autoHide == 0 {
		autoHide = store.DefaultAutoHide
	}

	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	seq := s.seq

	dispatched := store.NotificationShown{
		Message:  message,
		Severity: severity,
		AutoHide: autoHide,
	}
	if autoHide > 0 {
		s.timer = time.AfterFunc(autoHide, func() { s.hide(seq) })
	}
	s.mu.Unlock()

	s.store.Dispatch(dispatched)
}

// Hide dismisses the active notification and cancels its timer.
func (s *Scheduler) Hide() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	s.mu.Unlock()

	s.store.Dispatch(store.NotificationHidden{})
}

// Stop cancels any pending auto-hide without dispatching; called on
// teardown of the notification surface.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.seq++
	s.mu.Unlock()
}

// hide fires from the timer; a superseded timer is a no-op.
func (s *Scheduler) hide(seq uint64) {
	s.mu.Lock()
	if seq != s.seq {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	s.mu.Unlock()

	s.store.Dispatch(store.NotificationHidden{})
}
