// Package remind arms a daily notification at a configured wall-clock time.
package remind

import (
	"fmt"
	"sync"
	"time"

	"github.com/pr-poehali-dev/planeval/internal/history"
	"github.com/pr-poehali-dev/planeval/internal/notify"
)

// timeLayout is the accepted reminder time format, e.g. "09:00".
const timeLayout = "15:04"

// Scheduler owns a single reminder timer. Rescheduling always cancels the
// previous timer first, so at most one reminder is armed at a time.
type Scheduler struct {
	kv       history.KV
	notifier *notify.Notifier
	now      func() time.Time

	mu    sync.Mutex
	timer *time.Timer
}

// NewScheduler returns a scheduler persisting its time through the given kv
// store and delivering through the given notifier.
func NewScheduler(kv history.KV, notifier *notify.Notifier) *Scheduler {
	return &Scheduler{kv: kv, notifier: notifier, now: time.Now}
}

// ParseTime validates an HH:MM reminder time.
func ParseTime(value string) error {
	if _, err := time.Parse(timeLayout, value); err != nil {
		return fmt.Errorf("invalid reminder time %q, want HH:MM", value)
	}
	return nil
}

// NextFire returns the next occurrence of the HH:MM wall-clock time strictly
// after now. Today's occurrence counts only if it is still ahead.
func NextFire(now time.Time, value string) (time.Time, error) {
	parsed, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reminder time %q, want HH:MM", value)
	}

	next := time.Date(now.Year(), now.Month(), now.Day(),
		parsed.Hour(), parsed.Minute(), 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}

// Reschedule persists the reminder time and arms the timer for its next
// occurrence. Any previously armed timer is stopped first.
func (s *Scheduler) Reschedule(value string) (time.Time, error) {
	next, err := NextFire(s.now(), value)
	if err != nil {
		return time.Time{}, err
	}
	if err := s.kv.SetKV(history.ReminderTimeKey, value); err != nil {
		return time.Time{}, fmt.Errorf("persist reminder time: %w", err)
	}

	s.arm(next.Sub(s.now()), value)
	return next, nil
}

// Resume re-arms the timer from the persisted reminder time, if any. It
// reports whether a reminder was armed.
func (s *Scheduler) Resume() (bool, error) {
	value, err := s.kv.GetKV(history.ReminderTimeKey)
	if err != nil {
		return false, fmt.Errorf("load reminder time: %w", err)
	}
	if value == "" {
		return false, nil
	}
	if _, err := s.Reschedule(value); err != nil {
		return false, err
	}
	return true, nil
}

// Stop cancels the armed timer, if any.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// StoredTime returns the persisted reminder time, empty when none is set.
func (s *Scheduler) StoredTime() (string, error) {
	return s.kv.GetKV(history.ReminderTimeKey)
}

func (s *Scheduler) arm(d time.Duration, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(d, func() {
		title, message := notify.FormatReminder()
		_ = s.notifier.Send(title, message)
		// Fire again tomorrow at the same time.
		if next, err := NextFire(s.now(), value); err == nil {
			s.arm(next.Sub(s.now()), value)
		}
	})
}
