package remind

import (
	"testing"
	"time"

	"github.com/pr-poehali-dev/planeval/internal/history"
	"github.com/pr-poehali-dev/planeval/internal/notify"
)

func TestParseTime(t *testing.T) {
	for _, valid := range []string{"00:00", "09:00", "23:59"} {
		if err := ParseTime(valid); err != nil {
			t.Errorf("ParseTime(%q) = %v, want nil", valid, err)
		}
	}
	for _, invalid := range []string{"", "9", "24:00", "12:60", "noon", "12:00:00"} {
		if err := ParseTime(invalid); err == nil {
			t.Errorf("ParseTime(%q) succeeded, want error", invalid)
		}
	}
}

func TestNextFire(t *testing.T) {
	now := time.Date(2025, 6, 15, 14, 30, 0, 0, time.Local)

	// Later today.
	next, err := NextFire(now, "18:00")
	if err != nil {
		t.Fatalf("NextFire: %v", err)
	}
	want := time.Date(2025, 6, 15, 18, 0, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Fatalf("next = %v, want %v", next, want)
	}

	// Already passed today, rolls to tomorrow.
	next, err = NextFire(now, "09:00")
	if err != nil {
		t.Fatalf("NextFire: %v", err)
	}
	want = time.Date(2025, 6, 16, 9, 0, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Fatalf("next = %v, want %v", next, want)
	}

	// Exactly now counts as passed.
	next, err = NextFire(now, "14:30")
	if err != nil {
		t.Fatalf("NextFire: %v", err)
	}
	want = time.Date(2025, 6, 16, 14, 30, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Fatalf("next = %v, want %v", next, want)
	}
}

func TestReschedulePersistsAndReplaces(t *testing.T) {
	kv := history.NewMemoryStore()
	s := NewScheduler(kv, &notify.Notifier{})
	fixed := time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local)
	s.now = func() time.Time { return fixed }

	if _, err := s.Reschedule("09:00"); err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	// A second schedule replaces the first rather than stacking.
	next, err := s.Reschedule("18:30")
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if !next.Equal(time.Date(2025, 6, 15, 18, 30, 0, 0, time.Local)) {
		t.Fatalf("next = %v", next)
	}

	stored, err := s.StoredTime()
	if err != nil {
		t.Fatalf("StoredTime: %v", err)
	}
	if stored != "18:30" {
		t.Fatalf("stored time = %q, want 18:30", stored)
	}

	s.Stop()
	s.mu.Lock()
	if s.timer != nil {
		t.Fatal("timer still armed after Stop")
	}
	s.mu.Unlock()
}

func TestRescheduleRejectsInvalidTime(t *testing.T) {
	kv := history.NewMemoryStore()
	s := NewScheduler(kv, &notify.Notifier{})

	if _, err := s.Reschedule("25:99"); err == nil {
		t.Fatal("invalid time accepted")
	}
	stored, _ := s.StoredTime()
	if stored != "" {
		t.Fatalf("invalid time was persisted as %q", stored)
	}
}

func TestResume(t *testing.T) {
	kv := history.NewMemoryStore()
	s := NewScheduler(kv, &notify.Notifier{})

	armed, err := s.Resume()
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if armed {
		t.Fatal("Resume armed a timer with no stored time")
	}

	if err := kv.SetKV(history.ReminderTimeKey, "10:00"); err != nil {
		t.Fatalf("SetKV: %v", err)
	}
	armed, err = s.Resume()
	if err != nil {
		t.Fatalf("Resume: %v", err)
	}
	if !armed {
		t.Fatal("Resume did not arm from the stored time")
	}
	s.Stop()
}
