package history

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/pr-poehali-dev/planeval/internal/model"
)

func testRecord(i int, created time.Time) model.Record {
	final := float64(50 + i)
	return model.Record{
		ID:                   fmt.Sprintf("rec-%03d", i),
		Plan:                 200,
		Fact:                 float64(100 + i),
		Percentage:           float64(50 + i),
		AdditionalPercentage: 0,
		FinalPercentage:      &final,
		Score:                3,
		Date:                 created.Format(model.DisplayDateFormat),
		CreatedAt:            created,
	}
}

func TestMemoryStoreCapsAtMaxRecords(t *testing.T) {
	s := NewMemoryStore()
	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	for i := 0; i < MaxRecords+1; i++ {
		if err := s.Append(testRecord(i, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	records, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != MaxRecords {
		t.Fatalf("len = %d, want %d", len(records), MaxRecords)
	}
	// Most recent first; the very first record has been dropped.
	if records[0].ID != "rec-020" {
		t.Fatalf("newest id = %s, want rec-020", records[0].ID)
	}
	if records[len(records)-1].ID != "rec-001" {
		t.Fatalf("oldest id = %s, want rec-001 (rec-000 dropped)", records[len(records)-1].ID)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = s.Close() }()

	created := time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)
	rec := testRecord(1, created)
	if err := s.Append(rec); err != nil {
		t.Fatalf("Append: %v", err)
	}

	records, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len = %d, want 1", len(records))
	}

	got := records[0]
	if got.ID != rec.ID || got.Plan != rec.Plan || got.Fact != rec.Fact {
		t.Fatalf("record fields lost in round trip: %+v", got)
	}
	if got.FinalPercentage == nil || *got.FinalPercentage != *rec.FinalPercentage {
		t.Fatal("final percentage lost in round trip")
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created at = %v, want %v", got.CreatedAt, created)
	}
}

func TestSQLiteStorePrunesOldest(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = s.Close() }()

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < MaxRecords+5; i++ {
		if err := s.Append(testRecord(i, base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatalf("Append %d: %v", i, err)
		}
	}

	count, err := s.RecordCount()
	if err != nil {
		t.Fatalf("RecordCount: %v", err)
	}
	if count != MaxRecords {
		t.Fatalf("count = %d, want %d", count, MaxRecords)
	}

	records, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if records[0].ID != "rec-024" {
		t.Fatalf("newest id = %s, want rec-024", records[0].ID)
	}
}

func TestSQLiteStoreClear(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = s.Close() }()

	if err := s.Append(testRecord(1, time.Now())); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	records, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("len after clear = %d, want 0", len(records))
	}
}

func TestSQLiteStoreKV(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	s, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = s.Close() }()

	// Absent key reads as empty, never as an error.
	v, err := s.GetKV(ReminderTimeKey)
	if err != nil {
		t.Fatalf("GetKV: %v", err)
	}
	if v != "" {
		t.Fatalf("GetKV on empty db = %q, want empty", v)
	}

	if err := s.SetKV(ReminderTimeKey, "09:00"); err != nil {
		t.Fatalf("SetKV: %v", err)
	}
	if err := s.SetKV(ReminderTimeKey, "18:30"); err != nil {
		t.Fatalf("SetKV overwrite: %v", err)
	}

	v, err = s.GetKV(ReminderTimeKey)
	if err != nil {
		t.Fatalf("GetKV: %v", err)
	}
	if v != "18:30" {
		t.Fatalf("GetKV = %q, want 18:30", v)
	}
}
