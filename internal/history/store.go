// Package history owns the persisted calculation log: a bounded
// most-recent-first list of records plus the filter engine that narrows it.
package history

import "github.com/pr-poehali-dev/planeval/internal/model"

// MaxRecords caps the history log; appending beyond it drops the oldest.
const MaxRecords = 20

// Store is the persistence collaborator injected into the engine. Failures
// are non-fatal for callers: in-memory state stays authoritative for the
// session and a failed write is surfaced as a warning, never a crash.
type Store interface {
	// Load returns the persisted records, most recent first. Missing or
	// corrupt state yields an empty list, not an error.
	Load() ([]model.Record, error)
	// Append prepends a record and truncates to MaxRecords.
	Append(model.Record) error
	// Clear erases all persisted records.
	Clear() error
}

// KV is the side key-value surface used for small settings such as the
// reminder time.
type KV interface {
	GetKV(key string) (string, error)
	SetKV(key, value string) error
}

// Reminder time key in the KV surface, HH:MM.
const ReminderTimeKey = "reminder_time"

// MemoryStore is an in-memory Store and KV, used in tests and as the
// fallback when the on-disk database cannot be opened.
type MemoryStore struct {
	records []model.Record
	kv      map[string]string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{kv: make(map[string]string)}
}

// Load implements Store.
func (m *MemoryStore) Load() ([]model.Record, error) {
	out := make([]model.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Append implements Store.
func (m *MemoryStore) Append(rec model.Record) error {
	m.records = append([]model.Record{rec}, m.records...)
	if len(m.records) > MaxRecords {
		m.records = m.records[:MaxRecords]
	}
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear() error {
	m.records = nil
	return nil
}

// GetKV implements KV.
func (m *MemoryStore) GetKV(key string) (string, error) {
	return m.kv[key], nil
}

// SetKV implements KV.
func (m *MemoryStore) SetKV(key, value string) error {
	m.kv[key] = value
	return nil
}
