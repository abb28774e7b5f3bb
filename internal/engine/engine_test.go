package engine

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/pr-poehali-dev/planeval/internal/history"
	"github.com/pr-poehali-dev/planeval/internal/model"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateBasic(t *testing.T) {
	store := history.NewMemoryStore()
	e := New(store)

	res, ok := e.Calculate("200", "150", 0)
	if !ok {
		t.Fatal("Calculate returned !ok for valid input")
	}
	if !almostEqual(res.Percentage, 75) {
		t.Fatalf("Percentage = %.1f, want 75", res.Percentage)
	}
	if !almostEqual(res.FinalPercentage, 75) {
		t.Fatalf("FinalPercentage = %.1f, want 75", res.FinalPercentage)
	}
	if res.Score != 4 {
		t.Fatalf("Score = %d, want 4", res.Score)
	}

	records, _ := store.Load()
	if len(records) != 1 {
		t.Fatalf("store holds %d records, want 1", len(records))
	}
	rec := records[0]
	if rec.Plan != 200 || rec.Fact != 150 {
		t.Fatalf("record plan/fact = %.0f/%.0f, want 200/150", rec.Plan, rec.Fact)
	}
	if rec.FinalPercentage == nil || !almostEqual(*rec.FinalPercentage, 75) {
		t.Fatal("record final percentage missing or wrong")
	}
}

func TestCalculateAddsIndicatorAverage(t *testing.T) {
	e := New(history.NewMemoryStore())

	res, ok := e.Calculate("200", "150", 10)
	if !ok {
		t.Fatal("Calculate returned !ok")
	}
	if !almostEqual(res.Percentage, 75) {
		t.Fatalf("base = %.1f, want 75", res.Percentage)
	}
	if !almostEqual(res.FinalPercentage, 85) {
		t.Fatalf("final = %.1f, want 85", res.FinalPercentage)
	}
	if res.Score != 5 {
		t.Fatalf("score = %d, want 5 (85%% is band 5)", res.Score)
	}
}

func TestCalculateRejectsInvalidInput(t *testing.T) {
	store := history.NewMemoryStore()
	e := New(store)

	for _, tc := range []struct{ plan, fact string }{
		{"0", "10"},
		{"-5", "10"},
		{"abc", "10"},
		{"100", "xyz"},
		{"", ""},
	} {
		if _, ok := e.Calculate(tc.plan, tc.fact, 0); ok {
			t.Errorf("Calculate(%q, %q) succeeded, want rejection", tc.plan, tc.fact)
		}
	}

	records, _ := store.Load()
	if len(records) != 0 {
		t.Fatalf("rejected input still appended %d records", len(records))
	}
}

func TestCalculateNoClamping(t *testing.T) {
	e := New(history.NewMemoryStore())

	res, ok := e.Calculate("100", "250", 0)
	if !ok || !almostEqual(res.Percentage, 250) {
		t.Fatalf("overfulfilled plan = %.1f, want 250", res.Percentage)
	}

	res, ok = e.Calculate("100", "-50", 0)
	if !ok || !almostEqual(res.Percentage, -50) {
		t.Fatalf("negative fact = %.1f, want -50", res.Percentage)
	}
	if res.Score != 0 {
		t.Fatalf("negative percentage score = %d, want 0", res.Score)
	}
}

type failingStore struct{}

func (failingStore) Load() ([]model.Record, error) { return nil, errors.New("store down") }
func (failingStore) Append(model.Record) error     { return errors.New("store down") }
func (failingStore) Clear() error                  { return errors.New("store down") }

func TestCalculateSurvivesPersistenceFailure(t *testing.T) {
	var warned error
	e := New(failingStore{}, WithWarn(func(err error) { warned = err }))

	res, ok := e.Calculate("200", "150", 0)
	if !ok {
		t.Fatal("persistence failure must not fail the calculation")
	}
	if !almostEqual(res.Percentage, 75) {
		t.Fatalf("Percentage = %.1f, want 75", res.Percentage)
	}
	if warned == nil {
		t.Fatal("persistence failure was not surfaced through the warn hook")
	}
}

func TestCalculateRecordDates(t *testing.T) {
	fixed := time.Date(2025, 3, 8, 14, 5, 9, 0, time.Local)
	store := history.NewMemoryStore()
	e := New(store, WithClock(func() time.Time { return fixed }))

	if _, ok := e.Calculate("100", "80", 0); !ok {
		t.Fatal("Calculate failed")
	}

	records, _ := store.Load()
	if records[0].Date != "08.03.2025, 14:05:09" {
		t.Fatalf("display date = %q, want 08.03.2025, 14:05:09", records[0].Date)
	}
	if !records[0].CreatedAt.Equal(fixed) {
		t.Fatal("canonical timestamp not captured")
	}
}
