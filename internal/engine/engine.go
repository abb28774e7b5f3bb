// Package engine computes plan-completion results and owns the creation of
// history records.
package engine

import (
	"strconv"
	"time"

	"github.com/pr-poehali-dev/planeval/internal/history"
	"github.com/pr-poehali-dev/planeval/internal/model"
	"github.com/pr-poehali-dev/planeval/internal/score"
)

// WarnFunc receives non-fatal persistence failures. The calculation result
// is still valid when it fires; only the write was lost.
type WarnFunc func(err error)

// Engine turns plan/fact input into scored records. The store is injected
// so tests can substitute an in-memory fake.
type Engine struct {
	store history.Store
	warn  WarnFunc
	now   func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithWarn sets the persistence-failure hook.
func WithWarn(fn WarnFunc) Option {
	return func(e *Engine) { e.warn = fn }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an engine writing to the given store.
func New(store history.Store, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		warn:  func(error) {},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Calculate parses the plan and fact inputs and produces a scored result.
// Non-numeric input or plan <= 0 is a silent no-op: ok is false, nothing is
// recorded, and the caller keeps whatever it was displaying. The base
// percentage is not clamped, so a fact above plan yields over 100% and a
// negative fact a negative percentage.
func (e *Engine) Calculate(planText, factText string, avgIndicator float64) (model.Result, bool) {
	plan, err := strconv.ParseFloat(planText, 64)
	if err != nil || plan <= 0 {
		return model.Result{}, false
	}
	fact, err := strconv.ParseFloat(factText, 64)
	if err != nil {
		return model.Result{}, false
	}

	base := fact / plan * 100
	final := base + avgIndicator
	sc := score.FromPercentage(final)

	res := model.Result{
		Percentage:           base,
		AdditionalPercentage: avgIndicator,
		FinalPercentage:      final,
		Score:                sc,
	}

	now := e.now()
	finalCopy := final
	rec := model.Record{
		ID:                   strconv.FormatInt(now.UnixNano(), 10),
		Plan:                 plan,
		Fact:                 fact,
		Percentage:           base,
		AdditionalPercentage: avgIndicator,
		FinalPercentage:      &finalCopy,
		Score:                sc,
		Date:                 now.Format(model.DisplayDateFormat),
		CreatedAt:            now,
	}

	// Persistence is best-effort: the result stands even if the write fails.
	if err := e.store.Append(rec); err != nil {
		e.warn(err)
	}

	return res, true
}

// History returns the persisted records, most recent first. Load failures
// surface through the warn hook and yield an empty list.
func (e *Engine) History() []model.Record {
	records, err := e.store.Load()
	if err != nil {
		e.warn(err)
		return nil
	}
	return records
}

// ClearHistory erases the persisted log.
func (e *Engine) ClearHistory() error {
	return e.store.Clear()
}
