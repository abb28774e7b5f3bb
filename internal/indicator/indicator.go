// Package indicator maintains the supplementary plan/fact indicators that
// contribute an averaged bonus percentage to a calculation.
package indicator

import "strconv"

// Field names accepted by Update.
const (
	FieldName = "name"
	FieldPlan = "plan"
	FieldFact = "fact"
)

// Indicator is a single supplementary metric. Plan and Fact stay textual
// because they are edited field-by-field and may be empty or non-numeric
// mid-edit; Percentage is recomputed on every plan/fact change.
type Indicator struct {
	ID         string
	Name       string
	Plan       string
	Fact       string
	Percentage float64
}

// Valid reports whether both plan and fact parse as numbers with plan > 0.
func (in Indicator) Valid() bool {
	plan, err := strconv.ParseFloat(in.Plan, 64)
	if err != nil {
		return false
	}
	if _, err := strconv.ParseFloat(in.Fact, 64); err != nil {
		return false
	}
	return plan > 0
}

// Set is an ordered collection of indicators with an eagerly maintained
// average. Not safe for concurrent use; all mutations happen on the single
// UI event path.
type Set struct {
	items   []Indicator
	average float64
	lastID  int64
}

// NewSet returns an empty indicator set.
func NewSet() *Set {
	return &Set{}
}

// nextID issues a creation-order-monotonic token. Indicators are session
// scoped, so ids only need to be unique within one set.
func (s *Set) nextID() string {
	s.lastID++
	return strconv.FormatInt(s.lastID, 10)
}

// Items returns the indicators in creation order.
func (s *Set) Items() []Indicator {
	return s.items
}

// Len returns the number of indicators, valid or not.
func (s *Set) Len() int {
	return len(s.items)
}

// Add appends a fresh empty indicator and returns its id.
func (s *Set) Add() string {
	id := s.nextID()
	s.items = append(s.items, Indicator{ID: id})
	s.recompute()
	return id
}

// Remove deletes the indicator with the given id; no-op if absent.
func (s *Set) Remove(id string) {
	for i, in := range s.items {
		if in.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.recompute()
			return
		}
	}
}

// Update sets the named field on the indicator with the given id. Plan and
// fact edits recompute the item percentage: fact/plan*100 when both parse
// and plan > 0, otherwise 0. Unknown ids and fields are no-ops.
func (s *Set) Update(id, field, value string) {
	for i := range s.items {
		if s.items[i].ID != id {
			continue
		}
		switch field {
		case FieldName:
			s.items[i].Name = value
		case FieldPlan:
			s.items[i].Plan = value
		case FieldFact:
			s.items[i].Fact = value
		default:
			return
		}
		if field == FieldPlan || field == FieldFact {
			s.items[i].Percentage = itemPercentage(s.items[i])
			s.recompute()
		}
		return
	}
}

// Average returns the unweighted mean percentage across valid indicators,
// or 0 when none are valid.
func (s *Set) Average() float64 {
	return s.average
}

// Distributed divides the average across an employee count for per-person
// attribution. A count that does not parse or is not positive yields 0.
func (s *Set) Distributed(employeeCount string) float64 {
	n, err := strconv.ParseFloat(employeeCount, 64)
	if err != nil || n <= 0 {
		return 0
	}
	return s.average / n
}

// recompute rebuilds the cached average from scratch. Indicator counts are
// UI-scale, so the full pass on every mutation is fine.
func (s *Set) recompute() {
	sum := 0.0
	valid := 0
	for _, in := range s.items {
		if in.Valid() {
			sum += in.Percentage
			valid++
		}
	}
	if valid == 0 {
		s.average = 0
		return
	}
	s.average = sum / float64(valid)
}

func itemPercentage(in Indicator) float64 {
	plan, err := strconv.ParseFloat(in.Plan, 64)
	if err != nil || plan <= 0 {
		return 0
	}
	fact, err := strconv.ParseFloat(in.Fact, 64)
	if err != nil {
		return 0
	}
	return fact / plan * 100
}
