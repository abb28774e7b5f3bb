// Package model defines the calculation record shared across the engine,
// history store, statistics, and exporters.
package model

import "time"

// DisplayDateFormat is the fixed ru-RU layout used on record cards and exports.
const DisplayDateFormat = "02.01.2006, 15:04:05"

// Record is a single completed calculation. Records are immutable once
// created; only the engine constructs them.
type Record struct {
	ID                   string    `json:"id"`
	Plan                 float64   `json:"plan"`
	Fact                 float64   `json:"fact"`
	Percentage           float64   `json:"percentage"`
	AdditionalPercentage float64   `json:"additionalPercentage"`
	FinalPercentage      *float64  `json:"finalPercentage,omitempty"`
	Score                int       `json:"score"`
	Date                 string    `json:"date"`
	CreatedAt            time.Time `json:"createdAt"`
}

// EffectivePercentage returns the final percentage when the record carries
// one, falling back to the base percentage for older records that predate
// the indicator feature. The presence check is explicit so a legitimate
// 0% final value does not fall back.
func (r Record) EffectivePercentage() float64 {
	if r.FinalPercentage != nil {
		return *r.FinalPercentage
	}
	return r.Percentage
}

// Result is the in-memory view returned by a calculation for immediate
// display, independent of whether persistence succeeded.
type Result struct {
	Percentage           float64
	AdditionalPercentage float64
	FinalPercentage      float64
	Score                int
}
