// Package stats derives summary statistics over a history list.
package stats

import "github.com/pr-poehali-dev/planeval/internal/model"

// Trend direction classifications.
const (
	Improving = "improving"
	Declining = "declining"
	Stable    = "stable"
)

// trendWindow is the number of most-recent records compared against the
// next-older window of the same size.
const trendWindow = 5

// trendThreshold is the percentage-point delta separating stable from a
// real movement.
const trendThreshold = 5.0

// Summary holds the aggregates over a history list. On an empty list all
// numeric fields are 0 and Best/Worst are nil; callers must check before
// dereferencing.
type Summary struct {
	Count         int
	AvgPercentage float64
	MaxPercentage float64
	MinPercentage float64
	AvgScore      float64
	MaxScore      int
	MinScore      int
	Best          *model.Record
	Worst         *model.Record
	Trend         float64
}

// TrendDirection classifies the trend delta.
func (s Summary) TrendDirection() string {
	switch {
	case s.Trend > trendThreshold:
		return Improving
	case s.Trend < -trendThreshold:
		return Declining
	default:
		return Stable
	}
}

// Compute aggregates the given records, assumed most-recent-first. Ties for
// best and worst resolve to the first-encountered record: the running
// candidate is only replaced on strict inequality.
func Compute(records []model.Record) Summary {
	if len(records) == 0 {
		return Summary{}
	}

	s := Summary{
		Count:         len(records),
		MaxPercentage: records[0].EffectivePercentage(),
		MinPercentage: records[0].EffectivePercentage(),
		MaxScore:      records[0].Score,
		MinScore:      records[0].Score,
		Best:          &records[0],
		Worst:         &records[0],
	}

	sumPct := 0.0
	sumScore := 0
	for i := range records {
		pct := records[i].EffectivePercentage()
		sumPct += pct
		sumScore += records[i].Score

		if pct > s.MaxPercentage {
			s.MaxPercentage = pct
		}
		if pct < s.MinPercentage {
			s.MinPercentage = pct
		}
		if records[i].Score > s.MaxScore {
			s.MaxScore = records[i].Score
		}
		if records[i].Score < s.MinScore {
			s.MinScore = records[i].Score
		}

		if pct > s.Best.EffectivePercentage() {
			s.Best = &records[i]
		}
		if pct < s.Worst.EffectivePercentage() {
			s.Worst = &records[i]
		}
	}

	s.AvgPercentage = sumPct / float64(len(records))
	s.AvgScore = float64(sumScore) / float64(len(records))
	s.Trend = trend(records)

	return s
}

// trend compares the mean effective percentage of the newest window
// against the next-older window. With fewer than 2 records, or no older
// window at all, the trend is 0.
func trend(records []model.Record) float64 {
	if len(records) < 2 {
		return 0
	}

	recent := trendWindow
	if recent > len(records) {
		recent = len(records)
	}
	olderEnd := recent * 2
	if olderEnd > len(records) {
		olderEnd = len(records)
	}
	older := records[recent:olderEnd]
	if len(older) == 0 {
		return 0
	}

	return windowMean(records[:recent]) - windowMean(older)
}

func windowMean(records []model.Record) float64 {
	sum := 0.0
	for _, r := range records {
		sum += r.EffectivePercentage()
	}
	return sum / float64(len(records))
}
