// Package chartdata shapes history records into chart-ready series.
package chartdata

import "github.com/pr-poehali-dev/planeval/internal/model"

// Point is one chart entry. Final carries the final percentage when the
// record has one, so renderers can distinguish base from boosted values.
type Point struct {
	Date       string
	Percentage float64
	Final      *float64
}

// Series converts history records (most recent first) into chronological
// chart points. Rounding is left to the renderer.
func Series(records []model.Record) []Point {
	points := make([]Point, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		points = append(points, Point{
			Date:       r.CreatedAt.Format("02.01"),
			Percentage: r.Percentage,
			Final:      r.FinalPercentage,
		})
	}
	return points
}

// Values returns the effective percentage of each point, in series order.
func Values(points []Point) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Effective()
	}
	return values
}

// Effective returns the final percentage when present, else the base one.
func (p Point) Effective() float64 {
	if p.Final != nil {
		return *p.Final
	}
	return p.Percentage
}
