// Package forecast projects short-horizon demand from daily sales history.
// It is a lightweight least-squares trend, not the heavyweight seasonal
// pipeline; the API layer persists its output as Forecast rows.
package forecast

import (
	"errors"
	"time"
)

// ErrNoHistory indicates there is nothing to project from.
var ErrNoHistory = errors.New("forecast: no sales history")

// Point is one day of observed demand.
type Point struct {
	Date     time.Time
	Quantity float64
}

// Projection is one forecasted day.
type Projection struct {
	Date     time.Time
	Quantity float64
}

// Project fits a linear trend to the history and extends it `days` into
// the future, starting the day after the last observation. Predictions
// are floored at zero. With a single observation the trend degenerates to
// a flat line.
func Project(history []Point, days int) ([]Projection, error) {
	if len(history) == 0 {
		return nil, ErrNoHistory
	}
	if days <= 0 {
		days = 7
	}

	slope, intercept := fitLine(history)

	last := history[len(history)-1].Date
	n := float64(len(history))

	projections := make([]Projection, 0, days)
	for i := 1; i <= days; i++ {
		x := n - 1 + float64(i)
		qty := intercept + slope*x
		if qty < 0 {
			qty = 0
		}
		projections = append(projections, Projection{
			Date:     last.AddDate(0, 0, i),
			Quantity: qty,
		})
	}
	return projections, nil
}

// MovingAverage returns the mean demand of the trailing window, the whole
// history if window exceeds it.
func MovingAverage(history []Point, window int) float64 {
	if len(history) == 0 {
		return 0
	}
	if window <= 0 || window > len(history) {
		window = len(history)
	}

	var sum float64
	for _, p := range history[len(history)-window:] {
		sum += p.Quantity
	}
	return sum / float64(window)
}

// fitLine runs ordinary least squares with x = 0..n-1.
func fitLine(history []Point) (slope, intercept float64) {
	n := float64(len(history))
	if n == 1 {
		return 0, history[0].Quantity
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, p := range history {
		x := float64(i)
		sumX += x
		sumY += p.Quantity
		sumXY += x * p.Quantity
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0, sumY / n
	}

	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n
	return slope, intercept
}
