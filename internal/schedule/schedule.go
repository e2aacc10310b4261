// Package schedule derives an assignment's schedule status from its
// progress versus the time elapsed between its assigned and due dates.
package schedule

import (
	"math"
	"time"
)

// Status is the schedule category of an assignment.
type Status string

const (
	// Ahead means progress exceeds the time-based expectation by more
	// than the tolerance band.
	Ahead Status = "ahead"

	// OnTime means progress is within the tolerance band of the
	// expectation.
	OnTime Status = "ontime"

	// Behind means progress trails the expectation by more than the
	// tolerance band.
	Behind Status = "behind"
)

// tolerance is the band, in progress points, around the expected
// progress within which an assignment is still considered on time.
const tolerance = 10

// Classify returns the schedule status for an assignment given its
// current progress (0-100), assigned and due dates, and completion
// flag, evaluated at now.
//
// Completed assignments are always Ahead regardless of dates. For a
// zero-duration assignment (assigned == due to the hour) the expected
// progress is undefined; it is treated as Ahead when already at 100
// and OnTime otherwise.
func Classify(progress float64, assigned, due time.Time, complete bool, now time.Time) Status {
	if complete {
		return Ahead
	}

	totalHours := hoursBetween(due, assigned)
	if totalHours == 0 {
		if progress >= 100 {
			return Ahead
		}
		return OnTime
	}

	passedHours := hoursBetween(now, assigned)
	expected := passedHours / totalHours * 100

	diff := progress - expected
	switch {
	case diff > tolerance:
		return Ahead
	case diff < -tolerance:
		return Behind
	default:
		return OnTime
	}
}

// ElapsedDays returns the number of whole and fractional days elapsed
// since the assigned date, rounded to two decimal places.
func ElapsedDays(assigned, now time.Time) float64 {
	days := hoursBetween(now, assigned) / 24
	return math.Round(days*100) / 100
}

// NearDeadline reports whether less than one day remains of the
// assignment's allotted span. Completed assignments are never flagged.
func NearDeadline(totalDays, elapsedDays float64, complete bool) bool {
	if complete {
		return false
	}
	return totalDays-elapsedDays < 1
}

// hoursBetween returns the whole hours from a to b, truncated toward
// zero to match diff-in-hours semantics.
func hoursBetween(b, a time.Time) float64 {
	return math.Trunc(b.Sub(a).Hours())
}
