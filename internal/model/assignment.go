package model

import (
	"encoding/json"
	"time"
)

// Assignment is a scheduled task owned by the remote API. Field names
// follow the wire format; the server computes total_days and the
// time_* aggregates, and the client never modifies anything except
// progress after creation.
type Assignment struct {
	// ID is the server-assigned identifier, stable for the record's
	// lifetime.
	ID string `json:"id"`

	// Name is the assignment title.
	Name string `json:"name"`

	// Description is the free-text body.
	Description string `json:"description"`

	// AssignedDate is when work on the assignment begins.
	AssignedDate time.Time `json:"assignedDate"`

	// DueDate is when the assignment is due. The server does not
	// guarantee AssignedDate <= DueDate.
	DueDate time.Time `json:"date"`

	// Timestamp is the server-side creation timestamp.
	Timestamp time.Time `json:"timestamp"`

	// Estimate is the user-supplied effort estimate in hours. It is
	// immutable after creation.
	Estimate float64 `json:"estimate"`

	// Progress is the completion percentage in [0, 100], mutable only
	// through the update operation.
	Progress float64 `json:"progress"`

	// Complete marks the assignment finished; a complete assignment is
	// always classified ahead of schedule.
	Complete bool `json:"complete"`

	// TotalDays is the server-computed span between assigned and due
	// dates, in days.
	TotalDays float64 `json:"total_days"`

	// TimeCompleted and TimeRemaining are server-computed aggregates
	// passed through to presentation.
	TimeCompleted float64 `json:"time_completed"`
	TimeRemaining float64 `json:"time_remaining"`

	// Data is an opaque chart payload produced by the server.
	Data json.RawMessage `json:"data,omitempty"`
}

// AssignmentDraft holds the staged fields for a new assignment. The
// server assigns the ID and derives everything else.
type AssignmentDraft struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Estimate     float64   `json:"estimate"`
	AssignedDate time.Time `json:"assignedDate,omitzero"`
	DueDate      time.Time `json:"date,omitzero"`
}

// TotalEstimate sums the effort estimates of the given assignments,
// rounded to one decimal place for display.
func TotalEstimate(assignments []Assignment) float64 {
	var sum float64
	for _, a := range assignments {
		sum += a.Estimate
	}
	return float64(int(sum*10+0.5)) / 10
}
