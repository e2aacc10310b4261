package api

import (
	"context"
	"net/http"

	"github.com/dcheng/assignment-tracker/internal/model"
)

// progressUpdate is the body of an assignment progress update. Progress
// is the only field this client may mutate after creation.
type progressUpdate struct {
	Progress float64 `json:"progress"`
}

// ListAssignments fetches the full assignment collection.
func (c *Client) ListAssignments(ctx context.Context) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := c.do(ctx, http.MethodGet, "/assignments", "", nil, &assignments)
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// CreateAssignment submits a draft and returns the full updated
// collection, including the new record with its server-assigned ID.
func (c *Client) CreateAssignment(
	ctx context.Context,
	draft model.AssignmentDraft,
	token string,
) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := c.do(ctx, http.MethodPost, "/add-assignment", token, draft, &assignments)
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// UpdateAssignment sets an assignment's progress and returns the full
// updated collection.
func (c *Client) UpdateAssignment(
	ctx context.Context,
	id string,
	progress float64,
	token string,
) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := c.do(
		ctx, http.MethodPut, "/update-assignment/"+id, token,
		progressUpdate{Progress: progress}, &assignments,
	)
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// DeleteAssignment removes an assignment and returns the full updated
// collection, which no longer contains the record.
func (c *Client) DeleteAssignment(
	ctx context.Context,
	id string,
	token string,
) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := c.do(ctx, http.MethodDelete, "/delete-assignment/"+id, token, nil, &assignments)
	if err != nil {
		return nil, err
	}
	return assignments, nil
}
