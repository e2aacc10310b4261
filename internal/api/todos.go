package api

import (
	"context"
	"net/http"

	"github.com/dcheng/assignment-tracker/internal/model"
)

// todoPayload is the body of a todo create or update.
type todoPayload struct {
	Value string `json:"value"`
}

// ListTodos fetches the full todo collection. The endpoint is public.
func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	err := c.do(ctx, http.MethodGet, "/todos", "", nil, &todos)
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo adds a todo and returns the full updated collection.
func (c *Client) CreateTodo(
	ctx context.Context,
	value string,
	token string,
) ([]model.Todo, error) {
	var todos []model.Todo
	err := c.do(ctx, http.MethodPost, "/add-todo", token, todoPayload{Value: value}, &todos)
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// UpdateTodo replaces a todo's text and returns the full updated
// collection.
func (c *Client) UpdateTodo(
	ctx context.Context,
	id string,
	value string,
	token string,
) ([]model.Todo, error) {
	var todos []model.Todo
	err := c.do(
		ctx, http.MethodPut, "/update-todo/"+id, token,
		todoPayload{Value: value}, &todos,
	)
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// DeleteTodo removes a todo and returns the full updated collection.
func (c *Client) DeleteTodo(
	ctx context.Context,
	id string,
	token string,
) ([]model.Todo, error) {
	var todos []model.Todo
	err := c.do(ctx, http.MethodDelete, "/delete-todo/"+id, token, nil, &todos)
	if err != nil {
		return nil, err
	}
	return todos, nil
}
