package client

import (
	"context"
	"fmt"
	"net/http"
)

// Resource issues the five logical operations against one collection path.
// T is the record shape, C and U the create and update payloads.
type Resource[T any, C any, U any] struct {
	c    *Client
	name string
	path string
}

func NewResource[T any, C any, U any](c *Client, name, path string) *Resource[T, C, U] {
	return &Resource[T, C, U]{c: c, name: name, path: path}
}

func (r *Resource[T, C, U]) Name() string { return r.name }

// ListAll fetches the full active collection. The backend bounds these
// collections, so there is no paging.
func (r *Resource[T, C, U]) ListAll(ctx context.Context) ([]T, error) {
	var records []T
	if err := r.c.do(ctx, r.name, "list", http.MethodGet, r.path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (r *Resource[T, C, U]) GetByID(ctx context.Context, id int) (T, error) {
	var record T
	err := r.c.do(ctx, r.name, "get", http.MethodGet, fmt.Sprintf("%s/%d", r.path, id), nil, &record)
	return record, err
}

func (r *Resource[T, C, U]) Create(ctx context.Context, draft C) (T, error) {
	var record T
	err := r.c.do(ctx, r.name, "create", http.MethodPost, r.path, draft, &record)
	return record, err
}

func (r *Resource[T, C, U]) Update(ctx context.Context, id int, draft U) (T, error) {
	var record T
	err := r.c.do(ctx, r.name, "update", http.MethodPut, fmt.Sprintf("%s/%d", r.path, id), draft, &record)
	return record, err
}

// Deactivate soft-deletes the record. The backend may answer 404 when the
// record is already inactive; callers surface that as a mutation failure
// rather than patching local state.
func (r *Resource[T, C, U]) Deactivate(ctx context.Context, id int) error {
	return r.c.do(ctx, r.name, "deactivate", http.MethodDelete, fmt.Sprintf("%s/%d", r.path, id), nil, nil)
}
