package grinfi

import (
	"context"
	"net/http"
)

// TaskQuery is the parameter set for Tasks.
type TaskQuery struct {
	Status          string
	SenderProfileID string
	LeadUUID        string
	Page            int
	PerPage         int
}

// TaskFields carries the writable fields of a scheduled outreach task.
type TaskFields struct {
	LeadUUID        string `json:"lead_uuid,omitempty"`
	SenderProfileID string `json:"sender_profile_id,omitempty"`
	Type            string `json:"type,omitempty"`
	Status          string `json:"status,omitempty"`
	Note            string `json:"note,omitempty"`
	DueAt           string `json:"due_at,omitempty"`
}

// Tasks returns scheduled outreach tasks matching the query.
func (c *Client) Tasks(ctx context.Context, q TaskQuery) (any, error) {
	p := NewParams().
		Filter("status", q.Status).
		Filter("sender_profile_id", q.SenderProfileID).
		Filter("lead_uuid", q.LeadUUID).
		SetInt("page", q.Page).
		SetInt("per_page", q.PerPage)
	return c.call(ctx, http.MethodGet, epTasks, p.Values(), nil)
}

// CreateTask schedules a manual outreach task.
func (c *Client) CreateTask(ctx context.Context, task TaskFields) (any, error) {
	return c.call(ctx, http.MethodPost, epTasks, nil, &task)
}

// UpdateTask applies a partial update to a task.
func (c *Client) UpdateTask(ctx context.Context, taskID string, upd TaskFields) (any, error) {
	return c.call(ctx, http.MethodPatch, epTask(taskID), nil, &upd)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, taskID string) (any, error) {
	return c.call(ctx, http.MethodDelete, epTask(taskID), nil, nil)
}
