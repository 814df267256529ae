package grinfi

import (
	"context"
	"net/http"
)

// Flows returns the outreach automations, optionally filtered by status
// (active, paused or archived).
func (c *Client) Flows(ctx context.Context, status string, page, perPage int) (any, error) {
	p := NewParams().
		Filter("status", status).
		SetInt("page", page).
		SetInt("per_page", perPage)
	return c.call(ctx, http.MethodGet, epFlows, p.Values(), nil)
}

// StartFlow starts an automation.
func (c *Client) StartFlow(ctx context.Context, flowID string) (any, error) {
	return c.call(ctx, http.MethodPost, epFlow(flowID, "start"), nil, nil)
}

// StopFlow stops an automation.
func (c *Client) StopFlow(ctx context.Context, flowID string) (any, error) {
	return c.call(ctx, http.MethodPost, epFlow(flowID, "stop"), nil, nil)
}

// AddToFlow enrols contacts into an automation.
func (c *Client) AddToFlow(ctx context.Context, flowID string, leadUUIDs []string) (any, error) {
	body := map[string]any{"lead_uuids": leadUUIDs}
	return c.call(ctx, http.MethodPost, epFlow(flowID, "leads"), nil, body)
}

// RemoveFromFlow withdraws a single contact from an automation.
func (c *Client) RemoveFromFlow(ctx context.Context, flowID, leadUUID string) (any, error) {
	return c.call(ctx, http.MethodDelete, epFlowLead(flowID, leadUUID), nil, nil)
}
