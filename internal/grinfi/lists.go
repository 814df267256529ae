package grinfi

import (
	"context"
	"net/http"
)

// Lists returns the contact lists, optionally narrowed by a search term.
func (c *Client) Lists(ctx context.Context, search string, page, perPage int) (any, error) {
	p := NewParams().
		Search(search).
		SetInt("page", page).
		SetInt("per_page", perPage)
	return c.call(ctx, http.MethodGet, epLists, p.Values(), nil)
}

// CreateList creates a contact list.
func (c *Client) CreateList(ctx context.Context, name string) (any, error) {
	body := map[string]any{"name": name}
	return c.call(ctx, http.MethodPost, epLists, nil, body)
}

// AddToList adds contacts to a list.
func (c *Client) AddToList(ctx context.Context, listID string, leadUUIDs []string) (any, error) {
	body := map[string]any{"lead_uuids": leadUUIDs}
	return c.call(ctx, http.MethodPost, epListLeads(listID), nil, body)
}

// RemoveFromList removes contacts from a list.  The upstream accepts the
// lead set in the DELETE body.
func (c *Client) RemoveFromList(ctx context.Context, listID string, leadUUIDs []string) (any, error) {
	body := map[string]any{"lead_uuids": leadUUIDs}
	return c.call(ctx, http.MethodDelete, epListLeads(listID), nil, body)
}
