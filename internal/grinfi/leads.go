package grinfi

import (
	"context"
	"net/http"
)

// LeadQuery is the parameter set for SearchLeads.  Unset fields are dropped
// from the query string.
type LeadQuery struct {
	Search  string
	ListID  string
	Tag     string
	Page    int
	PerPage int
}

// LeadFields carries the writable fields of a contact.  Used for both
// creation and partial updates; fields left empty are omitted from the
// request body.
type LeadFields struct {
	Name      string         `json:"name,omitempty"`
	FirstName string         `json:"first_name,omitempty"`
	LastName  string         `json:"last_name,omitempty"`
	Email     string         `json:"email,omitempty"`
	Linkedin  string         `json:"linkedin,omitempty"`
	Company   string         `json:"company,omitempty"`
	Position  string         `json:"position,omitempty"`
	Phone     string         `json:"phone,omitempty"`
	ListID    string         `json:"list_id,omitempty"`
	Custom    map[string]any `json:"custom_fields,omitempty"`
}

// SearchLeads returns a page of contacts matching the query.
func (c *Client) SearchLeads(ctx context.Context, q LeadQuery) (any, error) {
	p := NewParams().
		Search(q.Search).
		Filter("list_id", q.ListID).
		Filter("tag", q.Tag).
		SetInt("page", q.Page).
		SetInt("per_page", q.PerPage)
	v, err := c.call(ctx, http.MethodGet, epLeads, p.Values(), nil)
	if err != nil {
		return nil, err
	}
	return EnrichPage(v), nil
}

// GetLead returns the full detail record of a contact.
func (c *Client) GetLead(ctx context.Context, uuid string) (any, error) {
	v, err := c.call(ctx, http.MethodGet, epLead(uuid), nil, nil)
	if err != nil {
		return nil, err
	}
	return EnrichLead(v), nil
}

// CreateLead creates a contact.
func (c *Client) CreateLead(ctx context.Context, lead LeadFields) (any, error) {
	v, err := c.call(ctx, http.MethodPost, epLeads, nil, &lead)
	if err != nil {
		return nil, err
	}
	return EnrichLead(v), nil
}

// UpdateLead applies a partial update to a contact.
func (c *Client) UpdateLead(ctx context.Context, uuid string, upd LeadFields) (any, error) {
	v, err := c.call(ctx, http.MethodPatch, epLead(uuid), nil, &upd)
	if err != nil {
		return nil, err
	}
	return EnrichLead(v), nil
}

// DeleteLead removes a contact.
func (c *Client) DeleteLead(ctx context.Context, uuid string) (any, error) {
	return c.call(ctx, http.MethodDelete, epLead(uuid), nil, nil)
}

// AddLeadTags attaches tags to a contact.
func (c *Client) AddLeadTags(ctx context.Context, uuid string, tags []string) (any, error) {
	body := map[string]any{"tags": tags}
	return c.call(ctx, http.MethodPost, epLeadTags(uuid), nil, body)
}

// AssignStage moves a contact to a pipeline stage.
func (c *Client) AssignStage(ctx context.Context, uuid, stageID string) (any, error) {
	body := map[string]any{"stage_id": stageID}
	return c.call(ctx, http.MethodPut, epLeadStage(uuid), nil, body)
}
