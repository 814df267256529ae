package grinfi

// In this file: account-level resources - sender profiles, mailboxes, tags,
// pipelines and webhooks.

import (
	"context"
	"net/http"
)

// SenderProfiles returns the accounts outreach is sent from, optionally
// filtered by provider ("linkedin" or "email").
func (c *Client) SenderProfiles(ctx context.Context, provider string) (any, error) {
	p := NewParams().Filter("provider", provider)
	return c.call(ctx, http.MethodGet, epSenders, p.Values(), nil)
}

// Mailboxes returns the connected email mailboxes.
func (c *Client) Mailboxes(ctx context.Context) (any, error) {
	return c.call(ctx, http.MethodGet, epMailboxes, nil, nil)
}

// Tags returns all contact tags.
func (c *Client) Tags(ctx context.Context) (any, error) {
	return c.call(ctx, http.MethodGet, epTags, nil, nil)
}

// CreateTag creates a contact tag.
func (c *Client) CreateTag(ctx context.Context, name string) (any, error) {
	body := map[string]any{"name": name}
	return c.call(ctx, http.MethodPost, epTags, nil, body)
}

// Pipelines returns the pipelines with their stages, optionally narrowed to
// a single pipeline.
func (c *Client) Pipelines(ctx context.Context, pipelineID string) (any, error) {
	p := NewParams().Filter("pipeline_id", pipelineID)
	return c.call(ctx, http.MethodGet, epPipelines, p.Values(), nil)
}

// Webhooks returns the registered webhooks.
func (c *Client) Webhooks(ctx context.Context) (any, error) {
	return c.call(ctx, http.MethodGet, epWebhooks, nil, nil)
}

// CreateWebhook registers a webhook for the given event names.
func (c *Client) CreateWebhook(ctx context.Context, url string, events []string) (any, error) {
	body := map[string]any{"url": url, "events": events}
	return c.call(ctx, http.MethodPost, epWebhooks, nil, body)
}

// DeleteWebhook removes a webhook.
func (c *Client) DeleteWebhook(ctx context.Context, webhookID string) (any, error) {
	return c.call(ctx, http.MethodDelete, epWebhook(webhookID), nil, nil)
}
