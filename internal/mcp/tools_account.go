package mcp

// In this file: account-level tool definitions and handlers - sender
// profiles, mailboxes, tags, pipelines and webhooks.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
)

// ─── get_sender_profiles ──────────────────────────────────────────────────────

func (s *Server) toolGetSenderProfiles() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_sender_profiles",
		mcplib.WithDescription("List the sender profiles (LinkedIn and email accounts outreach is sent from) with their ids and connection states."),
		mcplib.WithString("provider",
			mcplib.Description("Only profiles of this medium."),
			mcplib.Enum("linkedin", "email"),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetSenderProfiles}
}

func (s *Server) handleGetSenderProfiles(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.crm.SenderProfiles(ctx, optString(req, "provider"))
	if err != nil {
		return resultErr(fmt.Errorf("get_sender_profiles: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── get_mailboxes ────────────────────────────────────────────────────────────

func (s *Server) toolGetMailboxes() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_mailboxes",
		mcplib.WithDescription("List the connected email mailboxes with their health and warm-up state."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetMailboxes}
}

func (s *Server) handleGetMailboxes(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.crm.Mailboxes(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("get_mailboxes: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── get_tags / create_tag ────────────────────────────────────────────────────

func (s *Server) toolGetTags() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_tags",
		mcplib.WithDescription("List all contact tags."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetTags}
}

func (s *Server) handleGetTags(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.crm.Tags(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("get_tags: %w", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolCreateTag() mcpsrv.ServerTool {
	tool := mcplib.NewTool("create_tag",
		mcplib.WithDescription("Create a contact tag."),
		mcplib.WithString("name",
			mcplib.Description("The tag name."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleCreateTag}
}

func (s *Server) handleCreateTag(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name, ok := stringArg(req, "name")
	if !ok || name == "" {
		return resultErr(errors.New("create_tag: name is required")), nil
	}
	res, err := s.crm.CreateTag(ctx, name)
	if err != nil {
		return resultErr(fmt.Errorf("create_tag: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── get_pipeline_stages ──────────────────────────────────────────────────────

func (s *Server) toolGetPipelineStages() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_pipeline_stages",
		mcplib.WithDescription("List the pipelines and their stages.  Stage ids are used by move_contact_to_stage."),
		mcplib.WithString("pipeline_id",
			mcplib.Description("Only this pipeline."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetPipelineStages}
}

func (s *Server) handleGetPipelineStages(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.crm.Pipelines(ctx, optString(req, "pipeline_id"))
	if err != nil {
		return resultErr(fmt.Errorf("get_pipeline_stages: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── webhooks ─────────────────────────────────────────────────────────────────

func (s *Server) toolGetWebhooks() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_webhooks",
		mcplib.WithDescription("List the registered webhooks with their target URLs and subscribed events."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetWebhooks}
}

func (s *Server) handleGetWebhooks(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.crm.Webhooks(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("get_webhooks: %w", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolCreateWebhook() mcpsrv.ServerTool {
	tool := mcplib.NewTool("create_webhook",
		mcplib.WithDescription("Register a webhook that receives the given upstream events."),
		mcplib.WithString("url",
			mcplib.Description("The target URL to deliver events to."),
			mcplib.Required(),
		),
		mcplib.WithArray("events",
			mcplib.Description(`Event names to subscribe to (e.g. "lead.replied", "lead.connected").`),
			mcplib.Required(),
			mcplib.Items(map[string]any{"type": "string"}),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleCreateWebhook}
}

func (s *Server) handleCreateWebhook(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	target, ok := stringArg(req, "url")
	if !ok || target == "" {
		return resultErr(errors.New("create_webhook: url is required")), nil
	}
	events := stringSliceArg(req, "events")
	if len(events) == 0 {
		return resultErr(errors.New("create_webhook: events is required")), nil
	}
	res, err := s.crm.CreateWebhook(ctx, target, events)
	if err != nil {
		return resultErr(fmt.Errorf("create_webhook: %w", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolDeleteWebhook() mcpsrv.ServerTool {
	tool := mcplib.NewTool("delete_webhook",
		mcplib.WithDescription("Remove a registered webhook."),
		mcplib.WithString("webhook_id",
			mcplib.Description("The webhook id."),
			mcplib.Required(),
		),
		mcplib.WithDestructiveHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDeleteWebhook}
}

func (s *Server) handleDeleteWebhook(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	webhookID, ok := stringArg(req, "webhook_id")
	if !ok || webhookID == "" {
		return resultErr(errors.New("delete_webhook: webhook_id is required")), nil
	}
	res, err := s.crm.DeleteWebhook(ctx, webhookID)
	if err != nil {
		return resultErr(fmt.Errorf("delete_webhook: %w", err)), nil
	}
	return resultJSON(res)
}
