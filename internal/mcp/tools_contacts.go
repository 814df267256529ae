package mcp

// In this file: contact (lead) tool definitions and handlers.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/grinfi/grinfi-mcp/internal/grinfi"
)

// ─── search_contacts ──────────────────────────────────────────────────────────

func (s *Server) toolSearchContacts() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_contacts",
		mcplib.WithDescription(`Search contacts (leads) in the Grinfi CRM.

Returns a paginated result under "data" with a "total" count.  Every contact
carries _grinfi_contact_url (CRM deep link) and, when a LinkedIn handle is
known, _linkedin_url.  Call with no parameters to page through all contacts.`),
		mcplib.WithString("search",
			mcplib.Description("Free-text search over name, email and company."),
		),
		mcplib.WithString("list_id",
			mcplib.Description("Only contacts belonging to this list."),
		),
		mcplib.WithString("tag",
			mcplib.Description("Only contacts carrying this tag."),
		),
		mcplib.WithNumber("page",
			mcplib.Description("Page number, starting at 1."),
		),
		mcplib.WithNumber("per_page",
			mcplib.Description("Page size (upstream default 25, max 100)."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchContacts}
}

func (s *Server) handleSearchContacts(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.crm.SearchLeads(ctx, grinfi.LeadQuery{
		Search:  optString(req, "search"),
		ListID:  optString(req, "list_id"),
		Tag:     optString(req, "tag"),
		Page:    intArg(req, "page", 0),
		PerPage: intArg(req, "per_page", 0),
	})
	if err != nil {
		return resultErr(fmt.Errorf("search_contacts: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── get_contact ──────────────────────────────────────────────────────────────

func (s *Server) toolGetContact() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_contact",
		mcplib.WithDescription("Get the full detail record of a contact by its UUID, including custom fields, tags, pipeline stage and unread counters."),
		mcplib.WithString("uuid",
			mcplib.Description("The contact UUID."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetContact}
}

func (s *Server) handleGetContact(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "uuid")
	if !ok || id == "" {
		return resultErr(errors.New("get_contact: uuid is required")), nil
	}
	res, err := s.crm.GetLead(ctx, id)
	if err != nil {
		return resultErr(fmt.Errorf("get_contact: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── create_contact ───────────────────────────────────────────────────────────

func (s *Server) toolCreateContact() mcpsrv.ServerTool {
	tool := mcplib.NewTool("create_contact",
		mcplib.WithDescription("Create a contact in the Grinfi CRM.  Provide at least a name or an email; all other fields are optional."),
		mcplib.WithString("name", mcplib.Description("Full name.")),
		mcplib.WithString("first_name", mcplib.Description("First name.")),
		mcplib.WithString("last_name", mcplib.Description("Last name.")),
		mcplib.WithString("email", mcplib.Description("Email address.")),
		mcplib.WithString("linkedin", mcplib.Description("LinkedIn public handle or profile URL.")),
		mcplib.WithString("company", mcplib.Description("Company name.")),
		mcplib.WithString("position", mcplib.Description("Job title.")),
		mcplib.WithString("phone", mcplib.Description("Phone number.")),
		mcplib.WithString("list_id", mcplib.Description("List to place the contact into.")),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleCreateContact}
}

func leadFieldsFromArgs(req mcplib.CallToolRequest) grinfi.LeadFields {
	return grinfi.LeadFields{
		Name:      optString(req, "name"),
		FirstName: optString(req, "first_name"),
		LastName:  optString(req, "last_name"),
		Email:     optString(req, "email"),
		Linkedin:  optString(req, "linkedin"),
		Company:   optString(req, "company"),
		Position:  optString(req, "position"),
		Phone:     optString(req, "phone"),
		ListID:    optString(req, "list_id"),
	}
}

func (s *Server) handleCreateContact(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	fields := leadFieldsFromArgs(req)
	if fields.Name == "" && fields.Email == "" {
		return resultErr(errors.New("create_contact: name or email is required")), nil
	}
	res, err := s.crm.CreateLead(ctx, fields)
	if err != nil {
		return resultErr(fmt.Errorf("create_contact: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── update_contact ───────────────────────────────────────────────────────────

func (s *Server) toolUpdateContact() mcpsrv.ServerTool {
	tool := mcplib.NewTool("update_contact",
		mcplib.WithDescription("Apply a partial update to a contact.  Only the provided fields change; omitted fields keep their current value."),
		mcplib.WithString("uuid",
			mcplib.Description("The contact UUID."),
			mcplib.Required(),
		),
		mcplib.WithString("name", mcplib.Description("Full name.")),
		mcplib.WithString("first_name", mcplib.Description("First name.")),
		mcplib.WithString("last_name", mcplib.Description("Last name.")),
		mcplib.WithString("email", mcplib.Description("Email address.")),
		mcplib.WithString("linkedin", mcplib.Description("LinkedIn public handle or profile URL.")),
		mcplib.WithString("company", mcplib.Description("Company name.")),
		mcplib.WithString("position", mcplib.Description("Job title.")),
		mcplib.WithString("phone", mcplib.Description("Phone number.")),
		mcplib.WithString("list_id", mcplib.Description("Move the contact to this list.")),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleUpdateContact}
}

func (s *Server) handleUpdateContact(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "uuid")
	if !ok || id == "" {
		return resultErr(errors.New("update_contact: uuid is required")), nil
	}
	res, err := s.crm.UpdateLead(ctx, id, leadFieldsFromArgs(req))
	if err != nil {
		return resultErr(fmt.Errorf("update_contact: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── delete_contact ───────────────────────────────────────────────────────────

func (s *Server) toolDeleteContact() mcpsrv.ServerTool {
	tool := mcplib.NewTool("delete_contact",
		mcplib.WithDescription("Permanently delete a contact from the Grinfi CRM.  This cannot be undone."),
		mcplib.WithString("uuid",
			mcplib.Description("The contact UUID."),
			mcplib.Required(),
		),
		mcplib.WithDestructiveHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDeleteContact}
}

func (s *Server) handleDeleteContact(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "uuid")
	if !ok || id == "" {
		return resultErr(errors.New("delete_contact: uuid is required")), nil
	}
	res, err := s.crm.DeleteLead(ctx, id)
	if err != nil {
		return resultErr(fmt.Errorf("delete_contact: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── add_tags_to_contact ──────────────────────────────────────────────────────

func (s *Server) toolAddTagsToContact() mcpsrv.ServerTool {
	tool := mcplib.NewTool("add_tags_to_contact",
		mcplib.WithDescription("Attach one or more tags to a contact.  Unknown tags are created upstream."),
		mcplib.WithString("uuid",
			mcplib.Description("The contact UUID."),
			mcplib.Required(),
		),
		mcplib.WithArray("tags",
			mcplib.Description("Tag names to attach."),
			mcplib.Required(),
			mcplib.Items(map[string]any{"type": "string"}),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAddTagsToContact}
}

func (s *Server) handleAddTagsToContact(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "uuid")
	if !ok || id == "" {
		return resultErr(errors.New("add_tags_to_contact: uuid is required")), nil
	}
	tags := stringSliceArg(req, "tags")
	if len(tags) == 0 {
		return resultErr(errors.New("add_tags_to_contact: tags is required")), nil
	}
	res, err := s.crm.AddLeadTags(ctx, id, tags)
	if err != nil {
		return resultErr(fmt.Errorf("add_tags_to_contact: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── move_contact_to_stage ────────────────────────────────────────────────────

func (s *Server) toolMoveContactToStage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("move_contact_to_stage",
		mcplib.WithDescription("Move a contact to a pipeline stage.  Use get_pipeline_stages to discover stage ids."),
		mcplib.WithString("uuid",
			mcplib.Description("The contact UUID."),
			mcplib.Required(),
		),
		mcplib.WithString("stage_id",
			mcplib.Description("The target pipeline stage id."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleMoveContactToStage}
}

func (s *Server) handleMoveContactToStage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	id, ok := stringArg(req, "uuid")
	if !ok || id == "" {
		return resultErr(errors.New("move_contact_to_stage: uuid is required")), nil
	}
	stageID, ok := stringArg(req, "stage_id")
	if !ok || stageID == "" {
		return resultErr(errors.New("move_contact_to_stage: stage_id is required")), nil
	}
	res, err := s.crm.AssignStage(ctx, id, stageID)
	if err != nil {
		return resultErr(fmt.Errorf("move_contact_to_stage: %w", err)), nil
	}
	return resultJSON(res)
}
