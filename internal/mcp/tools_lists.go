package mcp

// In this file: contact list tool definitions and handlers.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
)

// ─── get_lists ────────────────────────────────────────────────────────────────

func (s *Server) toolGetLists() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_lists",
		mcplib.WithDescription("List the contact lists in the Grinfi CRM with their ids and contact counts."),
		mcplib.WithString("search",
			mcplib.Description("Free-text search over list names."),
		),
		mcplib.WithNumber("page",
			mcplib.Description("Page number, starting at 1."),
		),
		mcplib.WithNumber("per_page",
			mcplib.Description("Page size."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetLists}
}

func (s *Server) handleGetLists(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.crm.Lists(ctx,
		optString(req, "search"),
		intArg(req, "page", 0),
		intArg(req, "per_page", 0),
	)
	if err != nil {
		return resultErr(fmt.Errorf("get_lists: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── create_list ──────────────────────────────────────────────────────────────

func (s *Server) toolCreateList() mcpsrv.ServerTool {
	tool := mcplib.NewTool("create_list",
		mcplib.WithDescription("Create an empty contact list."),
		mcplib.WithString("name",
			mcplib.Description("The list name."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleCreateList}
}

func (s *Server) handleCreateList(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name, ok := stringArg(req, "name")
	if !ok || name == "" {
		return resultErr(errors.New("create_list: name is required")), nil
	}
	res, err := s.crm.CreateList(ctx, name)
	if err != nil {
		return resultErr(fmt.Errorf("create_list: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── add_contacts_to_list ─────────────────────────────────────────────────────

func (s *Server) toolAddContactsToList() mcpsrv.ServerTool {
	tool := mcplib.NewTool("add_contacts_to_list",
		mcplib.WithDescription("Add one or more contacts to a list."),
		mcplib.WithString("list_id",
			mcplib.Description("The target list id."),
			mcplib.Required(),
		),
		mcplib.WithArray("lead_uuids",
			mcplib.Description("UUIDs of the contacts to add."),
			mcplib.Required(),
			mcplib.Items(map[string]any{"type": "string"}),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAddContactsToList}
}

func (s *Server) handleAddContactsToList(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	listID, ok := stringArg(req, "list_id")
	if !ok || listID == "" {
		return resultErr(errors.New("add_contacts_to_list: list_id is required")), nil
	}
	uuids := stringSliceArg(req, "lead_uuids")
	if len(uuids) == 0 {
		return resultErr(errors.New("add_contacts_to_list: lead_uuids is required")), nil
	}
	res, err := s.crm.AddToList(ctx, listID, uuids)
	if err != nil {
		return resultErr(fmt.Errorf("add_contacts_to_list: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── remove_contacts_from_list ────────────────────────────────────────────────

func (s *Server) toolRemoveContactsFromList() mcpsrv.ServerTool {
	tool := mcplib.NewTool("remove_contacts_from_list",
		mcplib.WithDescription("Remove one or more contacts from a list.  The contacts themselves are not deleted."),
		mcplib.WithString("list_id",
			mcplib.Description("The list id."),
			mcplib.Required(),
		),
		mcplib.WithArray("lead_uuids",
			mcplib.Description("UUIDs of the contacts to remove."),
			mcplib.Required(),
			mcplib.Items(map[string]any{"type": "string"}),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleRemoveContactsFromList}
}

func (s *Server) handleRemoveContactsFromList(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	listID, ok := stringArg(req, "list_id")
	if !ok || listID == "" {
		return resultErr(errors.New("remove_contacts_from_list: list_id is required")), nil
	}
	uuids := stringSliceArg(req, "lead_uuids")
	if len(uuids) == 0 {
		return resultErr(errors.New("remove_contacts_from_list: lead_uuids is required")), nil
	}
	res, err := s.crm.RemoveFromList(ctx, listID, uuids)
	if err != nil {
		return resultErr(fmt.Errorf("remove_contacts_from_list: %w", err)), nil
	}
	return resultJSON(res)
}
