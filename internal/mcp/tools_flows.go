package mcp

// In this file: outreach automation (flow) tool definitions and handlers.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"
)

// ─── get_flows ────────────────────────────────────────────────────────────────

func (s *Server) toolGetFlows() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_flows",
		mcplib.WithDescription("List the outreach automations (flows) with their ids, statuses and step counts."),
		mcplib.WithString("status",
			mcplib.Description("Only flows in this state."),
			mcplib.Enum("active", "paused", "archived"),
		),
		mcplib.WithNumber("page",
			mcplib.Description("Page number, starting at 1."),
		),
		mcplib.WithNumber("per_page",
			mcplib.Description("Page size."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetFlows}
}

func (s *Server) handleGetFlows(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.crm.Flows(ctx,
		optString(req, "status"),
		intArg(req, "page", 0),
		intArg(req, "per_page", 0),
	)
	if err != nil {
		return resultErr(fmt.Errorf("get_flows: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── start_flow / stop_flow ───────────────────────────────────────────────────

func (s *Server) toolStartFlow() mcpsrv.ServerTool {
	tool := mcplib.NewTool("start_flow",
		mcplib.WithDescription("Start (or resume) an outreach automation.  Enrolled contacts begin receiving the flow's steps."),
		mcplib.WithString("flow_id",
			mcplib.Description("The flow id."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleStartFlow}
}

func (s *Server) handleStartFlow(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	flowID, ok := stringArg(req, "flow_id")
	if !ok || flowID == "" {
		return resultErr(errors.New("start_flow: flow_id is required")), nil
	}
	res, err := s.crm.StartFlow(ctx, flowID)
	if err != nil {
		return resultErr(fmt.Errorf("start_flow: %w", err)), nil
	}
	return resultJSON(res)
}

func (s *Server) toolStopFlow() mcpsrv.ServerTool {
	tool := mcplib.NewTool("stop_flow",
		mcplib.WithDescription("Stop (pause) an outreach automation.  No further steps are sent until it is started again."),
		mcplib.WithString("flow_id",
			mcplib.Description("The flow id."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleStopFlow}
}

func (s *Server) handleStopFlow(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	flowID, ok := stringArg(req, "flow_id")
	if !ok || flowID == "" {
		return resultErr(errors.New("stop_flow: flow_id is required")), nil
	}
	res, err := s.crm.StopFlow(ctx, flowID)
	if err != nil {
		return resultErr(fmt.Errorf("stop_flow: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── add_contacts_to_flow ─────────────────────────────────────────────────────

func (s *Server) toolAddContactsToFlow() mcpsrv.ServerTool {
	tool := mcplib.NewTool("add_contacts_to_flow",
		mcplib.WithDescription("Enrol one or more contacts into an outreach automation."),
		mcplib.WithString("flow_id",
			mcplib.Description("The flow id."),
			mcplib.Required(),
		),
		mcplib.WithArray("lead_uuids",
			mcplib.Description("UUIDs of the contacts to enrol."),
			mcplib.Required(),
			mcplib.Items(map[string]any{"type": "string"}),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleAddContactsToFlow}
}

func (s *Server) handleAddContactsToFlow(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	flowID, ok := stringArg(req, "flow_id")
	if !ok || flowID == "" {
		return resultErr(errors.New("add_contacts_to_flow: flow_id is required")), nil
	}
	uuids := stringSliceArg(req, "lead_uuids")
	if len(uuids) == 0 {
		return resultErr(errors.New("add_contacts_to_flow: lead_uuids is required")), nil
	}
	res, err := s.crm.AddToFlow(ctx, flowID, uuids)
	if err != nil {
		return resultErr(fmt.Errorf("add_contacts_to_flow: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── remove_contact_from_flow ─────────────────────────────────────────────────

func (s *Server) toolRemoveContactFromFlow() mcpsrv.ServerTool {
	tool := mcplib.NewTool("remove_contact_from_flow",
		mcplib.WithDescription("Withdraw a contact from an outreach automation.  Steps already sent are unaffected."),
		mcplib.WithString("flow_id",
			mcplib.Description("The flow id."),
			mcplib.Required(),
		),
		mcplib.WithString("lead_uuid",
			mcplib.Description("UUID of the contact to withdraw."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleRemoveContactFromFlow}
}

func (s *Server) handleRemoveContactFromFlow(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	flowID, ok := stringArg(req, "flow_id")
	if !ok || flowID == "" {
		return resultErr(errors.New("remove_contact_from_flow: flow_id is required")), nil
	}
	leadUUID, ok := stringArg(req, "lead_uuid")
	if !ok || leadUUID == "" {
		return resultErr(errors.New("remove_contact_from_flow: lead_uuid is required")), nil
	}
	res, err := s.crm.RemoveFromFlow(ctx, flowID, leadUUID)
	if err != nil {
		return resultErr(fmt.Errorf("remove_contact_from_flow: %w", err)), nil
	}
	return resultJSON(res)
}
