package mcp

// In this file: scheduled outreach task tool definitions and handlers.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/grinfi/grinfi-mcp/internal/grinfi"
)

// ─── get_tasks ────────────────────────────────────────────────────────────────

func (s *Server) toolGetTasks() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_tasks",
		mcplib.WithDescription("List scheduled manual outreach tasks, optionally filtered by status, sender profile or contact."),
		mcplib.WithString("status",
			mcplib.Description("Only tasks in this state."),
			mcplib.Enum("pending", "done", "skipped"),
		),
		mcplib.WithString("sender_profile_id",
			mcplib.Description("Only tasks assigned to this sender profile."),
		),
		mcplib.WithString("lead_uuid",
			mcplib.Description("Only tasks tied to this contact."),
		),
		mcplib.WithNumber("page",
			mcplib.Description("Page number, starting at 1."),
		),
		mcplib.WithNumber("per_page",
			mcplib.Description("Page size."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetTasks}
}

func (s *Server) handleGetTasks(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.crm.Tasks(ctx, grinfi.TaskQuery{
		Status:          optString(req, "status"),
		SenderProfileID: optString(req, "sender_profile_id"),
		LeadUUID:        optString(req, "lead_uuid"),
		Page:            intArg(req, "page", 0),
		PerPage:         intArg(req, "per_page", 0),
	})
	if err != nil {
		return resultErr(fmt.Errorf("get_tasks: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── create_task ──────────────────────────────────────────────────────────────

func (s *Server) toolCreateTask() mcpsrv.ServerTool {
	tool := mcplib.NewTool("create_task",
		mcplib.WithDescription("Schedule a manual outreach task for a contact, to be performed from a sender profile."),
		mcplib.WithString("lead_uuid",
			mcplib.Description("UUID of the contact the task is about."),
			mcplib.Required(),
		),
		mcplib.WithString("sender_profile_id",
			mcplib.Description("Sender profile the task is assigned to."),
			mcplib.Required(),
		),
		mcplib.WithString("type",
			mcplib.Description("The kind of action to perform."),
			mcplib.Enum("message", "call", "connection_request", "other"),
		),
		mcplib.WithString("note",
			mcplib.Description("Free-form instructions for the task."),
		),
		mcplib.WithString("due_at",
			mcplib.Description("Due timestamp, RFC 3339 (e.g. 2026-09-01T09:00:00Z)."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleCreateTask}
}

func (s *Server) handleCreateTask(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	task := grinfi.TaskFields{
		LeadUUID:        optString(req, "lead_uuid"),
		SenderProfileID: optString(req, "sender_profile_id"),
		Type:            optString(req, "type"),
		Note:            optString(req, "note"),
		DueAt:           optString(req, "due_at"),
	}
	if task.LeadUUID == "" {
		return resultErr(errors.New("create_task: lead_uuid is required")), nil
	}
	if task.SenderProfileID == "" {
		return resultErr(errors.New("create_task: sender_profile_id is required")), nil
	}
	res, err := s.crm.CreateTask(ctx, task)
	if err != nil {
		return resultErr(fmt.Errorf("create_task: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── update_task ──────────────────────────────────────────────────────────────

func (s *Server) toolUpdateTask() mcpsrv.ServerTool {
	tool := mcplib.NewTool("update_task",
		mcplib.WithDescription("Update a scheduled task: change its status, note or due time.  Only the provided fields change."),
		mcplib.WithString("task_id",
			mcplib.Description("The task id."),
			mcplib.Required(),
		),
		mcplib.WithString("status",
			mcplib.Description("New task state."),
			mcplib.Enum("pending", "done", "skipped"),
		),
		mcplib.WithString("note",
			mcplib.Description("Replacement note."),
		),
		mcplib.WithString("due_at",
			mcplib.Description("New due timestamp, RFC 3339."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleUpdateTask}
}

func (s *Server) handleUpdateTask(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	taskID, ok := stringArg(req, "task_id")
	if !ok || taskID == "" {
		return resultErr(errors.New("update_task: task_id is required")), nil
	}
	res, err := s.crm.UpdateTask(ctx, taskID, grinfi.TaskFields{
		Status: optString(req, "status"),
		Note:   optString(req, "note"),
		DueAt:  optString(req, "due_at"),
	})
	if err != nil {
		return resultErr(fmt.Errorf("update_task: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── delete_task ──────────────────────────────────────────────────────────────

func (s *Server) toolDeleteTask() mcpsrv.ServerTool {
	tool := mcplib.NewTool("delete_task",
		mcplib.WithDescription("Delete a scheduled task."),
		mcplib.WithString("task_id",
			mcplib.Description("The task id."),
			mcplib.Required(),
		),
		mcplib.WithDestructiveHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDeleteTask}
}

func (s *Server) handleDeleteTask(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	taskID, ok := stringArg(req, "task_id")
	if !ok || taskID == "" {
		return resultErr(errors.New("delete_task: task_id is required")), nil
	}
	res, err := s.crm.DeleteTask(ctx, taskID)
	if err != nil {
		return resultErr(fmt.Errorf("delete_task: %w", err)), nil
	}
	return resultJSON(res)
}
