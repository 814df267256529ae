package mcp

// In this file: unified inbox (unibox) tool definitions and handlers,
// including the unread-conversation scan.

import (
	"context"
	"errors"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/grinfi/grinfi-mcp/internal/grinfi"
)

// ─── get_conversation ─────────────────────────────────────────────────────────

func (s *Server) toolGetConversation() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_conversation",
		mcplib.WithDescription("Read the message history with a contact across LinkedIn and email, newest first."),
		mcplib.WithString("lead_uuid",
			mcplib.Description("UUID of the contact whose conversation to read."),
			mcplib.Required(),
		),
		mcplib.WithNumber("page",
			mcplib.Description("Page number, starting at 1."),
		),
		mcplib.WithNumber("per_page",
			mcplib.Description("Messages per page."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetConversation}
}

func (s *Server) handleGetConversation(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	leadUUID, ok := stringArg(req, "lead_uuid")
	if !ok || leadUUID == "" {
		return resultErr(errors.New("get_conversation: lead_uuid is required")), nil
	}
	res, err := s.crm.Conversation(ctx, leadUUID,
		intArg(req, "page", 0),
		intArg(req, "per_page", 0),
	)
	if err != nil {
		return resultErr(fmt.Errorf("get_conversation: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── send_message ─────────────────────────────────────────────────────────────

func (s *Server) toolSendMessage() mcpsrv.ServerTool {
	tool := mcplib.NewTool("send_message",
		mcplib.WithDescription(`Send a message to a contact from a sender profile through the unibox.

The channel defaults to the sender profile's medium; set it explicitly when
the profile supports both.  The subject only applies to email.`),
		mcplib.WithString("lead_uuid",
			mcplib.Description("UUID of the recipient contact."),
			mcplib.Required(),
		),
		mcplib.WithString("sender_profile_id",
			mcplib.Description("Sender profile to send from (see get_sender_profiles)."),
			mcplib.Required(),
		),
		mcplib.WithString("text",
			mcplib.Description("The message body."),
			mcplib.Required(),
		),
		mcplib.WithString("channel",
			mcplib.Description("The delivery medium."),
			mcplib.Enum("linkedin", "email"),
		),
		mcplib.WithString("subject",
			mcplib.Description("Email subject line (email channel only)."),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSendMessage}
}

func (s *Server) handleSendMessage(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	msg := grinfi.OutboundMessage{
		LeadUUID:        optString(req, "lead_uuid"),
		SenderProfileID: optString(req, "sender_profile_id"),
		Text:            optString(req, "text"),
		Channel:         optString(req, "channel"),
		Subject:         optString(req, "subject"),
	}
	if msg.LeadUUID == "" {
		return resultErr(errors.New("send_message: lead_uuid is required")), nil
	}
	if msg.SenderProfileID == "" {
		return resultErr(errors.New("send_message: sender_profile_id is required")), nil
	}
	if msg.Text == "" {
		return resultErr(errors.New("send_message: text is required")), nil
	}
	res, err := s.crm.SendMessage(ctx, msg)
	if err != nil {
		return resultErr(fmt.Errorf("send_message: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── mark_conversation_read ───────────────────────────────────────────────────

func (s *Server) toolMarkConversationRead() mcpsrv.ServerTool {
	tool := mcplib.NewTool("mark_conversation_read",
		mcplib.WithDescription("Clear the unread state of a conversation."),
		mcplib.WithString("conversation_id",
			mcplib.Description("The conversation id (see get_unread_conversations)."),
			mcplib.Required(),
		),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleMarkConversationRead}
}

func (s *Server) handleMarkConversationRead(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	convID, ok := stringArg(req, "conversation_id")
	if !ok || convID == "" {
		return resultErr(errors.New("mark_conversation_read: conversation_id is required")), nil
	}
	res, err := s.crm.MarkConversationRead(ctx, convID)
	if err != nil {
		return resultErr(fmt.Errorf("mark_conversation_read: %w", err)), nil
	}
	return resultJSON(res)
}

// ─── get_unread_conversations ─────────────────────────────────────────────────

func (s *Server) toolGetUnreadConversations() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_unread_conversations",
		mcplib.WithDescription(`Find conversations with unread inbound messages.

Scans the most recent inbound messages (newest first) and cross-references
each distinct contact's unread counters, because the upstream API has no
direct "unread" filter.  Contacts whose detail lookup fails are skipped.
Returns total_unread, the qualifying conversations with their most recent
message, and how many messages were scanned.`),
		mcplib.WithNumber("limit",
			mcplib.Description(fmt.Sprintf("How many recent inbound messages to scan (default %d, max %d).", grinfi.DefUnreadScan, grinfi.MaxUnreadScan)),
		),
		mcplib.WithString("sender_profile_id",
			mcplib.Description("Only scan messages received by this sender profile."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetUnreadConversations}
}

func (s *Server) handleGetUnreadConversations(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	res, err := s.crm.UnreadConversations(ctx, grinfi.UnreadQuery{
		Limit:           intArg(req, "limit", 0),
		SenderProfileID: optString(req, "sender_profile_id"),
	})
	if err != nil {
		return resultErr(fmt.Errorf("get_unread_conversations: %w", err)), nil
	}
	return resultJSON(res)
}
