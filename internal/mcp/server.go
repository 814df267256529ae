package mcp

// In this file: MCP server construction, the stdio transport, and the
// result/argument helpers shared by all tool handlers.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/grinfi/grinfi-mcp/internal/grinfi"
)

const (
	serverName    = "grinfi-mcp"
	serverVersion = "1.1.0"
)

// Server wraps the MCP server and the Grinfi API client behind it.
type Server struct {
	mcp    *mcpsrv.MCPServer
	crm    *grinfi.Client
	logger *slog.Logger
}

// Option is the signature of a Server option-setting function.
type Option func(*Server)

// WithLogger sets the logger.  A nil logger falls back to slog.Default().
func WithLogger(lg *slog.Logger) Option {
	return func(s *Server) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// New creates an MCP server backed by the given Grinfi client.  The server
// is populated with all tools but does not start listening until one of the
// Serve* methods is called.
func New(crm *grinfi.Client, opts ...Option) *Server {
	s := &Server{
		crm:    crm,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	mcpServer := mcpsrv.NewMCPServer(
		serverName,
		serverVersion,
		mcpsrv.WithInstructions(instructions()),
	)
	for _, t := range s.tools() {
		mcpServer.AddTool(t.Tool, t.Handler)
	}
	s.mcp = mcpServer
	return s
}

// instructions describes the connected CRM to the agent.
func instructions() string {
	return `You are connected to a Grinfi CRM MCP server.

Grinfi is an outreach CRM: contacts ("leads") are organised in lists, moved
through pipeline stages, enrolled into multi-step outreach automations
("flows"), and messaged over LinkedIn or email from sender profiles through
a unified inbox ("unibox").

Available tools cover:
- searching, creating and updating contacts
- managing lists and tags
- starting/stopping flows and enrolling contacts into them
- reading conversations, sending messages, finding unread conversations
- scheduling manual outreach tasks
- inspecting sender profiles, mailboxes, pipelines and webhooks

Contact results carry two derived fields: _grinfi_contact_url (a deep link
into the Grinfi CRM) and _linkedin_url (the contact's LinkedIn profile).
All data lives in the upstream Grinfi account; nothing is stored locally.`
}

// tools returns all MCP tools this server exposes.
func (s *Server) tools() []mcpsrv.ServerTool {
	return []mcpsrv.ServerTool{
		// contacts
		s.toolSearchContacts(),
		s.toolGetContact(),
		s.toolCreateContact(),
		s.toolUpdateContact(),
		s.toolDeleteContact(),
		s.toolAddTagsToContact(),
		s.toolMoveContactToStage(),
		// lists
		s.toolGetLists(),
		s.toolCreateList(),
		s.toolAddContactsToList(),
		s.toolRemoveContactsFromList(),
		// flows
		s.toolGetFlows(),
		s.toolStartFlow(),
		s.toolStopFlow(),
		s.toolAddContactsToFlow(),
		s.toolRemoveContactFromFlow(),
		// unibox
		s.toolGetConversation(),
		s.toolSendMessage(),
		s.toolMarkConversationRead(),
		s.toolGetUnreadConversations(),
		// tasks
		s.toolGetTasks(),
		s.toolCreateTask(),
		s.toolUpdateTask(),
		s.toolDeleteTask(),
		// account
		s.toolGetSenderProfiles(),
		s.toolGetMailboxes(),
		s.toolGetTags(),
		s.toolCreateTag(),
		s.toolGetPipelineStages(),
		s.toolGetWebhooks(),
		s.toolCreateWebhook(),
		s.toolDeleteWebhook(),
	}
}

// ServeStdio runs the MCP server over stdin/stdout until ctx is cancelled.
// This is the transport used by local agent integrations.
func (s *Server) ServeStdio(ctx context.Context) error {
	srv := mcpsrv.NewStdioServer(s.mcp)
	s.logger.InfoContext(ctx, "mcp server listening on stdio")
	if err := srv.Listen(ctx, os.Stdin, os.Stdout); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// resultText wraps text in a successful CallToolResult.
func resultText(text string) *mcplib.CallToolResult {
	return mcplib.NewToolResultText(text)
}

// resultErr wraps an error in a CallToolResult with IsError=true.
func resultErr(err error) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(err.Error())},
		IsError: true,
	}
}

// resultJSON serialises v to JSON and returns it as a CallToolResult.
func resultJSON(v any) (*mcplib.CallToolResult, error) {
	return mcplib.NewToolResultJSON(v)
}

// stringArg extracts a named string argument from a tool call request.
// Returns ("", false) if the argument is absent or not a string.
func stringArg(req mcplib.CallToolRequest, name string) (string, bool) {
	args := req.GetArguments()
	if args == nil {
		return "", false
	}
	v, ok := args[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// optString extracts an optional string argument, returning "" when unset.
func optString(req mcplib.CallToolRequest, name string) string {
	s, _ := stringArg(req, name)
	return s
}

// intArg extracts a named int argument.  The MCP protocol serialises numbers
// as float64, so we convert accordingly.
func intArg(req mcplib.CallToolRequest, name string, defaultVal int) int {
	args := req.GetArguments()
	if args == nil {
		return defaultVal
	}
	v, ok := args[name]
	if !ok {
		return defaultVal
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return defaultVal
}

// stringSliceArg extracts a named string-array argument.  Non-string
// elements are dropped.
func stringSliceArg(req mcplib.CallToolRequest, name string) []string {
	args := req.GetArguments()
	if args == nil {
		return nil
	}
	raw, ok := args[name].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, el := range raw {
		if s, ok := el.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
