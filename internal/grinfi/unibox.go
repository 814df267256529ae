package grinfi

// In this file: unified inbox (unibox) operations covering both LinkedIn and
// email messages.  See unread.go for the unread-conversation scan.

import (
	"context"
	"net/http"
)

// OutboundMessage describes a message to send from a sender profile to a
// contact.  Channel selects the medium ("linkedin" or "email"); Subject is
// only meaningful for email.
type OutboundMessage struct {
	LeadUUID        string `json:"lead_uuid"`
	SenderProfileID string `json:"sender_profile_id"`
	Text            string `json:"text"`
	Channel         string `json:"channel,omitempty"`
	Subject         string `json:"subject,omitempty"`
}

// Conversation returns the message history with a contact, newest first.
func (c *Client) Conversation(ctx context.Context, leadUUID string, page, perPage int) (any, error) {
	p := NewParams().
		SetInt("page", page).
		SetInt("per_page", perPage)
	v, err := c.call(ctx, http.MethodGet, epConversation(leadUUID), p.Values(), nil)
	if err != nil {
		return nil, err
	}
	return EnrichConversation(v), nil
}

// SendMessage sends an outbound message through the unibox.
func (c *Client) SendMessage(ctx context.Context, msg OutboundMessage) (any, error) {
	return c.call(ctx, http.MethodPost, epUniboxMsgs, nil, &msg)
}

// MarkConversationRead clears the unread state of a conversation.
func (c *Client) MarkConversationRead(ctx context.Context, conversationID string) (any, error) {
	return c.call(ctx, http.MethodPost, epConversationRead(conversationID), nil, nil)
}
