package grinfi

// In this file: the unread-conversation scan.  The upstream API offers no
// "unread" filter, so unread state is inferred by cross-referencing a
// recency-ordered scan of inbound messages against each lead's unread
// counters.  The scan window is bounded to cap the fan-out of one detail
// request per distinct lead in the window.

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const (
	// DefUnreadScan is the default number of inbound messages scanned.
	DefUnreadScan = 300
	// MaxUnreadScan caps the scan window even when a larger limit is
	// requested.
	MaxUnreadScan = 1000
)

// UnreadQuery is the parameter set for UnreadConversations.
type UnreadQuery struct {
	// Limit is the scan window; 0 means DefUnreadScan, values above
	// MaxUnreadScan are clamped.
	Limit int
	// SenderProfileID narrows the scan to one sending profile.
	SenderProfileID string
}

// UnreadCount is one entry of a lead's per-channel unread counters.
type UnreadCount struct {
	SenderProfileID string `json:"sender_profile_id,omitempty"`
	Channel         string `json:"channel,omitempty"`
	Count           int    `json:"count"`
}

// UnreadConversation is one qualifying conversation in the scan result.
type UnreadConversation struct {
	LeadUUID        string        `json:"lead_uuid"`
	Name            string        `json:"name,omitempty"`
	LastMessage     string        `json:"last_message"`
	LastMessageAt   string        `json:"last_message_at"`
	SenderProfileID string        `json:"sender_profile_id,omitempty"`
	ConversationID  string        `json:"conversation_id,omitempty"`
	UnreadCounts    []UnreadCount `json:"unread_counts"`
}

// UnreadResult is the aggregated scan outcome.
type UnreadResult struct {
	TotalUnread         int                  `json:"total_unread"`
	UnreadConversations []UnreadConversation `json:"unread_conversations"`
	MessagesScanned     int                  `json:"messages_scanned"`
	UpstreamTotal       int                  `json:"upstream_total"`
	Note                string               `json:"note,omitempty"`
}

// inboxMessage is the subset of an inbound unibox message the scan needs.
type inboxMessage struct {
	ID              string `json:"id"`
	ConversationID  string `json:"conversation_id"`
	SenderProfileID string `json:"sender_profile_id"`
	LeadUUID        string `json:"lead_uuid"`
	Text            string `json:"text"`
	CreatedAt       string `json:"created_at"`
	Lead            struct {
		UUID string `json:"uuid"`
		Name string `json:"name"`
	} `json:"lead"`
}

// leadID returns the lead identifier, preferring the flat field over the
// nested lead object.
func (m *inboxMessage) leadID() string {
	if m.LeadUUID != "" {
		return m.LeadUUID
	}
	return m.Lead.UUID
}

type inboxPage struct {
	Data  []inboxMessage `json:"data"`
	Total int            `json:"total"`
}

// leadRecord is the subset of a lead detail record the scan inspects.
type leadRecord struct {
	UUID         string        `json:"uuid"`
	Name         string        `json:"name"`
	UnreadCounts []UnreadCount `json:"unread_counts"`
}

// UnreadConversations scans the most recent inbound messages and returns the
// conversations whose lead has at least one positive unread counter.  A lead
// whose detail lookup fails is skipped, never failing the whole scan.
func (c *Client) UnreadConversations(ctx context.Context, q UnreadQuery) (*UnreadResult, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = DefUnreadScan
	}
	limit = min(limit, MaxUnreadScan)

	p := NewParams().
		Filter("direction", "inbound").
		Filter("sender_profile_id", q.SenderProfileID).
		Set("sort", "-created_at").
		SetInt("per_page", limit)
	var page inboxPage
	if err := c.get(ctx, epUniboxMsgs, p, &page); err != nil {
		return nil, fmt.Errorf("unread scan: %w", err)
	}
	if len(page.Data) == 0 {
		return &UnreadResult{
			UnreadConversations: []UnreadConversation{},
			UpstreamTotal:       page.Total,
			Note:                "no inbound messages found in the unibox",
		}, nil
	}

	// One entry per distinct lead.  The scan is newest first, so the first
	// occurrence is the most recent message.
	seen := make(map[string]struct{}, len(page.Data))
	var latest []inboxMessage
	for _, msg := range page.Data {
		id := msg.leadID()
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		latest = append(latest, msg)
	}

	convs := make([]*UnreadConversation, len(latest))
	if c.unreadWorkers > 1 {
		var g errgroup.Group
		g.SetLimit(c.unreadWorkers)
		for i := range latest {
			g.Go(func() error {
				convs[i] = c.inspectLead(ctx, &latest[i])
				return nil
			})
		}
		// inspectLead swallows lookup failures, so Wait cannot fail.
		_ = g.Wait()
	} else {
		for i := range latest {
			convs[i] = c.inspectLead(ctx, &latest[i])
		}
	}

	out := make([]UnreadConversation, 0, len(convs))
	for _, cv := range convs {
		if cv != nil {
			out = append(out, *cv)
		}
	}
	return &UnreadResult{
		TotalUnread:         len(out),
		UnreadConversations: out,
		MessagesScanned:     len(page.Data),
		UpstreamTotal:       page.Total,
	}, nil
}

// inspectLead fetches the lead detail record and returns the conversation
// entry if the lead has unread messages.  Returns nil when the lead has no
// unread messages or the lookup failed.
func (c *Client) inspectLead(ctx context.Context, msg *inboxMessage) *UnreadConversation {
	id := msg.leadID()
	var lead leadRecord
	if err := c.get(ctx, epLead(id), nil, &lead); err != nil {
		c.logger.WarnContext(ctx, "unread scan: lead lookup failed, skipping",
			"lead_uuid", id, "error", err)
		return nil
	}
	if !hasUnread(lead.UnreadCounts) {
		return nil
	}
	name := lead.Name
	if name == "" {
		name = msg.Lead.Name
	}
	return &UnreadConversation{
		LeadUUID:        id,
		Name:            name,
		LastMessage:     msg.Text,
		LastMessageAt:   msg.CreatedAt,
		SenderProfileID: msg.SenderProfileID,
		ConversationID:  msg.ConversationID,
		UnreadCounts:    lead.UnreadCounts,
	}
}

func hasUnread(counts []UnreadCount) bool {
	for _, uc := range counts {
		if uc.Count > 0 {
			return true
		}
	}
	return false
}
