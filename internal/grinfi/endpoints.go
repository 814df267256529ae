package grinfi

// In this file: the upstream path table.  Paths and verbs are the external
// contract of this adapter and must not change between releases.

import "net/url"

const (
	epLeads         = "/api/v1/leads"
	epLists         = "/api/v1/lists"
	epFlows         = "/api/v1/flows"
	epUniboxMsgs    = "/api/v1/unibox/messages"
	epConversations = "/api/v1/unibox/conversations"
	epTasks         = "/api/v1/tasks"
	epSenders       = "/api/v1/senders"
	epMailboxes     = "/api/v1/mailboxes"
	epTags          = "/api/v1/tags"
	epPipelines     = "/api/v1/pipelines"
	epWebhooks      = "/api/v1/webhooks"
)

func epLead(uuid string) string {
	return epLeads + "/" + url.PathEscape(uuid)
}

func epLeadTags(uuid string) string {
	return epLead(uuid) + "/tags"
}

func epLeadStage(uuid string) string {
	return epLead(uuid) + "/stage"
}

func epListLeads(listID string) string {
	return epLists + "/" + url.PathEscape(listID) + "/leads"
}

func epFlow(flowID, action string) string {
	return epFlows + "/" + url.PathEscape(flowID) + "/" + action
}

func epFlowLead(flowID, uuid string) string {
	return epFlow(flowID, "leads") + "/" + url.PathEscape(uuid)
}

func epConversation(leadUUID string) string {
	return epConversations + "/" + url.PathEscape(leadUUID)
}

func epConversationRead(conversationID string) string {
	return epConversations + "/" + url.PathEscape(conversationID) + "/read"
}

func epTask(taskID string) string {
	return epTasks + "/" + url.PathEscape(taskID)
}

func epWebhook(webhookID string) string {
	return epWebhooks + "/" + url.PathEscape(webhookID)
}
