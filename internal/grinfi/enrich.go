package grinfi

// In this file: derived-URL enrichment of upstream responses.  Enrichment is
// applied per endpoint by the client methods that know their response shape,
// never by structural guessing.  It is purely additive and idempotent:
// existing fields are never removed, renamed or overwritten.

import (
	"fmt"
	"strings"
)

const (
	fieldContactURL  = "_grinfi_contact_url"
	fieldLinkedinURL = "_linkedin_url"

	contactURLTemplate  = "https://app.grinfi.io/crm/contacts/%s"
	linkedinURLTemplate = "https://www.linkedin.com/in/%s"
)

// EnrichContact adds the derived URL fields to a contact object decoded from
// an upstream response: a CRM deep link when "uuid" is present and a LinkedIn
// profile link when "linkedin" is present.
func EnrichContact(m map[string]any) {
	if m == nil {
		return
	}
	if id, ok := m["uuid"].(string); ok && id != "" {
		if _, exists := m[fieldContactURL]; !exists {
			m[fieldContactURL] = fmt.Sprintf(contactURLTemplate, id)
		}
	}
	if li, ok := m["linkedin"].(string); ok && li != "" {
		if _, exists := m[fieldLinkedinURL]; !exists {
			m[fieldLinkedinURL] = linkedinURL(li)
		}
	}
}

// linkedinURL builds a profile URL from the upstream "linkedin" field.  The
// field holds either a public handle or an already absolute URL.
func linkedinURL(v string) string {
	if strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") {
		return v
	}
	return fmt.Sprintf(linkedinURLTemplate, strings.Trim(v, "/"))
}

// EnrichLead enriches a single-contact response.  Detail endpoints return
// either a flat contact object or one nested under a "lead" key.
func EnrichLead(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if lead, ok := m["lead"].(map[string]any); ok {
		EnrichContact(lead)
		return v
	}
	EnrichContact(m)
	return v
}

// EnrichConversation enriches the "lead" object nested in a
// conversation-shaped response.
func EnrichConversation(v any) any {
	if m, ok := v.(map[string]any); ok {
		if lead, ok := m["lead"].(map[string]any); ok {
			EnrichContact(lead)
		}
	}
	return v
}

// EnrichPage enriches each element of a paginated {"data": [...]} response.
// An element carrying its own "lead" object has that object enriched;
// otherwise a flat element with a "uuid" is enriched directly.
func EnrichPage(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	data, ok := m["data"].([]any)
	if !ok {
		return v
	}
	for _, el := range data {
		em, ok := el.(map[string]any)
		if !ok {
			continue
		}
		if lead, ok := em["lead"].(map[string]any); ok {
			EnrichContact(lead)
			continue
		}
		if _, ok := em["uuid"]; ok {
			EnrichContact(em)
		}
	}
	return v
}
