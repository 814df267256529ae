package grinfi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── EnrichContact ────────────────────────────────────────────────────────────

func TestEnrichContact(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want map[string]any
	}{
		{
			"uuid and handle",
			map[string]any{"uuid": "u1", "linkedin": "jdoe"},
			map[string]any{
				"uuid":              "u1",
				"linkedin":          "jdoe",
				"_grinfi_contact_url": "https://app.grinfi.io/crm/contacts/u1",
				"_linkedin_url":       "https://www.linkedin.com/in/jdoe",
			},
		},
		{
			"uuid only",
			map[string]any{"uuid": "u2"},
			map[string]any{
				"uuid":              "u2",
				"_grinfi_contact_url": "https://app.grinfi.io/crm/contacts/u2",
			},
		},
		{
			"no uuid unchanged",
			map[string]any{"name": "Jane"},
			map[string]any{"name": "Jane"},
		},
		{
			"absolute linkedin url passed through",
			map[string]any{"uuid": "u3", "linkedin": "https://www.linkedin.com/in/jane-doe"},
			map[string]any{
				"uuid":              "u3",
				"linkedin":          "https://www.linkedin.com/in/jane-doe",
				"_grinfi_contact_url": "https://app.grinfi.io/crm/contacts/u3",
				"_linkedin_url":       "https://www.linkedin.com/in/jane-doe",
			},
		},
		{
			"handle slashes trimmed",
			map[string]any{"uuid": "u4", "linkedin": "/jdoe/"},
			map[string]any{
				"uuid":              "u4",
				"linkedin":          "/jdoe/",
				"_grinfi_contact_url": "https://app.grinfi.io/crm/contacts/u4",
				"_linkedin_url":       "https://www.linkedin.com/in/jdoe",
			},
		},
		{
			"non-string uuid ignored",
			map[string]any{"uuid": float64(42)},
			map[string]any{"uuid": float64(42)},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			EnrichContact(tt.in)
			assert.Equal(t, tt.want, tt.in)
		})
	}
}

func TestEnrichContact_neverOverwrites(t *testing.T) {
	m := map[string]any{
		"uuid":              "u1",
		"_grinfi_contact_url": "preexisting",
	}
	EnrichContact(m)
	assert.Equal(t, "preexisting", m["_grinfi_contact_url"])
}

func TestEnrichContact_idempotent(t *testing.T) {
	m := map[string]any{"uuid": "u1", "linkedin": "jdoe"}
	EnrichContact(m)
	once := map[string]any{}
	for k, v := range m {
		once[k] = v
	}
	EnrichContact(m)
	assert.Equal(t, once, m)
}

func TestEnrichContact_nil(t *testing.T) {
	assert.NotPanics(t, func() { EnrichContact(nil) })
}

// ─── EnrichLead / EnrichConversation ──────────────────────────────────────────

func TestEnrichLead(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		v := EnrichLead(map[string]any{"uuid": "u1"})
		m, ok := v.(map[string]any)
		require.True(t, ok)
		assert.Equal(t, "https://app.grinfi.io/crm/contacts/u1", m["_grinfi_contact_url"])
	})
	t.Run("nested under lead", func(t *testing.T) {
		v := EnrichLead(map[string]any{
			"lead": map[string]any{"uuid": "u1"},
		})
		m := v.(map[string]any)
		lead := m["lead"].(map[string]any)
		assert.Equal(t, "https://app.grinfi.io/crm/contacts/u1", lead["_grinfi_contact_url"])
		assert.NotContains(t, m, "_grinfi_contact_url")
	})
	t.Run("non-map passthrough", func(t *testing.T) {
		assert.Equal(t, "plain", EnrichLead("plain"))
	})
}

func TestEnrichConversation(t *testing.T) {
	v := EnrichConversation(map[string]any{
		"lead":     map[string]any{"uuid": "u1", "linkedin": "jdoe"},
		"messages": []any{},
	})
	lead := v.(map[string]any)["lead"].(map[string]any)
	assert.Equal(t, "https://app.grinfi.io/crm/contacts/u1", lead["_grinfi_contact_url"])
	assert.Equal(t, "https://www.linkedin.com/in/jdoe", lead["_linkedin_url"])
}

// ─── EnrichPage ───────────────────────────────────────────────────────────────

func TestEnrichPage(t *testing.T) {
	v := EnrichPage(map[string]any{
		"data": []any{
			map[string]any{"uuid": "u1"},
			map[string]any{"lead": map[string]any{"uuid": "u2"}},
			map[string]any{"name": "no id"},
			"not a map",
		},
		"total": float64(4),
	})
	m := v.(map[string]any)
	data := m["data"].([]any)

	first := data[0].(map[string]any)
	assert.Equal(t, "https://app.grinfi.io/crm/contacts/u1", first["_grinfi_contact_url"])

	second := data[1].(map[string]any)["lead"].(map[string]any)
	assert.Equal(t, "https://app.grinfi.io/crm/contacts/u2", second["_grinfi_contact_url"])

	third := data[2].(map[string]any)
	assert.NotContains(t, third, "_grinfi_contact_url")

	assert.Equal(t, float64(4), m["total"])
}

func TestEnrichPage_oddShapes(t *testing.T) {
	assert.Equal(t, "text", EnrichPage("text"))
	assert.Equal(t, map[string]any{"total": float64(0)}, EnrichPage(map[string]any{"total": float64(0)}))
	assert.Equal(t, map[string]any{"data": "oops"}, EnrichPage(map[string]any{"data": "oops"}))
}
