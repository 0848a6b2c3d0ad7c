package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContentFilter(t *testing.T) {
	f := NewContentFilter()

	cases := []struct {
		text   string
		ok     bool
		reason string
	}{
		{"Great work on the launch!", true, ""},
		{"Thanks for the help!!!! Really appreciated.", true, ""},
		{"Amazing job, SHIPPED IT", true, ""},
		{"this is bullshit", false, "inappropriate_language"},
		{"see https://example.com for details", false, "url_not_allowed"},
		{"ping me at bob@example.com", false, "contact_info_not_allowed"},
		{"call 555-123-4567", false, "contact_info_not_allowed"},
		{"woooooooow", false, "spam_detected"},
	}
	for _, tc := range cases {
		ok, reason := f.Check(tc.text)
		assert.Equal(t, tc.ok, ok, tc.text)
		assert.Equal(t, tc.reason, reason, tc.text)
	}

	assert.Equal(t, "URLs and web links are not allowed.", f.RejectionMessage("url_not_allowed"))
	assert.NotEmpty(t, f.RejectionMessage("unknown"))
}
