package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Paris", "paris"},
		{"  New York City  ", "new-york-city"},
		{"São Paulo", "so-paulo"},
		{"Rio de Janeiro!!", "rio-de-janeiro"},
		{"Kyoto -- Osaka", "kyoto-osaka"},
		{"--Bali--", "bali"},
		{"St. Petersburg", "st-petersburg"},
		{"snake_case place", "snake_case-place"},
		{"tab\tand\nnewline", "tab-and-newline"},
		{"non\u00a0breaking", "non-breaking"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestSlugifyIdempotent(t *testing.T) {
	inputs := []string{"Paris", "  New  York ", "Ho Chi Minh City", "Zürich & Bern", "a--b", "-x-", "Tōkyō"}
	for _, in := range inputs {
		once := Slugify(in)
		assert.Equal(t, once, Slugify(once), "input %q", in)
		assert.Regexp(t, `^[a-z0-9_-]*$`, once)
		assert.NotContains(t, once, "--")
	}
}

func TestIdentitySlug(t *testing.T) {
	assert.Equal(t, "paris-tour-10-days", IdentitySlug("Paris", 10))
	assert.Equal(t, "tokyo-tour-3-days", IdentitySlug("Tokyo", 3))
	assert.Equal(t, IdentitySlug("tokyo", 3), IdentitySlug("  TOKYO ", 3))
	assert.Equal(t, "new-york-tour-5-days", IdentitySlug("New York", 5))
}
