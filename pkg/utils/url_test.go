package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveEndpoint(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"https://api.yelp.com/v3", "businesses/search", "https://api.yelp.com/v3/businesses/search"},
		{"https://api.yelp.com/v3/", "/businesses/search", "https://api.yelp.com/v3/businesses/search"},
		{"http://127.0.0.1:5000", "search/", "http://127.0.0.1:5000/search/"},
	}
	for _, tt := range tests {
		got, err := ResolveEndpoint(tt.base, tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestExcerpt(t *testing.T) {
	assert.Equal(t, "short", Excerpt("  short  ", 10))
	long := strings.Repeat("x", 20)
	assert.Equal(t, strings.Repeat("x", 8)+"...", Excerpt(long, 8))
}
