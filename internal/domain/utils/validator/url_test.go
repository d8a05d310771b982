package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestYouTubeVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://youtu.be/oTzetTgYpSU", "oTzetTgYpSU"},
		{"https://youtu.be/oTzetTgYpSU?si=_V8LNx3i3Iq5zeoH", "oTzetTgYpSU"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtube.com/watch?v=dQw4w9WgXcQ&t=10s", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/embed/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://m.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://vimeo.com/12345", ""},
		{"https://www.youtube.com/playlist?list=PL123", ""},
		{"not a url at all", ""},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, YouTubeVideoID(tt.url), "url %q", tt.url)
	}
}

func TestYouTubeURL(t *testing.T) {
	assert.True(t, YouTubeURL("https://youtu.be/abc123", nil))
	assert.False(t, YouTubeURL("https://example.com/abc123", nil))
}
