package validator

import (
	"net/url"
	"strings"
)

// YouTubeVideoID extracts the video id from a youtube link. Supported shapes:
// youtu.be/<id>, youtube.com/watch?v=<id> and youtube.com/embed/<id>.
// Returns an empty string for anything else.
func YouTubeVideoID(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}

	host := strings.TrimPrefix(parsed.Hostname(), "www.")
	switch host {
	case "youtu.be":
		return strings.Trim(parsed.Path, "/")
	case "youtube.com", "m.youtube.com":
		if parsed.Path == "/watch" {
			return parsed.Query().Get("v")
		}
		if rest, ok := strings.CutPrefix(parsed.Path, "/embed/"); ok {
			return strings.Trim(rest, "/")
		}
	}
	return ""
}

func YouTubeURL(rawURL string, _ map[string]interface{}) bool {
	return YouTubeVideoID(rawURL) != ""
}
