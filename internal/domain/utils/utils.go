package utils

import (
	"strings"

	tele "gopkg.in/telebot.v3"
)

// GetMessageText returns the text of a message, falling back to the caption
// for media messages.
func GetMessageText(msg *tele.Message) string {
	switch {
	case msg.Text != "":
		return msg.Text
	case msg.Caption != "":
		return msg.Caption
	default:
		return ""
	}
}

// SplitSuggestion splits a suggestion message into the link line and the
// optional comment below it.
func SplitSuggestion(text string) (url string, comment string) {
	url, comment, _ = strings.Cut(strings.TrimSpace(text), "\n")
	return strings.TrimSpace(url), strings.TrimSpace(comment)
}
