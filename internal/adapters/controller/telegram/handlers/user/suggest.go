package user

import (
	"context"

	"github.com/nlypage/intele/collector"
	tele "gopkg.in/telebot.v3"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/utils"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/utils/validator"
)

// Suggest collects a practice link for the curator. The first line must be a
// youtube link, everything below it becomes the comment.
func (h Handler) Suggest(c tele.Context) error {
	h.logger.Infof("(user: %d) suggestion input", c.Sender().ID)
	inputCollector := collector.New()
	msg, _ := c.Bot().Send(c.Chat(), h.layout.Text(c, "suggest_prompt"))
	inputCollector.Collect(msg)
	inputCollector.Collect(c.Message())

	var (
		videoURL string
		comment  string
		done     bool
	)
	for {
		message, canceled, errGet := h.input.Get(context.Background(), c.Sender().ID, 0)
		if message != nil {
			inputCollector.Collect(message)
		}
		switch {
		case canceled:
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true, ExcludeLast: true})
			return nil
		case errGet != nil:
			h.logger.Errorf("(user: %d) error while input suggestion: %v", c.Sender().ID, errGet)
			_ = inputCollector.Send(c,
				h.layout.Text(c, "input_error", h.layout.Text(c, "suggest_prompt")),
			)
		default:
			url, rest := utils.SplitSuggestion(message.Text)
			if !validator.YouTubeURL(url, nil) {
				_ = inputCollector.Send(c,
					h.layout.Text(c, "invalid_suggestion"),
				)
				continue
			}
			videoURL, comment = url, rest
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
			done = true
		}
		if done {
			break
		}
	}

	if _, err := h.suggestionService.Add(context.Background(), c.Sender().ID, videoURL, comment); err != nil {
		h.logger.Errorf("(user: %d) error while saving suggestion: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}

	h.logger.Infof("(user: %d) suggestion saved: %s", c.Sender().ID, videoURL)
	return c.Send(
		h.layout.Text(c, "suggestion_saved"),
		h.layout.Markup(c, "menu"),
	)
}
