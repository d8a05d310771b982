package user

import (
	"context"
	"errors"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
)

type progressView struct {
	Days      int
	Completed int64
	Position  int
	Total     int
	Ranked    bool
}

func (h Handler) Progress(c tele.Context) error {
	h.logger.Infof("(user: %d) progress requested", c.Sender().ID)

	user, err := h.userService.Get(context.Background(), c.Sender().ID)
	if err != nil {
		return c.Send(
			h.layout.Text(c, "need_onboarding"),
		)
	}

	if user.Days == 0 {
		return c.Send(
			h.layout.Text(c, "progress_empty"),
		)
	}

	view := progressView{Days: user.Days}
	view.Completed, err = h.progressService.CompletedCount(context.Background(), user)
	if err != nil {
		h.logger.Errorf("(user: %d) error while counting completed: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}

	view.Position, view.Total, err = h.progressService.Rank(context.Background(), user)
	switch {
	case err == nil:
		view.Ranked = true
	case errors.Is(err, errorz.ErrNotRanked):
	default:
		h.logger.Errorf("(user: %d) error while ranking: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}

	return c.Send(
		h.layout.Text(c, "progress", view),
		h.layout.Markup(c, "progress:reset"),
	)
}

func (h Handler) ResetConfirm(c tele.Context) error {
	return c.Edit(
		h.layout.Text(c, "reset_confirm"),
		h.layout.Markup(c, "reset:confirm"),
	)
}

func (h Handler) Reset(c tele.Context) error {
	h.logger.Infof("(user: %d) progress reset", c.Sender().ID)

	if _, err := h.userService.ResetProgress(context.Background(), c.Sender().ID); err != nil {
		h.logger.Errorf("(user: %d) error while resetting progress: %v", c.Sender().ID, err)
		return c.Edit(
			h.layout.Text(c, "technical_issues"),
		)
	}

	return c.Edit(
		h.layout.Text(c, "reset_done"),
	)
}

func (h Handler) ResetCancel(c tele.Context) error {
	return c.Edit(
		h.layout.Text(c, "reset_canceled"),
	)
}

// Done handles the button under a delivered practice. Callback data carries
// the ledger row id.
func (h Handler) Done(c tele.Context) error {
	logID, err := strconv.ParseUint(c.Callback().Data, 10, 32)
	if err != nil {
		return errorz.ErrInvalidCallbackData
	}

	if err = h.progressService.MarkDone(context.Background(), uint(logID)); err != nil {
		h.logger.Errorf("(user: %d) error while marking log %d done: %v", c.Sender().ID, logID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}
	h.logger.Infof("(user: %d) practice marked done (log_id=%d)", c.Sender().ID, logID)

	// Drop the button so the practice cannot be counted twice.
	_, _ = c.Bot().EditReplyMarkup(c.Message(), nil)

	user, err := h.userService.Get(context.Background(), c.Sender().ID)
	if err != nil {
		return nil
	}
	completed, err := h.progressService.CompletedCount(context.Background(), user)
	if err != nil {
		return nil
	}

	return c.Send(
		h.layout.Text(c, "practice_done", struct {
			Completed int64
			Days      int
		}{Completed: completed, Days: user.Days}),
	)
}
