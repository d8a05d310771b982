package user

import (
	"context"
	"errors"
	"strconv"

	tele "gopkg.in/telebot.v3"
	"gorm.io/gorm"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
)

// ChallengeOn handles "/challenge <id>". Without an argument the command is
// silently ignored.
func (h Handler) ChallengeOn(c tele.Context) error {
	payload := c.Message().Payload
	if payload == "" {
		return nil
	}

	practiceID, err := strconv.Atoi(payload)
	if err != nil {
		return c.Send(
			h.layout.Text(c, "challenge_bad_id"),
		)
	}
	if practiceID < 1 {
		return c.Send(
			h.layout.Text(c, "challenge_bad_id"),
		)
	}

	user, err := h.userService.StartChallenge(context.Background(), c.Sender().ID, uint(practiceID))
	if err != nil {
		switch {
		case errors.Is(err, errorz.ErrNotOnboarded):
			return c.Send(
				h.layout.Text(c, "challenge_need_onboarding"),
			)
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Send(
				h.layout.Text(c, "challenge_not_found", practiceID),
			)
		default:
			h.logger.Errorf("(user: %d) error while starting challenge: %v", c.Sender().ID, err)
			return c.Send(
				h.layout.Text(c, "technical_issues"),
			)
		}
	}

	h.logger.Infof("(user: %d) challenge started from practice %d", c.Sender().ID, practiceID)
	return c.Send(
		h.layout.Text(c, "challenge_on", struct {
			ID   int
			Time string
		}{ID: practiceID, Time: user.NotifyTime}),
	)
}

func (h Handler) ChallengeOff(c tele.Context) error {
	if err := h.userService.StopChallenge(context.Background(), c.Sender().ID); err != nil {
		h.logger.Errorf("(user: %d) error while stopping challenge: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}

	h.logger.Infof("(user: %d) challenge stopped", c.Sender().ID)
	return c.Send(
		h.layout.Text(c, "challenge_off"),
	)
}
