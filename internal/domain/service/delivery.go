package service

import (
	"context"
	"errors"
	"time"

	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/utils/location"
	"github.com/strello4ka/yoga-daily-bot/pkg/logger/types"
)

type deliveryBot interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

type deliveryUserStorage interface {
	GetByNotifyTime(ctx context.Context, notifyTime string) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
}

type practiceSelector interface {
	SelectForWeekday(ctx context.Context, weekday, dayNumber int) (*entity.Practice, error)
	SelectForChallenge(ctx context.Context, startID uint, challengeDay int) (*entity.Practice, error)
	SelectForNewbie(ctx context.Context, dayNumber int) (*entity.NewbiePractice, error)
	Bonuses(ctx context.Context, practiceID uint) ([]entity.BonusPractice, error)
}

type sentLogger interface {
	LogSent(ctx context.Context, userID int64, practiceID uint, dayNumber int) (*entity.PracticeLog, error)
	DiscardLog(ctx context.Context, logID uint) error
}

// PracticeCard is the template payload for practice messages.
type PracticeCard struct {
	DayNumber          int
	Title              string
	VideoURL           string
	Duration           int
	ChannelName        string
	Description        string
	CuratorDescription string
	Intensity          string
}

type DeliveryService struct {
	userStorage     deliveryUserStorage
	practiceService practiceSelector
	progressService sentLogger

	bot    deliveryBot
	layout *layout.Layout
	logger *types.Logger
}

func NewDeliveryService(
	bot deliveryBot,
	layout *layout.Layout,
	logger *types.Logger,
	userStorage deliveryUserStorage,
	practiceService practiceSelector,
	progressService sentLogger,
) *DeliveryService {
	return &DeliveryService{
		userStorage:     userStorage,
		practiceService: practiceService,
		progressService: progressService,
		bot:             bot,
		layout:          layout,
		logger:          logger,
	}
}

// SendDuePractices delivers to every user whose notify time equals the given
// moment, truncated to the minute. One failing user never blocks the rest of
// the batch.
func (s *DeliveryService) SendDuePractices(ctx context.Context, now time.Time) {
	users, err := s.userStorage.GetByNotifyTime(ctx, now.Format("15:04"))
	if err != nil {
		s.logger.Errorf("failed to get users for %s: %v", now.Format("15:04"), err)
		return
	}
	if len(users) == 0 {
		return
	}

	s.logger.Infof("delivering practices to %d users at %s", len(users), now.Format("15:04"))
	for i := range users {
		if err := s.SendPracticeToUser(ctx, &users[i], now); err != nil {
			s.logger.Errorf("(user: %d) failed to deliver practice: %v", users[i].ID, err)
		}
		time.Sleep(sendPause)
	}
}

// SendPracticeToUser advances the user's day counter and sends the practice
// for the new day, with its bonuses. The counter is only persisted after the
// main message went out, so a failed send is retried on the next matching
// tick with the same day number.
func (s *DeliveryService) SendPracticeToUser(ctx context.Context, user *entity.User, now time.Time) error {
	dayNumber := user.Days + 1

	card, bonuses, logPracticeID, err := s.pickPractice(ctx, user, dayNumber, now)
	if err != nil {
		if errors.Is(err, errorz.ErrNoPractices) {
			s.logger.Warnf("(user: %d) no practices for day %d, skipping", user.ID, dayNumber)
			return nil
		}
		return err
	}
	card.DayNumber = dayNumber

	// the row is created first so its id can ride in the done-button
	// callback; a failed send removes it again
	practiceLog, err := s.progressService.LogSent(ctx, user.ID, logPracticeID, dayNumber)
	if err != nil {
		return err
	}

	_, err = s.bot.Send(
		tele.ChatID(user.ChatID),
		s.layout.TextLocale("ru", "practice_message", card),
		s.layout.MarkupLocale("ru", "practice:done", practiceLog.ID),
	)
	if err != nil {
		if errDiscard := s.progressService.DiscardLog(ctx, practiceLog.ID); errDiscard != nil {
			s.logger.Errorf("(user: %d) failed to discard ledger row %d: %v", user.ID, practiceLog.ID, errDiscard)
		}
		return err
	}

	user.Days = dayNumber
	if _, err = s.userStorage.Update(ctx, user); err != nil {
		return err
	}

	for i := range bonuses {
		_, err = s.bot.Send(
			tele.ChatID(user.ChatID),
			s.layout.TextLocale("ru", "bonus_message", cardFromBonus(&bonuses[i])),
		)
		if err != nil {
			s.logger.Errorf("(user: %d) failed to send bonus practice %d: %v", user.ID, bonuses[i].ID, err)
			continue
		}
		if _, err = s.progressService.LogSent(ctx, user.ID, bonuses[i].ID, dayNumber); err != nil {
			s.logger.Errorf("(user: %d) failed to log bonus practice %d: %v", user.ID, bonuses[i].ID, err)
		}
	}

	s.logger.Infof("(user: %d) delivered practice %d for day %d", user.ID, logPracticeID, dayNumber)
	return nil
}

// pickPractice resolves which video the day gets. Challenge mode overrides
// everything; the newbie curriculum covers the first days; after that the
// weekday pools take over. Only regular practices carry bonuses.
func (s *DeliveryService) pickPractice(ctx context.Context, user *entity.User, dayNumber int, now time.Time) (*PracticeCard, []entity.BonusPractice, uint, error) {
	if user.InChallenge() {
		challengeDay := dayNumber
		if user.ChallengeStartDay != nil {
			challengeDay = dayNumber - *user.ChallengeStartDay
		}
		practice, err := s.practiceService.SelectForChallenge(ctx, *user.ChallengeStartID, challengeDay)
		if err != nil {
			return nil, nil, 0, err
		}
		bonuses, err := s.practiceService.Bonuses(ctx, practice.ID)
		if err != nil {
			return nil, nil, 0, err
		}
		return cardFromPractice(practice), bonuses, practice.ID, nil
	}

	newbie, err := s.practiceService.SelectForNewbie(ctx, dayNumber)
	if err == nil {
		return cardFromNewbie(newbie), nil, newbie.ID, nil
	}
	if !errors.Is(err, errorz.ErrNoPractices) {
		return nil, nil, 0, err
	}

	practice, err := s.practiceService.SelectForWeekday(ctx, location.WeekdayOf(now), dayNumber)
	if err != nil {
		return nil, nil, 0, err
	}
	bonuses, err := s.practiceService.Bonuses(ctx, practice.ID)
	if err != nil {
		return nil, nil, 0, err
	}
	return cardFromPractice(practice), bonuses, practice.ID, nil
}

func cardFromPractice(p *entity.Practice) *PracticeCard {
	return &PracticeCard{
		Title:              p.Title,
		VideoURL:           p.VideoURL,
		Duration:           p.Duration,
		ChannelName:        p.ChannelName,
		Description:        p.Description,
		CuratorDescription: p.CuratorDescription,
		Intensity:          p.Intensity,
	}
}

func cardFromNewbie(p *entity.NewbiePractice) *PracticeCard {
	return &PracticeCard{
		Title:              p.Title,
		VideoURL:           p.VideoURL,
		Duration:           p.Duration,
		ChannelName:        p.ChannelName,
		Description:        p.Description,
		CuratorDescription: p.CuratorDescription,
		Intensity:          p.Intensity,
	}
}

func cardFromBonus(p *entity.BonusPractice) *PracticeCard {
	return &PracticeCard{
		Title:              p.Title,
		VideoURL:           p.VideoURL,
		Duration:           p.Duration,
		ChannelName:        p.ChannelName,
		Description:        p.Description,
		CuratorDescription: p.CuratorDescription,
		Intensity:          p.Intensity,
	}
}
