package user

import (
	"context"
	"strconv"
	"time"

	"github.com/nlypage/intele"
	"github.com/nlypage/intele/collector"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/strello4ka/yoga-daily-bot/cmd/bot"
	"github.com/strello4ka/yoga-daily-bot/internal/adapters/database/postgres"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/service"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/utils/location"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/utils/validator"
	"github.com/strello4ka/yoga-daily-bot/pkg/logger/types"
)

type userService interface {
	Get(ctx context.Context, userID int64) (*entity.User, error)
	SaveNotifyTime(ctx context.Context, userID, chatID int64, name, notifyTime string) (*entity.User, bool, error)
	ResetProgress(ctx context.Context, userID int64) (*entity.User, error)
	StartChallenge(ctx context.Context, userID int64, practiceID uint) (*entity.User, error)
	StopChallenge(ctx context.Context, userID int64) error
	Delete(ctx context.Context, userID int64) error
}

type practiceService interface {
	Get(ctx context.Context, id uint) (*entity.Practice, error)
}

type progressService interface {
	MarkDone(ctx context.Context, logID uint) error
	CompletedCount(ctx context.Context, user *entity.User) (int64, error)
	Rank(ctx context.Context, user *entity.User) (int, int, error)
}

type suggestionService interface {
	Add(ctx context.Context, userID int64, videoURL, comment string) (*entity.Suggestion, error)
}

type deliveryService interface {
	SendPracticeToUser(ctx context.Context, user *entity.User, now time.Time) error
}

type reminderService interface {
	Schedule(userID, chatID int64)
	Cancel(userID int64)
}

type Handler struct {
	userService       userService
	practiceService   practiceService
	progressService   progressService
	suggestionService suggestionService
	deliveryService   deliveryService
	reminderService   reminderService

	input  *intele.InputManager
	layout *layout.Layout
	logger *types.Logger
}

func New(b *bot.Bot) *Handler {
	userStorage := postgres.NewUserStorage(b.DB)
	practiceStorage := postgres.NewPracticeStorage(b.DB)
	bonusStorage := postgres.NewBonusPracticeStorage(b.DB)
	newbieStorage := postgres.NewNewbiePracticeStorage(b.DB)
	logStorage := postgres.NewPracticeLogStorage(b.DB)
	suggestionStorage := postgres.NewSuggestionStorage(b.DB)

	practiceSvc := service.NewPracticeService(practiceStorage, bonusStorage, newbieStorage)
	progressSvc := service.NewProgressService(logStorage, userStorage)

	return &Handler{
		userService:       service.NewUserService(userStorage, practiceStorage),
		practiceService:   practiceSvc,
		progressService:   progressSvc,
		suggestionService: service.NewSuggestionService(suggestionStorage),
		deliveryService: service.NewDeliveryService(
			b.Bot,
			b.Layout,
			b.Logger,
			userStorage,
			practiceSvc,
			progressSvc,
		),
		reminderService: service.NewReminderService(b.Bot, b.Layout, b.Logger),
		input:           b.Input,
		layout:          b.Layout,
		logger:          b.Logger,
	}
}

func (h Handler) Start(c tele.Context) error {
	h.logger.Infof("(user: %d) /start", c.Sender().ID)
	h.reminderService.Schedule(c.Sender().ID, c.Chat().ID)

	return c.Send(
		h.layout.Text(c, "welcome", c.Sender().FirstName),
		h.layout.Markup(c, "chooseTime"),
	)
}

// ChooseTime runs the time input loop, shared by onboarding and the
// "change time" menu entry.
func (h Handler) ChooseTime(c tele.Context) error {
	h.logger.Infof("(user: %d) time input", c.Sender().ID)
	inputCollector := collector.New()
	if c.Callback() != nil {
		_ = c.Edit(h.layout.Text(c, "ask_time"))
	} else {
		msg, _ := c.Bot().Send(c.Chat(), h.layout.Text(c, "ask_time"))
		inputCollector.Collect(msg)
	}
	inputCollector.Collect(c.Message())

	var (
		notifyTime string
		done       bool
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
			h.logger.Errorf("(user: %d) error while input time: %v", c.Sender().ID, errGet)
			_ = inputCollector.Send(c,
				h.layout.Text(c, "input_error", h.layout.Text(c, "ask_time")),
			)
		case !validator.NotifyTime(message.Text, nil):
			_ = inputCollector.Send(c,
				h.layout.Text(c, "invalid_time"),
			)
		default:
			notifyTime, _ = validator.NormalizeNotifyTime(message.Text)
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
			done = true
		}
		if done {
			break
		}
	}

	user, created, err := h.userService.SaveNotifyTime(
		context.Background(),
		c.Sender().ID,
		c.Chat().ID,
		c.Sender().FirstName,
		notifyTime,
	)
	if err != nil {
		h.logger.Errorf("(user: %d) error while saving notify time: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}

	h.reminderService.Cancel(c.Sender().ID)
	h.logger.Infof("(user: %d) notify time set to %s (created=%t)", c.Sender().ID, user.NotifyTime, created)

	textKey := "time_changed"
	if created {
		textKey = "time_saved"
	}
	return c.Send(
		h.layout.Text(c, textKey, user.NotifyTime),
		h.layout.Markup(c, "menu"),
	)
}

func (h Handler) Help(c tele.Context) error {
	return c.Send(
		h.layout.Text(c, "help"),
		h.layout.Markup(c, "menu"),
	)
}

func (h Handler) MyID(c tele.Context) error {
	return c.Send(
		h.layout.Text(c, "myid", strconv.FormatInt(c.Sender().ID, 10)),
	)
}

// Stop unsubscribes the user entirely. The delivery ledger stays, so a
// returning user starts a fresh count without losing history rows.
func (h Handler) Stop(c tele.Context) error {
	h.logger.Infof("(user: %d) /stop", c.Sender().ID)
	h.reminderService.Cancel(c.Sender().ID)

	if err := h.userService.Delete(context.Background(), c.Sender().ID); err != nil {
		h.logger.Errorf("(user: %d) error while unsubscribing: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}
	return c.Send(
		h.layout.Text(c, "stopped"),
	)
}

// Test delivers the user's next practice right away, skipping the wait for
// the scheduled minute.
func (h Handler) Test(c tele.Context) error {
	h.logger.Infof("(user: %d) /test delivery", c.Sender().ID)

	user, err := h.userService.Get(context.Background(), c.Sender().ID)
	if err != nil {
		return c.Send(
			h.layout.Text(c, "need_onboarding"),
		)
	}

	now := time.Now().In(location.Location())
	if err = h.deliveryService.SendPracticeToUser(context.Background(), user, now); err != nil {
		h.logger.Errorf("(user: %d) test delivery failed: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}
	return nil
}
