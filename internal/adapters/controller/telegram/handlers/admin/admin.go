package admin

import (
	"context"
	"errors"
	"strings"

	"github.com/nlypage/intele"
	"github.com/nlypage/intele/collector"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/strello4ka/yoga-daily-bot/cmd/bot"
	"github.com/strello4ka/yoga-daily-bot/internal/adapters/database/postgres"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/service"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/utils"
	"github.com/strello4ka/yoga-daily-bot/pkg/logger/types"
)

const suggestionsOnPage = 20

type broadcastService interface {
	SendText(ctx context.Context, text string) (*service.BroadcastReport, error)
	SendPhoto(ctx context.Context, photoFileID, caption string) (*service.BroadcastReport, error)
	EditLatest(ctx context.Context, text string) (*service.BroadcastReport, error)
	DeleteLatest(ctx context.Context) (*service.BroadcastReport, error)
}

type suggestionService interface {
	List(ctx context.Context, limit int) ([]entity.Suggestion, error)
}

type userCounter interface {
	Count(ctx context.Context) (int64, error)
}

type practiceCounter interface {
	Count(ctx context.Context) (int64, error)
	CountBonuses(ctx context.Context) (int64, error)
	CountNewbies(ctx context.Context) (int64, error)
}

type Handler struct {
	broadcastService  broadcastService
	suggestionService suggestionService
	userService       userCounter
	practiceService   practiceCounter

	input  *intele.InputManager
	layout *layout.Layout
	logger *types.Logger
}

func New(b *bot.Bot) *Handler {
	userStorage := postgres.NewUserStorage(b.DB)
	broadcastStorage := postgres.NewBroadcastStorage(b.DB)
	suggestionStorage := postgres.NewSuggestionStorage(b.DB)
	practiceService := service.NewPracticeService(
		postgres.NewPracticeStorage(b.DB),
		postgres.NewBonusPracticeStorage(b.DB),
		postgres.NewNewbiePracticeStorage(b.DB),
	)

	return &Handler{
		broadcastService:  service.NewBroadcastService(b.Bot, b.Logger, userStorage, broadcastStorage),
		suggestionService: service.NewSuggestionService(suggestionStorage),
		userService:       service.NewUserService(userStorage, practiceService),
		practiceService:   practiceService,
		input:             b.Input,
		layout:            b.Layout,
		logger:            b.Logger,
	}
}

// Broadcast runs the /secret compose flow: the next text or photo message
// goes out to every subscriber.
func (h Handler) Broadcast(c tele.Context) error {
	h.logger.Infof("(user: %d) broadcast compose", c.Sender().ID)
	inputCollector := collector.New()
	msg, _ := c.Bot().Send(c.Chat(), h.layout.Text(c, "broadcast_prompt"))
	inputCollector.Collect(msg)
	inputCollector.Collect(c.Message())

	var (
		text        string
		photoFileID string
		done        bool
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
			h.logger.Errorf("(user: %d) error while input broadcast: %v", c.Sender().ID, errGet)
			_ = inputCollector.Send(c,
				h.layout.Text(c, "input_error", h.layout.Text(c, "broadcast_prompt")),
			)
		case message.Photo != nil:
			photoFileID = message.Photo.FileID
			text = utils.GetMessageText(message)
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
			done = true
		case strings.TrimSpace(utils.GetMessageText(message)) != "":
			text = utils.GetMessageText(message)
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
			done = true
		default:
			_ = inputCollector.Send(c,
				h.layout.Text(c, "broadcast_prompt"),
			)
		}
		if done {
			break
		}
	}

	var (
		report *service.BroadcastReport
		err    error
	)
	if photoFileID != "" {
		report, err = h.broadcastService.SendPhoto(context.Background(), photoFileID, text)
	} else {
		report, err = h.broadcastService.SendText(context.Background(), text)
	}
	if err != nil {
		h.logger.Errorf("(user: %d) broadcast failed: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}

	return c.Send(
		h.layout.Text(c, "broadcast_report", report),
	)
}

// BroadcastEdit rewrites the latest broadcast with the next text message.
func (h Handler) BroadcastEdit(c tele.Context) error {
	h.logger.Infof("(user: %d) broadcast edit", c.Sender().ID)
	inputCollector := collector.New()
	msg, _ := c.Bot().Send(c.Chat(), h.layout.Text(c, "broadcast_edit_prompt"))
	inputCollector.Collect(msg)
	inputCollector.Collect(c.Message())

	var (
		text string
		done bool
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
			h.logger.Errorf("(user: %d) error while input broadcast edit: %v", c.Sender().ID, errGet)
			_ = inputCollector.Send(c,
				h.layout.Text(c, "input_error", h.layout.Text(c, "broadcast_edit_prompt")),
			)
		case strings.TrimSpace(message.Text) != "":
			text = message.Text
			_ = inputCollector.Clear(c, collector.ClearOptions{IgnoreErrors: true})
			done = true
		default:
			_ = inputCollector.Send(c,
				h.layout.Text(c, "broadcast_edit_prompt"),
			)
		}
		if done {
			break
		}
	}

	report, err := h.broadcastService.EditLatest(context.Background(), text)
	if err != nil {
		if errors.Is(err, errorz.ErrNoBroadcast) {
			return c.Send(
				h.layout.Text(c, "broadcast_none"),
			)
		}
		h.logger.Errorf("(user: %d) broadcast edit failed: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}

	return c.Send(
		h.layout.Text(c, "broadcast_report", report),
	)
}

// BroadcastDelete removes the latest broadcast from every chat.
func (h Handler) BroadcastDelete(c tele.Context) error {
	h.logger.Infof("(user: %d) broadcast delete", c.Sender().ID)

	report, err := h.broadcastService.DeleteLatest(context.Background())
	if err != nil {
		if errors.Is(err, errorz.ErrNoBroadcast) {
			return c.Send(
				h.layout.Text(c, "broadcast_none"),
			)
		}
		h.logger.Errorf("(user: %d) broadcast delete failed: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}

	return c.Send(
		h.layout.Text(c, "broadcast_deleted", report),
	)
}

// Suggestions lists the latest user-suggested links.
func (h Handler) Suggestions(c tele.Context) error {
	suggestions, err := h.suggestionService.List(context.Background(), suggestionsOnPage)
	if err != nil {
		h.logger.Errorf("(user: %d) error while listing suggestions: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}
	if len(suggestions) == 0 {
		return c.Send(
			h.layout.Text(c, "suggestions_empty"),
		)
	}

	var sb strings.Builder
	for i := range suggestions {
		sb.WriteString(h.layout.Text(c, "suggestion_item", suggestions[i]))
		sb.WriteString("\n")
	}
	return c.Send(sb.String())
}

// Stats shows library and audience totals.
func (h Handler) Stats(c tele.Context) error {
	ctx := context.Background()

	users, err := h.userService.Count(ctx)
	if err != nil {
		h.logger.Errorf("(user: %d) error while counting users: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}
	practices, err := h.practiceService.Count(ctx)
	if err != nil {
		h.logger.Errorf("(user: %d) error while counting practices: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}
	bonuses, err := h.practiceService.CountBonuses(ctx)
	if err != nil {
		h.logger.Errorf("(user: %d) error while counting bonuses: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}
	newbies, err := h.practiceService.CountNewbies(ctx)
	if err != nil {
		h.logger.Errorf("(user: %d) error while counting newbie practices: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "technical_issues"),
		)
	}

	return c.Send(h.layout.Text(c, "stats", struct {
		Users     int64
		Practices int64
		Bonuses   int64
		Newbies   int64
	}{users, practices, bonuses, newbies}))
}

func (h Handler) AdminSetup(group *tele.Group) {
	group.Handle("/secret", h.Broadcast)
	group.Handle("/secret_edit", h.BroadcastEdit)
	group.Handle("/secret_delete", h.BroadcastDelete)
	group.Handle("/suggestions", h.Suggestions)
	group.Handle("/stats", h.Stats)
}
