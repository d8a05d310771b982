package service

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v3"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"github.com/strello4ka/yoga-daily-bot/pkg/logger/types"
)

// sendPause keeps the broadcast under telegram's flood limits.
const sendPause = 50 * time.Millisecond

type broadcastBot interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
	Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error)
	Delete(msg tele.Editable) error
}

type broadcastUserStorage interface {
	GetAll(ctx context.Context) ([]entity.User, error)
}

type BroadcastStorage interface {
	Create(ctx context.Context, message *entity.BroadcastMessage) (*entity.BroadcastMessage, error)
	GetLatestBatch(ctx context.Context) ([]entity.BroadcastMessage, error)
	DeleteBatch(ctx context.Context, batchID string) error
}

// BroadcastReport summarizes one broadcast pass for the admin. Errors holds
// the first few failures verbatim.
type BroadcastReport struct {
	Total  int
	Sent   int
	Failed int
	Errors []string
}

const reportErrorsLimit = 5

type BroadcastService struct {
	userStorage      broadcastUserStorage
	broadcastStorage BroadcastStorage

	bot    broadcastBot
	logger *types.Logger
}

func NewBroadcastService(
	bot broadcastBot,
	logger *types.Logger,
	userStorage broadcastUserStorage,
	broadcastStorage BroadcastStorage,
) *BroadcastService {
	return &BroadcastService{
		userStorage:      userStorage,
		broadcastStorage: broadcastStorage,
		bot:              bot,
		logger:           logger,
	}
}

// SendText delivers a text message to every user and records each sent
// message under a fresh batch id.
func (s *BroadcastService) SendText(ctx context.Context, text string) (*BroadcastReport, error) {
	return s.send(ctx, func(user *entity.User) (*tele.Message, error) {
		return s.bot.Send(tele.ChatID(user.ChatID), text)
	}, entity.BroadcastTypeText, text, "")
}

// SendPhoto delivers a photo with an optional caption to every user.
func (s *BroadcastService) SendPhoto(ctx context.Context, photoFileID, caption string) (*BroadcastReport, error) {
	return s.send(ctx, func(user *entity.User) (*tele.Message, error) {
		photo := &tele.Photo{File: tele.File{FileID: photoFileID}, Caption: caption}
		return s.bot.Send(tele.ChatID(user.ChatID), photo)
	}, entity.BroadcastTypePhoto, caption, photoFileID)
}

func (s *BroadcastService) send(
	ctx context.Context,
	sendOne func(user *entity.User) (*tele.Message, error),
	messageType entity.BroadcastType,
	text, photoFileID string,
) (*BroadcastReport, error) {
	users, err := s.userStorage.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New().String()
	report := &BroadcastReport{Total: len(users)}

	for i := range users {
		user := &users[i]
		msg, errSend := sendOne(user)
		if errSend != nil {
			report.Failed++
			if len(report.Errors) < reportErrorsLimit {
				report.Errors = append(report.Errors, errSend.Error())
			}
			s.logger.Errorf("(user: %d) failed to send broadcast: %v", user.ID, errSend)
			time.Sleep(sendPause)
			continue
		}
		report.Sent++

		_, errStore := s.broadcastStorage.Create(ctx, &entity.BroadcastMessage{
			BatchID:     batchID,
			UserID:      user.ID,
			ChatID:      user.ChatID,
			MessageID:   msg.ID,
			Type:        messageType,
			Text:        text,
			PhotoFileID: photoFileID,
		})
		if errStore != nil {
			s.logger.Errorf("(user: %d) failed to record broadcast message: %v", user.ID, errStore)
		}
		time.Sleep(sendPause)
	}

	s.logger.Infof("broadcast %s finished: %d sent, %d failed", batchID, report.Sent, report.Failed)
	return report, nil
}

// EditLatest rewrites every message of the most recent broadcast in place.
// Photo broadcasts get their caption replaced, text broadcasts the text.
func (s *BroadcastService) EditLatest(ctx context.Context, text string) (*BroadcastReport, error) {
	batch, err := s.broadcastStorage.GetLatestBatch(ctx)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, errorz.ErrNoBroadcast
	}

	report := &BroadcastReport{Total: len(batch)}
	for i := range batch {
		m := &batch[i]
		stored := tele.StoredMessage{MessageID: strconv.Itoa(m.MessageID), ChatID: m.ChatID}

		var errEdit error
		switch m.Type {
		case entity.BroadcastTypePhoto:
			photo := &tele.Photo{File: tele.File{FileID: m.PhotoFileID}, Caption: text}
			_, errEdit = s.bot.Edit(stored, photo)
		default:
			_, errEdit = s.bot.Edit(stored, text)
		}
		if errEdit != nil {
			report.Failed++
			s.logger.Errorf("(user: %d) failed to edit broadcast message: %v", m.UserID, errEdit)
		} else {
			report.Sent++
		}
		time.Sleep(sendPause)
	}

	return report, nil
}

// DeleteLatest removes every message of the most recent broadcast from user
// chats and drops the batch from the ledger.
func (s *BroadcastService) DeleteLatest(ctx context.Context) (*BroadcastReport, error) {
	batch, err := s.broadcastStorage.GetLatestBatch(ctx)
	if err != nil {
		return nil, err
	}
	if len(batch) == 0 {
		return nil, errorz.ErrNoBroadcast
	}

	report := &BroadcastReport{Total: len(batch)}
	for i := range batch {
		m := &batch[i]
		stored := tele.StoredMessage{MessageID: strconv.Itoa(m.MessageID), ChatID: m.ChatID}
		if errDelete := s.bot.Delete(stored); errDelete != nil {
			report.Failed++
			s.logger.Errorf("(user: %d) failed to delete broadcast message: %v", m.UserID, errDelete)
		} else {
			report.Sent++
		}
		time.Sleep(sendPause)
	}

	if err = s.broadcastStorage.DeleteBatch(ctx, batch[0].BatchID); err != nil {
		return report, err
	}

	return report, nil
}
