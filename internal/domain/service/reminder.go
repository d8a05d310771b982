package service

import (
	"sync"
	"time"

	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"

	"github.com/strello4ka/yoga-daily-bot/pkg/logger/types"
)

const (
	firstReminderAfter  = 4 * time.Hour
	secondReminderAfter = 24 * time.Hour
)

type reminderBot interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// ReminderService nudges users who opened the bot but never picked a delivery
// time. Timers live in memory only: a restart drops pending nudges, which is
// fine for a reminder.
type ReminderService struct {
	bot    reminderBot
	layout *layout.Layout
	logger *types.Logger

	mu     sync.Mutex
	timers map[int64][]*time.Timer
}

func NewReminderService(bot reminderBot, layout *layout.Layout, logger *types.Logger) *ReminderService {
	return &ReminderService{
		bot:    bot,
		layout: layout,
		logger: logger,
		timers: map[int64][]*time.Timer{},
	}
}

// Schedule arms the two onboarding nudges for a user. Re-scheduling replaces
// any pending ones.
func (s *ReminderService) Schedule(userID, chatID int64) {
	s.Cancel(userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.timers[userID] = []*time.Timer{
		time.AfterFunc(firstReminderAfter, func() {
			s.remind(userID, chatID, "onboarding_reminder_first")
		}),
		time.AfterFunc(secondReminderAfter, func() {
			s.remind(userID, chatID, "onboarding_reminder_second")
			s.Cancel(userID)
		}),
	}
}

// Cancel drops pending nudges, called once the user picks a time.
func (s *ReminderService) Cancel(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.timers[userID] {
		t.Stop()
	}
	delete(s.timers, userID)
}

func (s *ReminderService) remind(userID, chatID int64, key string) {
	_, err := s.bot.Send(tele.ChatID(chatID), s.layout.TextLocale("ru", key))
	if err != nil {
		s.logger.Errorf("(user: %d) failed to send onboarding reminder: %v", userID, err)
		return
	}
	s.logger.Infof("(user: %d) sent onboarding reminder %s", userID, key)
}
