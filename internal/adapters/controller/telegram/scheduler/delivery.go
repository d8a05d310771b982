package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/strello4ka/yoga-daily-bot/cmd/bot"
	"github.com/strello4ka/yoga-daily-bot/internal/adapters/database/postgres"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/service"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/utils/location"
	"github.com/strello4ka/yoga-daily-bot/pkg/logger"
)

type deliveryService interface {
	SendDuePractices(ctx context.Context, now time.Time)
}

// DeliveryScheduler fires the delivery batch once a minute. The minute
// granularity matches the "HH:MM" times users pick during onboarding.
type DeliveryScheduler struct {
	deliveryService deliveryService

	scheduler *gocron.Scheduler
}

func NewDeliveryScheduler(b *bot.Bot) (*DeliveryScheduler, error) {
	userStorage := postgres.NewUserStorage(b.DB)
	practiceStorage := postgres.NewPracticeStorage(b.DB)
	bonusStorage := postgres.NewBonusPracticeStorage(b.DB)
	newbieStorage := postgres.NewNewbiePracticeStorage(b.DB)
	logStorage := postgres.NewPracticeLogStorage(b.DB)

	deliveryLogger, err := logger.Named("delivery")
	if err != nil {
		return nil, err
	}

	practiceService := service.NewPracticeService(practiceStorage, bonusStorage, newbieStorage)
	progressService := service.NewProgressService(logStorage, userStorage)

	return &DeliveryScheduler{
		deliveryService: service.NewDeliveryService(
			b.Bot,
			b.Layout,
			deliveryLogger,
			userStorage,
			practiceService,
			progressService,
		),
		scheduler: gocron.NewScheduler(location.Location()),
	}, nil
}

func (s *DeliveryScheduler) Start() {
	logger.Log.Info("Starting delivery scheduler")
	_, err := s.scheduler.Every(1).Minute().Do(func() {
		now := time.Now().In(location.Location())
		s.deliveryService.SendDuePractices(context.Background(), now)
	})
	if err != nil {
		logger.Log.Errorf("Failed to schedule delivery job: %v", err)
		return
	}
	s.scheduler.StartAsync()
}

func (s *DeliveryScheduler) Stop() {
	s.scheduler.Stop()
}
