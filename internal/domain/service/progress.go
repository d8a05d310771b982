package service

import (
	"context"
	"time"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/utils/location"
)

type PracticeLogStorage interface {
	Create(ctx context.Context, log *entity.PracticeLog) (*entity.PracticeLog, error)
	Delete(ctx context.Context, id uint) error
	MarkCompleted(ctx context.Context, id uint) error
	CountCompleted(ctx context.Context, userID int64, since *time.Time) (int64, error)
}

type progressUserStorage interface {
	Get(ctx context.Context, id int64) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
}

type ProgressService struct {
	logStorage  PracticeLogStorage
	userStorage progressUserStorage
}

func NewProgressService(logStorage PracticeLogStorage, userStorage progressUserStorage) *ProgressService {
	return &ProgressService{
		logStorage:  logStorage,
		userStorage: userStorage,
	}
}

// LogSent appends a ledger row for a delivered practice.
func (s *ProgressService) LogSent(ctx context.Context, userID int64, practiceID uint, dayNumber int) (*entity.PracticeLog, error) {
	return s.logStorage.Create(ctx, &entity.PracticeLog{
		UserID:     userID,
		PracticeID: practiceID,
		DayNumber:  dayNumber,
		SentAt:     time.Now().In(location.Location()),
	})
}

// DiscardLog removes the ledger row of a send that never reached the user,
// keeping the ledger at one row per successful send.
func (s *ProgressService) DiscardLog(ctx context.Context, logID uint) error {
	return s.logStorage.Delete(ctx, logID)
}

// MarkDone flips the completion flag of a ledger row.
func (s *ProgressService) MarkDone(ctx context.Context, logID uint) error {
	return s.logStorage.MarkCompleted(ctx, logID)
}

// CompletedCount returns how many practices the user completed since the last
// progress reset.
func (s *ProgressService) CompletedCount(ctx context.Context, user *entity.User) (int64, error) {
	return s.logStorage.CountCompleted(ctx, user.ID, user.ProgressResetAt)
}

// Rank places the user among everyone with at least one completed practice.
// Ranking is competition style: users sharing a count share a position, and
// the next distinct count lands at position 1 + the number of users with a
// strictly greater count. A user with zero completions is not ranked.
func (s *ProgressService) Rank(ctx context.Context, user *entity.User) (int, int, error) {
	own, err := s.CompletedCount(ctx, user)
	if err != nil {
		return 0, 0, err
	}
	if own == 0 {
		return 0, 0, errorz.ErrNotRanked
	}

	users, err := s.userStorage.GetAll(ctx)
	if err != nil {
		return 0, 0, err
	}

	position, total := 1, 0
	for i := range users {
		count, err := s.logStorage.CountCompleted(ctx, users[i].ID, users[i].ProgressResetAt)
		if err != nil {
			return 0, 0, err
		}
		if count > 0 {
			total++
		}
		if count > own {
			position++
		}
	}

	return position, total, nil
}
