package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/utils/location"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id int64) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	GetByNotifyTime(ctx context.Context, notifyTime string) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	ClearChallenge(ctx context.Context, id int64) error
}

type userPracticeGetter interface {
	Get(ctx context.Context, id uint) (*entity.Practice, error)
}

type UserService struct {
	userStorage     UserStorage
	practiceStorage userPracticeGetter
}

func NewUserService(userStorage UserStorage, practiceStorage userPracticeGetter) *UserService {
	return &UserService{
		userStorage:     userStorage,
		practiceStorage: practiceStorage,
	}
}

func (s *UserService) Get(ctx context.Context, userID int64) (*entity.User, error) {
	return s.userStorage.Get(ctx, userID)
}

func (s *UserService) GetAll(ctx context.Context) ([]entity.User, error) {
	return s.userStorage.GetAll(ctx)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userStorage.Count(ctx)
}

func (s *UserService) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.userStorage.Update(ctx, user)
}

// SaveNotifyTime stores the delivery time for a user, creating the subscriber
// on first contact. A returning user keeps the accumulated day counter: only
// the time changes. The second return value reports whether the user is new.
func (s *UserService) SaveNotifyTime(ctx context.Context, userID, chatID int64, name, notifyTime string) (*entity.User, bool, error) {
	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
		user, err = s.userStorage.Create(ctx, &entity.User{
			ID:         userID,
			ChatID:     chatID,
			Name:       name,
			NotifyTime: notifyTime,
		})
		return user, true, err
	}

	user.ChatID = chatID
	user.Name = name
	user.NotifyTime = notifyTime
	user, err = s.userStorage.Update(ctx, user)
	return user, false, err
}

// ResetProgress starts the journey over: the day counter goes back to zero and
// completions made before this moment stop counting towards progress and
// ranking. The delivery ledger itself is never touched.
func (s *UserService) ResetProgress(ctx context.Context, userID int64) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now().In(location.Location())
	user.Days = 0
	user.ProgressResetAt = &now
	user.ChallengeStartID = nil
	user.ChallengeStartDay = nil
	return s.userStorage.Update(ctx, user)
}

// StartChallenge pins the user's delivery order to the practice list starting
// from the given practice id. The user must be onboarded and the practice must
// exist.
func (s *UserService) StartChallenge(ctx context.Context, userID int64, practiceID uint) (*entity.User, error) {
	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrNotOnboarded
		}
		return nil, err
	}

	if _, err = s.practiceStorage.Get(ctx, practiceID); err != nil {
		return nil, err
	}

	startDay := user.Days
	user.ChallengeStartID = &practiceID
	user.ChallengeStartDay = &startDay
	return s.userStorage.Update(ctx, user)
}

// StopChallenge returns the user to the weekday schedule.
func (s *UserService) StopChallenge(ctx context.Context, userID int64) error {
	return s.userStorage.ClearChallenge(ctx, userID)
}

func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.userStorage.Delete(ctx, userID)
}
