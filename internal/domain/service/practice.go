package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
)

type PracticeStorage interface {
	Create(ctx context.Context, practice *entity.Practice) (*entity.Practice, error)
	Get(ctx context.Context, id uint) (*entity.Practice, error)
	GetByURL(ctx context.Context, videoURL string) (*entity.Practice, error)
	GetAll(ctx context.Context) ([]entity.Practice, error)
	GetByWeekday(ctx context.Context, weekday int) ([]entity.Practice, error)
	GetAnyDay(ctx context.Context) ([]entity.Practice, error)
	Update(ctx context.Context, practice *entity.Practice) (*entity.Practice, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type BonusPracticeStorage interface {
	Create(ctx context.Context, bonus *entity.BonusPractice) (*entity.BonusPractice, error)
	GetByParentID(ctx context.Context, parentID uint) ([]entity.BonusPractice, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type NewbiePracticeStorage interface {
	Create(ctx context.Context, practice *entity.NewbiePractice) (*entity.NewbiePractice, error)
	GetByNumber(ctx context.Context, number int) (*entity.NewbiePractice, error)
	Count(ctx context.Context) (int64, error)
}

type PracticeService struct {
	practiceStorage PracticeStorage
	bonusStorage    BonusPracticeStorage
	newbieStorage   NewbiePracticeStorage
}

func NewPracticeService(
	practiceStorage PracticeStorage,
	bonusStorage BonusPracticeStorage,
	newbieStorage NewbiePracticeStorage,
) *PracticeService {
	return &PracticeService{
		practiceStorage: practiceStorage,
		bonusStorage:    bonusStorage,
		newbieStorage:   newbieStorage,
	}
}

func (s *PracticeService) Add(ctx context.Context, practice entity.Practice) (*entity.Practice, error) {
	_, err := s.practiceStorage.GetByURL(ctx, practice.VideoURL)
	if err == nil {
		return nil, errorz.ErrDuplicateURL
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return s.practiceStorage.Create(ctx, &practice)
}

func (s *PracticeService) Get(ctx context.Context, id uint) (*entity.Practice, error) {
	return s.practiceStorage.Get(ctx, id)
}

func (s *PracticeService) GetAll(ctx context.Context) ([]entity.Practice, error) {
	return s.practiceStorage.GetAll(ctx)
}

func (s *PracticeService) Update(ctx context.Context, practice *entity.Practice) (*entity.Practice, error) {
	return s.practiceStorage.Update(ctx, practice)
}

func (s *PracticeService) Delete(ctx context.Context, id uint) error {
	return s.practiceStorage.Delete(ctx, id)
}

func (s *PracticeService) Count(ctx context.Context) (int64, error) {
	return s.practiceStorage.Count(ctx)
}

func (s *PracticeService) CountBonuses(ctx context.Context) (int64, error) {
	return s.bonusStorage.Count(ctx)
}

func (s *PracticeService) CountNewbies(ctx context.Context) (int64, error) {
	return s.newbieStorage.Count(ctx)
}

func (s *PracticeService) AddBonus(ctx context.Context, bonus entity.BonusPractice) (*entity.BonusPractice, error) {
	if _, err := s.practiceStorage.Get(ctx, bonus.ParentPracticeID); err != nil {
		return nil, err
	}

	return s.bonusStorage.Create(ctx, &bonus)
}

// Bonuses returns the supplementary videos attached to a practice, in the
// order they were added.
func (s *PracticeService) Bonuses(ctx context.Context, practiceID uint) ([]entity.BonusPractice, error) {
	return s.bonusStorage.GetByParentID(ctx, practiceID)
}

func (s *PracticeService) AddNewbie(ctx context.Context, practice entity.NewbiePractice) (*entity.NewbiePractice, error) {
	return s.newbieStorage.Create(ctx, &practice)
}

// SelectForWeekday picks the practice for the given day of the subscription.
// The pool is every practice assigned to that weekday, ordered by id; when the
// weekday has no pool of its own, practices without a weekday serve as the
// pool instead. Day numbers walk the pool cyclically, so two users on the same
// day number and weekday always receive the same practice.
func (s *PracticeService) SelectForWeekday(ctx context.Context, weekday, dayNumber int) (*entity.Practice, error) {
	pool, err := s.practiceStorage.GetByWeekday(ctx, weekday)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		pool, err = s.practiceStorage.GetAnyDay(ctx)
		if err != nil {
			return nil, err
		}
	}
	if len(pool) == 0 {
		return nil, errorz.ErrNoPractices
	}

	return &pool[(dayNumber-1)%len(pool)], nil
}

// SelectForChallenge walks the whole practice list by id starting from the
// chosen practice: challenge day 1 is the starting practice itself, each
// following day takes the next id, and the walk wraps to the first practice
// after the last one.
func (s *PracticeService) SelectForChallenge(ctx context.Context, startID uint, challengeDay int) (*entity.Practice, error) {
	pool, err := s.practiceStorage.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, errorz.ErrNoPractices
	}

	// the starting practice may have been deleted since /challenge, the
	// walk then begins at the next surviving id
	startIdx := 0
	for i := range pool {
		if pool[i].ID >= startID {
			startIdx = i
			break
		}
	}

	return &pool[(startIdx+challengeDay-1)%len(pool)], nil
}

// SelectForNewbie returns the curriculum entry for the given day number, or
// ErrNoPractices once the day is past the curriculum.
func (s *PracticeService) SelectForNewbie(ctx context.Context, dayNumber int) (*entity.NewbiePractice, error) {
	practice, err := s.newbieStorage.GetByNumber(ctx, dayNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.ErrNoPractices
		}
		return nil, err
	}
	return practice, nil
}
