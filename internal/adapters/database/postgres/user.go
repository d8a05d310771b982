package postgres

import (
	"context"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
	"gorm.io/gorm"
)

type userStorage struct {
	db *gorm.DB
}

func NewUserStorage(db *gorm.DB) *userStorage {
	return &userStorage{
		db: db,
	}
}

// Create is a function that creates a new user in the database.
func (s *userStorage) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Create(&user).Error
	return user, err
}

// Get is a function that gets a user from the database by telegram id.
func (s *userStorage) Get(ctx context.Context, id int64) (*entity.User, error) {
	var user entity.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return &user, err
}

// GetAll is a function that gets all users from the database.
func (s *userStorage) GetAll(ctx context.Context) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error
	return users, err
}

// GetByNotifyTime returns users whose delivery time equals the given "HH:MM"
// string. Order is stable so a delivery batch always walks users the same way.
func (s *userStorage) GetByNotifyTime(ctx context.Context, notifyTime string) ([]entity.User, error) {
	var users []entity.User
	err := s.db.WithContext(ctx).Where("notify_time = ?", notifyTime).Order("id").Find(&users).Error
	return users, err
}

// Update is a function that updates a user in the database.
func (s *userStorage) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	err := s.db.WithContext(ctx).Save(&user).Error
	return user, err
}

// Delete removes a user row entirely. Rare path, kept for explicit
// user/admin removal.
func (s *userStorage) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&entity.User{}, "id = ?", id).Error
}

// Count is a function that gets the count of users from the database.
func (s *userStorage) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.User{}).Count(&count).Error
	return count, err
}

// ClearChallenge resets the challenge override without touching anything else.
func (s *userStorage) ClearChallenge(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Model(&entity.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"challenge_start_id":  nil,
			"challenge_start_day": nil,
		}).Error
}
