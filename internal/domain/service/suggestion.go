package service

import (
	"context"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
)

type SuggestionStorage interface {
	Create(ctx context.Context, suggestion *entity.Suggestion) (*entity.Suggestion, error)
	GetAll(ctx context.Context, limit int) ([]entity.Suggestion, error)
}

type SuggestionService struct {
	suggestionStorage SuggestionStorage
}

func NewSuggestionService(suggestionStorage SuggestionStorage) *SuggestionService {
	return &SuggestionService{
		suggestionStorage: suggestionStorage,
	}
}

func (s *SuggestionService) Add(ctx context.Context, userID int64, videoURL, comment string) (*entity.Suggestion, error) {
	return s.suggestionStorage.Create(ctx, &entity.Suggestion{
		UserID:   userID,
		VideoURL: videoURL,
		Comment:  comment,
	})
}

func (s *SuggestionService) List(ctx context.Context, limit int) ([]entity.Suggestion, error) {
	return s.suggestionStorage.GetAll(ctx, limit)
}
