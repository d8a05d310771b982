package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/strello4ka/yoga-daily-bot/internal/adapters/database/postgres"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
)

func newProgressTestService(t *testing.T) (*ProgressService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewProgressService(
		postgres.NewPracticeLogStorage(db),
		postgres.NewUserStorage(db),
	), db
}

func seedUser(t *testing.T, db *gorm.DB, id int64) *entity.User {
	t.Helper()
	user := &entity.User{ID: id, ChatID: id, NotifyTime: "08:00"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedLog(t *testing.T, db *gorm.DB, userID int64, sentAt time.Time, completed bool) *entity.PracticeLog {
	t.Helper()
	log := &entity.PracticeLog{
		UserID:     userID,
		PracticeID: 1,
		DayNumber:  1,
		Completed:  completed,
		SentAt:     sentAt,
	}
	require.NoError(t, db.Create(log).Error)
	return log
}

func TestProgressService_MarkDone(t *testing.T) {
	s, db := newProgressTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, 100)
	log, err := s.LogSent(ctx, user.ID, 1, 1)
	require.NoError(t, err)

	count, err := s.CompletedCount(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	require.NoError(t, s.MarkDone(ctx, log.ID))

	count, err = s.CompletedCount(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProgressService_CompletedCount_AfterReset(t *testing.T) {
	s, db := newProgressTestService(t)
	ctx := context.Background()

	user := seedUser(t, db, 100)
	base := time.Now()
	seedLog(t, db, user.ID, base.Add(-48*time.Hour), true)
	seedLog(t, db, user.ID, base.Add(-24*time.Hour), true)
	seedLog(t, db, user.ID, base.Add(-time.Hour), false)

	count, err := s.CompletedCount(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// completions made before the reset stop counting
	resetAt := base.Add(-25 * time.Hour)
	user.ProgressResetAt = &resetAt

	count, err = s.CompletedCount(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestProgressService_Rank(t *testing.T) {
	s, db := newProgressTestService(t)
	ctx := context.Background()

	counts := map[int64]int{101: 5, 102: 5, 103: 3, 104: 1, 105: 0}
	users := make(map[int64]*entity.User, len(counts))
	base := time.Now().Add(-time.Hour)
	for id, n := range counts {
		users[id] = seedUser(t, db, id)
		for i := 0; i < n; i++ {
			seedLog(t, db, id, base.Add(time.Duration(i)*time.Minute), true)
		}
	}

	tests := []struct {
		userID       int64
		wantPosition int
	}{
		{101, 1},
		{102, 1}, // equal counts share a position
		{103, 3},
		{104, 4},
	}
	for _, tt := range tests {
		position, total, err := s.Rank(ctx, users[tt.userID])
		require.NoError(t, err)
		assert.Equal(t, tt.wantPosition, position, "user %d", tt.userID)
		assert.Equal(t, 4, total, "user %d", tt.userID)
	}

	_, _, err := s.Rank(ctx, users[105])
	assert.ErrorIs(t, err, errorz.ErrNotRanked)
}

func TestProgressService_Rank_IgnoresResetCompletions(t *testing.T) {
	s, db := newProgressTestService(t)
	ctx := context.Background()

	leader := seedUser(t, db, 101)
	rival := seedUser(t, db, 102)
	base := time.Now().Add(-time.Hour)
	seedLog(t, db, leader.ID, base, true)
	for i := 0; i < 5; i++ {
		seedLog(t, db, rival.ID, base.Add(time.Duration(i)*time.Minute), true)
	}

	// the rival reset after all their completions, so only the leader ranks
	resetAt := base.Add(time.Hour)
	rival.ProgressResetAt = &resetAt
	require.NoError(t, db.Save(rival).Error)

	position, total, err := s.Rank(ctx, leader)
	require.NoError(t, err)
	assert.Equal(t, 1, position)
	assert.Equal(t, 1, total)
}
