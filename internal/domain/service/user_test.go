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

func newUserTestService(t *testing.T) (*UserService, *PracticeService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	practices := NewPracticeService(
		postgres.NewPracticeStorage(db),
		postgres.NewBonusPracticeStorage(db),
		postgres.NewNewbiePracticeStorage(db),
	)
	users := NewUserService(postgres.NewUserStorage(db), practices)
	return users, practices, db
}

func TestUserService_SaveNotifyTime(t *testing.T) {
	users, _, _ := newUserTestService(t)
	ctx := context.Background()

	user, created, err := users.SaveNotifyTime(ctx, 100, 200, "Аня", "08:30")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "08:30", user.NotifyTime)
	assert.Equal(t, 0, user.Days)

	// a returning user only moves the delivery time, the streak survives
	user.Days = 12
	_, err = users.Update(ctx, user)
	require.NoError(t, err)

	user, created, err = users.SaveNotifyTime(ctx, 100, 200, "Аня", "21:15")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "21:15", user.NotifyTime)
	assert.Equal(t, 12, user.Days)
}

func TestUserService_StartChallenge(t *testing.T) {
	users, practices, _ := newUserTestService(t)
	ctx := context.Background()

	_, err := users.StartChallenge(ctx, 100, 1)
	assert.ErrorIs(t, err, errorz.ErrNotOnboarded)

	user, _, err := users.SaveNotifyTime(ctx, 100, 200, "Аня", "08:30")
	require.NoError(t, err)

	_, err = users.StartChallenge(ctx, user.ID, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	practice, err := practices.Add(ctx, entity.Practice{
		Title:    "challenge start",
		VideoURL: "https://youtu.be/challenge-start",
	})
	require.NoError(t, err)

	user.Days = 7
	_, err = users.Update(ctx, user)
	require.NoError(t, err)

	user, err = users.StartChallenge(ctx, user.ID, practice.ID)
	require.NoError(t, err)
	require.NotNil(t, user.ChallengeStartID)
	assert.Equal(t, practice.ID, *user.ChallengeStartID)
	require.NotNil(t, user.ChallengeStartDay)
	assert.Equal(t, 7, *user.ChallengeStartDay)
	assert.True(t, user.InChallenge())
}

func TestUserService_StopChallenge(t *testing.T) {
	users, practices, _ := newUserTestService(t)
	ctx := context.Background()

	user, _, err := users.SaveNotifyTime(ctx, 100, 200, "Аня", "08:30")
	require.NoError(t, err)
	practice, err := practices.Add(ctx, entity.Practice{
		Title:    "challenge start",
		VideoURL: "https://youtu.be/challenge-start",
	})
	require.NoError(t, err)
	_, err = users.StartChallenge(ctx, user.ID, practice.ID)
	require.NoError(t, err)

	require.NoError(t, users.StopChallenge(ctx, user.ID))

	user, err = users.Get(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, user.ChallengeStartID)
	assert.Nil(t, user.ChallengeStartDay)
	assert.False(t, user.InChallenge())
}

func TestUserService_ResetProgress(t *testing.T) {
	users, practices, _ := newUserTestService(t)
	ctx := context.Background()

	user, _, err := users.SaveNotifyTime(ctx, 100, 200, "Аня", "08:30")
	require.NoError(t, err)
	practice, err := practices.Add(ctx, entity.Practice{
		Title:    "challenge start",
		VideoURL: "https://youtu.be/challenge-start",
	})
	require.NoError(t, err)

	user.Days = 30
	_, err = users.Update(ctx, user)
	require.NoError(t, err)
	_, err = users.StartChallenge(ctx, user.ID, practice.ID)
	require.NoError(t, err)

	before := time.Now().Add(-time.Second)
	user, err = users.ResetProgress(ctx, user.ID)
	require.NoError(t, err)

	assert.Equal(t, 0, user.Days)
	require.NotNil(t, user.ProgressResetAt)
	assert.True(t, user.ProgressResetAt.After(before))
	assert.Nil(t, user.ChallengeStartID)
	assert.Nil(t, user.ChallengeStartDay)
}
