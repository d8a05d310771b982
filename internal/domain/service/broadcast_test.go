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

func newBroadcastTestService(t *testing.T) (*BroadcastService, *fakeBot, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	bot := &fakeBot{fail: map[int64]bool{}}
	s := NewBroadcastService(
		bot,
		testLogger(),
		postgres.NewUserStorage(db),
		postgres.NewBroadcastStorage(db),
	)
	return s, bot, db
}

func TestBroadcastService_SendText(t *testing.T) {
	s, bot, db := newBroadcastTestService(t)
	ctx := context.Background()

	for _, id := range []int64{100, 101, 102} {
		seedUser(t, db, id)
	}
	bot.fail[101] = true

	report, err := s.SendText(ctx, "завтра без практики")
	require.NoError(t, err)
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Sent)
	assert.Equal(t, 1, report.Failed)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "blocked")

	var messages []entity.BroadcastMessage
	require.NoError(t, db.Find(&messages).Error)
	require.Len(t, messages, 2, "failed sends leave no ledger row")
	assert.Equal(t, messages[0].BatchID, messages[1].BatchID)
	assert.Equal(t, entity.BroadcastTypeText, messages[0].Type)
	assert.Equal(t, "завтра без практики", messages[0].Text)
}

func TestBroadcastService_EditLatest(t *testing.T) {
	s, bot, db := newBroadcastTestService(t)
	ctx := context.Background()

	_, err := s.EditLatest(ctx, "nothing to edit yet")
	assert.ErrorIs(t, err, errorz.ErrNoBroadcast)

	seedUser(t, db, 100)
	seedUser(t, db, 101)

	_, err = s.SendText(ctx, "первая рассылка")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = s.SendText(ctx, "вторая рассылка")
	require.NoError(t, err)

	report, err := s.EditLatest(ctx, "исправленный текст")
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total, "only the latest batch is touched")
	assert.Equal(t, 2, report.Sent)
	assert.Len(t, bot.edits, 2)
}

func TestBroadcastService_DeleteLatest(t *testing.T) {
	s, bot, db := newBroadcastTestService(t)
	ctx := context.Background()

	_, err := s.DeleteLatest(ctx)
	assert.ErrorIs(t, err, errorz.ErrNoBroadcast)

	seedUser(t, db, 100)
	seedUser(t, db, 101)

	_, err = s.SendText(ctx, "первая рассылка")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	_, err = s.SendText(ctx, "вторая рассылка")
	require.NoError(t, err)

	report, err := s.DeleteLatest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 2, report.Sent)
	assert.Len(t, bot.drops, 2)

	// the previous broadcast becomes the latest one again
	var remaining []entity.BroadcastMessage
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, "первая рассылка", remaining[0].Text)
}

func TestBroadcastService_SendPhoto(t *testing.T) {
	s, _, db := newBroadcastTestService(t)
	ctx := context.Background()

	seedUser(t, db, 100)

	report, err := s.SendPhoto(ctx, "file-abc", "подпись")
	require.NoError(t, err)
	assert.Equal(t, 1, report.Sent)

	var message entity.BroadcastMessage
	require.NoError(t, db.First(&message).Error)
	assert.Equal(t, entity.BroadcastTypePhoto, message.Type)
	assert.Equal(t, "file-abc", message.PhotoFileID)
	assert.Equal(t, "подпись", message.Text)
}
