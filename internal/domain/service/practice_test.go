package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/strello4ka/yoga-daily-bot/internal/adapters/database/postgres"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
	"github.com/strello4ka/yoga-daily-bot/internal/domain/entity"
)

func newPracticeTestService(t *testing.T) (*PracticeService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewPracticeService(
		postgres.NewPracticeStorage(db),
		postgres.NewBonusPracticeStorage(db),
		postgres.NewNewbiePracticeStorage(db),
	), db
}

func addPractice(t *testing.T, s *PracticeService, title string, weekday *int) *entity.Practice {
	t.Helper()
	practice, err := s.Add(context.Background(), entity.Practice{
		Title:       title,
		VideoURL:    fmt.Sprintf("https://youtu.be/%s", title),
		Duration:    20,
		ChannelName: "Yoga Channel",
		Weekday:     weekday,
	})
	require.NoError(t, err)
	return practice
}

func weekdayPtr(d int) *int {
	return &d
}

func TestPracticeService_Add_DuplicateURL(t *testing.T) {
	s, _ := newPracticeTestService(t)
	ctx := context.Background()

	first := addPractice(t, s, "morning-flow", weekdayPtr(1))

	_, err := s.Add(ctx, entity.Practice{
		Title:    "same video again",
		VideoURL: first.VideoURL,
	})
	assert.ErrorIs(t, err, errorz.ErrDuplicateURL)
}

func TestPracticeService_SelectForWeekday_Cycles(t *testing.T) {
	s, _ := newPracticeTestService(t)
	ctx := context.Background()

	a := addPractice(t, s, "mon-a", weekdayPtr(1))
	b := addPractice(t, s, "mon-b", weekdayPtr(1))
	c := addPractice(t, s, "mon-c", weekdayPtr(1))
	addPractice(t, s, "tue-a", weekdayPtr(2))

	tests := []struct {
		dayNumber int
		wantID    uint
	}{
		{1, a.ID},
		{2, b.ID},
		{3, c.ID},
		{4, a.ID},
		{5, b.ID},
		{2002, a.ID},
	}
	for _, tt := range tests {
		got, err := s.SelectForWeekday(ctx, 1, tt.dayNumber)
		require.NoError(t, err)
		assert.Equal(t, tt.wantID, got.ID, "day %d", tt.dayNumber)
	}
}

func TestPracticeService_SelectForWeekday_AnyDayFallback(t *testing.T) {
	s, _ := newPracticeTestService(t)
	ctx := context.Background()

	mon := addPractice(t, s, "mon-only", weekdayPtr(1))
	any := addPractice(t, s, "any-day", nil)

	// Monday has its own pool, the fallback stays out of it.
	got, err := s.SelectForWeekday(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, mon.ID, got.ID)

	// Friday has no pool, practices without a weekday serve instead.
	got, err = s.SelectForWeekday(ctx, 5, 1)
	require.NoError(t, err)
	assert.Equal(t, any.ID, got.ID)
}

func TestPracticeService_SelectForWeekday_EmptyLibrary(t *testing.T) {
	s, _ := newPracticeTestService(t)

	_, err := s.SelectForWeekday(context.Background(), 3, 1)
	assert.ErrorIs(t, err, errorz.ErrNoPractices)
}

func TestPracticeService_SelectForChallenge(t *testing.T) {
	s, _ := newPracticeTestService(t)
	ctx := context.Background()

	p1 := addPractice(t, s, "one", weekdayPtr(1))
	p2 := addPractice(t, s, "two", weekdayPtr(2))
	p3 := addPractice(t, s, "three", nil)
	p4 := addPractice(t, s, "four", weekdayPtr(4))

	tests := []struct {
		challengeDay int
		wantID       uint
	}{
		{1, p3.ID}, // day one is the starting practice itself
		{2, p4.ID},
		{3, p1.ID}, // walk wraps past the last id
		{4, p2.ID},
		{5, p3.ID},
	}
	for _, tt := range tests {
		got, err := s.SelectForChallenge(ctx, p3.ID, tt.challengeDay)
		require.NoError(t, err)
		assert.Equal(t, tt.wantID, got.ID, "challenge day %d", tt.challengeDay)
	}
}

func TestPracticeService_SelectForChallenge_DeletedStart(t *testing.T) {
	s, _ := newPracticeTestService(t)
	ctx := context.Background()

	addPractice(t, s, "one", weekdayPtr(1))
	start := addPractice(t, s, "two", weekdayPtr(2))
	next := addPractice(t, s, "three", weekdayPtr(3))
	require.NoError(t, s.Delete(ctx, start.ID))

	got, err := s.SelectForChallenge(ctx, start.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, next.ID, got.ID)
}

func TestPracticeService_SelectForChallenge_EmptyLibrary(t *testing.T) {
	s, _ := newPracticeTestService(t)

	_, err := s.SelectForChallenge(context.Background(), 1, 1)
	assert.ErrorIs(t, err, errorz.ErrNoPractices)
}

func TestPracticeService_Newbie(t *testing.T) {
	s, _ := newPracticeTestService(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := s.AddNewbie(ctx, entity.NewbiePractice{
			Number:      i,
			Title:       fmt.Sprintf("beginner %d", i),
			VideoURL:    fmt.Sprintf("https://youtu.be/beginner-%d", i),
			Duration:    15,
			ChannelName: "Yoga Channel",
		})
		require.NoError(t, err)
	}

	got, err := s.SelectForNewbie(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "beginner 2", got.Title)

	_, err = s.SelectForNewbie(ctx, 4)
	assert.ErrorIs(t, err, errorz.ErrNoPractices)
}

func TestPracticeService_AddBonus(t *testing.T) {
	s, _ := newPracticeTestService(t)
	ctx := context.Background()

	_, err := s.AddBonus(ctx, entity.BonusPractice{
		ParentPracticeID: 42,
		Title:            "orphan",
		VideoURL:         "https://youtu.be/orphan",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	parent := addPractice(t, s, "parent", weekdayPtr(6))
	first, err := s.AddBonus(ctx, entity.BonusPractice{
		ParentPracticeID: parent.ID,
		Title:            "breathing",
		VideoURL:         "https://youtu.be/breathing",
	})
	require.NoError(t, err)
	second, err := s.AddBonus(ctx, entity.BonusPractice{
		ParentPracticeID: parent.ID,
		Title:            "stretching",
		VideoURL:         "https://youtu.be/stretching",
	})
	require.NoError(t, err)

	bonuses, err := s.Bonuses(ctx, parent.ID)
	require.NoError(t, err)
	require.Len(t, bonuses, 2)
	assert.Equal(t, first.ID, bonuses[0].ID)
	assert.Equal(t, second.ID, bonuses[1].ID)
}
