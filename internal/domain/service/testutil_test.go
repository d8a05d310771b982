package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/layout"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/strello4ka/yoga-daily-bot/internal/adapters/database/postgres"
	"github.com/strello4ka/yoga-daily-bot/pkg/logger/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(postgres.Migrations...))
	return db
}

func testLogger() *types.Logger {
	return &types.Logger{SugaredLogger: zap.NewNop().Sugar()}
}

const testLayoutYML = `settings:
  parse_mode: html

buttons:
  practice_done:
    unique: practice_done
    text: Выполнено
    callback_data: '{{ . }}'

markups:
  practice:done:
    - [practice_done]
`

const testLocaleYML = `practice_message: 'День {{ .DayNumber }}. {{ .Title }}'
bonus_message: 'Бонус. {{ .Title }}'
`

// newTestLayout builds a minimal layout in a temp directory. The layout
// package resolves locale files relative to the working directory, so the
// test runs from there until cleanup.
func newTestLayout(t *testing.T) *layout.Layout {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "telegram.yml"), []byte(testLayoutYML), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "locales"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "locales", "ru.yml"), []byte(testLocaleYML), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})

	lt, err := layout.New("telegram.yml")
	require.NoError(t, err)
	return lt
}

type sentMessage struct {
	chatID int64
	what   interface{}
	opts   []interface{}
}

// fakeBot records outgoing messages and can refuse chats, imitating users
// who blocked the bot.
type fakeBot struct {
	fail   map[int64]bool
	sent   []sentMessage
	edits  []tele.Editable
	drops  []tele.Editable
	nextID int
}

func (b *fakeBot) Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error) {
	var chatID int64
	_, _ = fmt.Sscan(to.Recipient(), &chatID)
	if b.fail[chatID] {
		return nil, fmt.Errorf("forbidden: bot was blocked by the user")
	}
	b.nextID++
	b.sent = append(b.sent, sentMessage{chatID: chatID, what: what, opts: opts})
	return &tele.Message{ID: b.nextID, Chat: &tele.Chat{ID: chatID}}, nil
}

func (b *fakeBot) Edit(msg tele.Editable, what interface{}, opts ...interface{}) (*tele.Message, error) {
	b.edits = append(b.edits, msg)
	return &tele.Message{}, nil
}

func (b *fakeBot) Delete(msg tele.Editable) error {
	b.drops = append(b.drops, msg)
	return nil
}

func (b *fakeBot) textsFor(chatID int64) []string {
	var texts []string
	for _, m := range b.sent {
		if m.chatID != chatID {
			continue
		}
		if text, ok := m.what.(string); ok {
			texts = append(texts, text)
		}
	}
	return texts
}
