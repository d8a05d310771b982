package types

import (
	"go.uber.org/zap"
)

// Logger is a named sugared zap logger shared across the bot.
type Logger struct {
	*zap.SugaredLogger
	LogsPath string
	Name     string
}
