package postgres

import "github.com/strello4ka/yoga-daily-bot/internal/domain/entity"

// Migrations is a list of all gorm migrations for the database.
var Migrations = []interface{}{
	&entity.User{},
	&entity.Practice{},
	&entity.BonusPractice{},
	&entity.NewbiePractice{},
	&entity.PracticeLog{},
	&entity.Suggestion{},
	&entity.BroadcastMessage{},
}
