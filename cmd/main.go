package main

import (
	"log"

	_ "time/tzdata"

	"github.com/strello4ka/yoga-daily-bot/cmd/bot"
	"github.com/strello4ka/yoga-daily-bot/internal/adapters/config"
	"github.com/strello4ka/yoga-daily-bot/internal/adapters/controller/telegram/scheduler"
	setupBot "github.com/strello4ka/yoga-daily-bot/internal/adapters/controller/telegram/setup"
)

func main() {
	cfg := config.Get()
	b, err := bot.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	setupBot.Setup(b)

	delivery, err := scheduler.NewDeliveryScheduler(b)
	if err != nil {
		log.Panic(err)
	}
	delivery.Start()
	defer delivery.Stop()

	b.Start()
}
