package setup

import (
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"

	"github.com/strello4ka/yoga-daily-bot/cmd/bot"
	"github.com/strello4ka/yoga-daily-bot/internal/adapters/controller/telegram/handlers/admin"
	"github.com/strello4ka/yoga-daily-bot/internal/adapters/controller/telegram/handlers/middlewares"
	"github.com/strello4ka/yoga-daily-bot/internal/adapters/controller/telegram/handlers/user"
)

func Setup(b *bot.Bot) {
	// Pre-setup and global middlewares
	middle := middlewares.New(b)
	userHandler := user.New(b)
	adminHandler := admin.New(b)

	if viper.GetBool("settings.debug") {
		b.Use(middleware.Logger())
	}
	b.Use(b.Layout.Middleware("ru"))
	b.Use(middleware.AutoRespond())
	b.Handle(tele.OnText, b.Input.Handler())
	b.Handle(tele.OnMedia, b.Input.Handler())
	b.Use(middle.ResetInputOnBack)

	// User handlers
	b.Handle("/start", userHandler.Start)
	b.Handle("/help", userHandler.Help)
	b.Handle("/myid", userHandler.MyID)
	b.Handle("/test", userHandler.Test)
	b.Handle("/challenge", userHandler.ChallengeOn)
	b.Handle("/challenge_off", userHandler.ChallengeOff)
	b.Handle("/stop", userHandler.Stop)

	b.Handle(b.Layout.Callback("choose_time"), userHandler.ChooseTime)
	b.Handle(b.Layout.Callback("practice_done"), userHandler.Done)
	b.Handle(b.Layout.Callback("reset_ask"), userHandler.ResetConfirm)
	b.Handle(b.Layout.Callback("reset_confirm"), userHandler.Reset)
	b.Handle(b.Layout.Callback("reset_cancel"), userHandler.ResetCancel)
	b.Handle(b.Layout.Callback("donate_stars"), userHandler.DonateStars)

	b.Handle(b.Layout.TextLocale("ru", "menu_change_time"), userHandler.ChooseTime)
	b.Handle(b.Layout.TextLocale("ru", "menu_progress"), userHandler.Progress)
	b.Handle(b.Layout.TextLocale("ru", "menu_suggest"), userHandler.Suggest)
	b.Handle(b.Layout.TextLocale("ru", "menu_donate"), userHandler.Donate)
	b.Handle(b.Layout.TextLocale("ru", "menu_help"), userHandler.Help)

	b.Handle(tele.OnCheckout, userHandler.Checkout)
	b.Handle(tele.OnPayment, userHandler.PaymentReceived)

	// Admin handlers
	admins := viper.GetIntSlice("bot.admin-ids")
	adminsInt64 := make([]int64, len(admins))
	for i, v := range admins {
		adminsInt64[i] = int64(v)
	}
	adminGroup := b.Group()
	adminGroup.Use(middleware.Whitelist(adminsInt64...))
	adminHandler.AdminSetup(adminGroup)
}
