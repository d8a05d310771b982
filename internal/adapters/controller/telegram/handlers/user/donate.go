package user

import (
	"bytes"
	"strconv"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/viper"
	tele "gopkg.in/telebot.v3"

	"github.com/strello4ka/yoga-daily-bot/internal/domain/common/errorz"
)

// Donate shows the support card: transfer details with a QR code of the
// payment link, plus telegram stars buttons.
func (h Handler) Donate(c tele.Context) error {
	h.logger.Infof("(user: %d) donate card requested", c.Sender().ID)

	paymentLink := viper.GetString("settings.donate.payment-link")
	png, err := qrcode.Encode(paymentLink, qrcode.Medium, 256)
	if err != nil {
		h.logger.Errorf("(user: %d) failed to generate donate QR: %v", c.Sender().ID, err)
		return c.Send(
			h.layout.Text(c, "donate", paymentLink),
			h.layout.Markup(c, "donate:stars"),
		)
	}

	return c.Send(
		&tele.Photo{
			File:    tele.FromReader(bytes.NewReader(png)),
			Caption: h.layout.Text(c, "donate", paymentLink),
		},
		h.layout.Markup(c, "donate:stars"),
	)
}

// DonateStars sends a telegram stars invoice for the amount carried in the
// callback data.
func (h Handler) DonateStars(c tele.Context) error {
	amount, err := strconv.Atoi(c.Callback().Data)
	if err != nil || amount < 1 {
		return errorz.ErrInvalidCallbackData
	}

	h.logger.Infof("(user: %d) stars invoice for %d requested", c.Sender().ID, amount)
	return c.Send(&tele.Invoice{
		Title:       h.layout.Text(c, "donate_invoice_title"),
		Description: h.layout.Text(c, "donate_invoice_description"),
		Payload:     "donate:" + c.Callback().Data,
		Currency:    "XTR",
		Prices: []tele.Price{
			{Label: h.layout.Text(c, "donate_invoice_title"), Amount: amount},
		},
	})
}

// Checkout confirms every pre-checkout query, stars donations have nothing
// to verify.
func (h Handler) Checkout(c tele.Context) error {
	return c.Accept()
}

func (h Handler) PaymentReceived(c tele.Context) error {
	payment := c.Message().Payment
	if payment != nil {
		h.logger.Infof("(user: %d) donation received: %d %s", c.Sender().ID, payment.Total, payment.Currency)
	}
	return c.Send(
		h.layout.Text(c, "donate_thanks"),
	)
}
