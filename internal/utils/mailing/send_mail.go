package mailing

import (
	"strconv"

	"gopkg.in/gomail.v2"

	"recetario-backend/internal/utils"
)

type (
	// Mailer sends one HTML mail. Services depend on this seam rather than
	// the SMTP dialer directly.
	Mailer interface {
		Send(toEmail string, subject string, body string) error
	}

	smtpMailer struct{}
)

func NewSMTPMailer() Mailer {
	return &smtpMailer{}
}

func (m *smtpMailer) Send(toEmail string, subject string, body string) error {
	port, err := strconv.Atoi(utils.GetConfig("SMTP_PORT"))
	if err != nil {
		return err
	}

	sender := utils.GetConfig("SMTP_AUTH_EMAIL")

	message := gomail.NewMessage()
	message.SetHeader("From", sender)
	message.SetHeader("To", toEmail)
	message.SetHeader("Subject", subject)
	message.SetBody("text/html", body)

	dialer := gomail.NewDialer(
		utils.GetConfig("SMTP_HOST"),
		port,
		sender,
		utils.GetConfig("SMTP_AUTH_PASSWORD"),
	)
	return dialer.DialAndSend(message)
}
