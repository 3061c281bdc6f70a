package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/dripgate/dripgate/internal/pkg/env"
)

// SendMail sends an email via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	} else {
		log.Printf("Email sent to %s via %s", to, addr)
	}
	return err
}

// SendWelcomeMail delivers the initial credentials to a freshly
// provisioned subscriber. The password appears here and nowhere else.
func SendWelcomeMail(to, name, tempPassword string) error {
	displayName := name
	if displayName == "" {
		displayName = to
	}

	subject := "Welcome! Your access is ready"
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>your subscription is active. Log in with:</p>"+
			"<p>Email: <b>%s</b><br>Password: <b>%s</b></p>"+
			"<p>Please change your password after the first login.</p>",
		displayName, to, tempPassword,
	)

	return SendMail(to, subject, body)
}

// SendPasswordResetMail delivers the reset link for a forgotten password.
// The link embeds the one-time token; nothing sensitive is logged.
func SendPasswordResetMail(to, name, token string) error {
	displayName := name
	if displayName == "" {
		displayName = to
	}

	base := env.GetEnv("APP_PUBLIC_URL", "http://localhost:4000")
	link := fmt.Sprintf("%s/reset-password?token=%s", base, token)

	subject := "Reset your password"
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>someone requested a password reset for this account. "+
			"If that was you, use the link below within the next two hours:</p>"+
			"<p><a href=\"%s\">%s</a></p>"+
			"<p>If you did not request this, you can ignore this message.</p>",
		displayName, link, link,
	)

	return SendMail(to, subject, body)
}
