package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"

	"csaweb/internal/model"
)

type Mailer struct {
	host string
	port string
	from string
	pass string
	log  *zerolog.Logger
}

func New(host, port, from, pass string, log *zerolog.Logger) *Mailer {
	return &Mailer{host: host, port: port, from: from, pass: pass, log: log}
}

// SendRegistrationEmail notifies a registrant that an admin verified or
// rejected their payment-pending registration.
func (m *Mailer) SendRegistrationEmail(eventName string, status model.RegistrationStatus, recipientEmail string) error {
	var subject, body string
	switch status {
	case model.RegistrationVerified:
		subject = "ثبت‌نام شما تایید شد"
		body = fmt.Sprintf("سلام!\n\nثبت‌نام شما در رویداد «%s» تایید شد. منتظر دیدار شما هستیم.", eventName)
	case model.RegistrationRejected:
		subject = "ثبت‌نام شما رد شد"
		body = fmt.Sprintf("سلام!\n\nمتاسفانه رسید پرداخت شما برای رویداد «%s» تایید نشد. در صورت نیاز با ما تماس بگیرید.", eventName)
	default:
		subject = "وضعیت ثبت‌نام"
		body = fmt.Sprintf("سلام!\n\nوضعیت ثبت‌نام شما در رویداد «%s»: %s", eventName, status)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		m.from, recipientEmail, subject, body,
	)

	addr := m.host + ":" + m.port
	auth := smtp.PlainAuth("", m.from, m.pass, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{recipientEmail}, []byte(msg)); err != nil {
		m.log.Warn().Msgf("failed to send email to %s: %v", recipientEmail, err)
		return fmt.Errorf("send email: %w", err)
	}

	m.log.Info().Msgf("email sent to %s (status: %s)", recipientEmail, status)
	return nil
}
