package notification

import "fridgetrack/internal/utils/mailing"

type (
	// MailSender delivers the email fallback used when a user has no FCM
	// token registered.
	MailSender interface {
		Send(toEmail, subject, body string) error
	}

	smtpMailSender struct{}
)

func NewMailSender() MailSender {
	return smtpMailSender{}
}

func (smtpMailSender) Send(toEmail, subject, body string) error {
	return mailing.SendMail(toEmail, subject, body)
}
