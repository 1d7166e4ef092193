package mail

import (
	"errors"

	gomail "gopkg.in/gomail.v2"
)

var ErrNoSender = errors.New("no sender address configured")

// Mailer dispatches a multi-part message. html may be empty, in which case
// only the plain text part is sent.
type Mailer interface {
	Send(to, subject, body, html string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(to, subject, body, html string) error {
	if m.from == "" {
		return ErrNoSender
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	if html != "" {
		msg.AddAlternative("text/html", html)
	}

	return m.dialer.DialAndSend(msg)
}
