package mailer

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"
)

var ErrNotConfigured = errors.New("smtp relay not configured")

type Message struct {
	Subject string
	Body    string // plain text
	ReplyTo string
}

type IEmailService interface {
	// Send delivers msg to the firm inbox.
	Send(msg Message) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
	recipient   string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName, recipient string) IEmailService {
	var d *gomail.Dialer
	if host != "" && password != "" {
		d = gomail.NewDialer(host, port, username, password)
	}

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
		recipient:   recipient,
	}
}

func (s *emailService) Send(msg Message) error {
	if s.dialer == nil || s.recipient == "" || s.senderEmail == "" {
		return ErrNotConfigured
	}

	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", s.recipient)
	m.SetHeader("Subject", msg.Subject)
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetBody("text/plain", msg.Body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
