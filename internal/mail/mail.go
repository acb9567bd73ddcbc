// Package mail sends notification emails. Only the unread-message reminder
// uses it; all candidate/company-facing flows stay in-app.
package mail

import (
	"fmt"
	"log"
	"net/smtp"
)

// Mailer sends one plain-text message.
type Mailer interface {
	Send(to, subject, body string) error
}

// SMTPMailer delivers through a plain SMTP relay.
type SMTPMailer struct {
	Addr string // host:port
	From string
}

func NewSMTPMailer(addr, from string) *SMTPMailer {
	return &SMTPMailer{Addr: addr, From: from}
}

var _ Mailer = (*SMTPMailer)(nil)

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n", m.From, to, subject, body)
	return smtp.SendMail(m.Addr, nil, m.From, []string{to}, []byte(msg))
}

// LogMailer is wired when no SMTP relay is configured, so reminder runs are
// still visible in the logs.
type LogMailer struct{}

var _ Mailer = (*LogMailer)(nil)

func (LogMailer) Send(to, subject, _ string) error {
	log.Printf("[mail] (dry-run) to=%s subject=%q", to, subject)
	return nil
}
