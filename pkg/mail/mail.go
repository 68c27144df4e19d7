// Package mail sends transactional email over SMTP through a small fluent
// builder:
//
//	mail.To(user.Email).
//	    Subject("Welcome to CareerLoft").
//	    Body("<p>Your account is ready.</p>").
//	    Send()
package mail

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/careerloft/careerloft/config"
)

// SMTP carries the connection settings, read from MAIL_* env vars.
type SMTP struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	FromName string
}

func settings() SMTP {
	return SMTP{
		Host:     config.Get("MAIL_HOST", "smtp.mailtrap.io"),
		Port:     config.Get("MAIL_PORT", "587"),
		Username: config.Get("MAIL_USERNAME", ""),
		Password: config.Get("MAIL_PASSWORD", ""),
		From:     config.Get("MAIL_FROM", "hello@careerloft.app"),
		FromName: config.Get("MAIL_FROM_NAME", "CareerLoft"),
	}
}

// Message accumulates the parts of one email.
type Message struct {
	to      []string
	cc      []string
	bcc     []string
	subject string
	body    string
	html    bool
	smtp    SMTP
}

// To starts a message addressed to the given recipients.
func To(addresses ...string) *Message {
	return &Message{to: addresses, html: true, smtp: settings()}
}

func (m *Message) CC(addresses ...string) *Message {
	m.cc = append(m.cc, addresses...)
	return m
}

func (m *Message) BCC(addresses ...string) *Message {
	m.bcc = append(m.bcc, addresses...)
	return m
}

func (m *Message) Subject(s string) *Message {
	m.subject = s
	return m
}

// Body sets an HTML body.
func (m *Message) Body(html string) *Message {
	m.body = html
	m.html = true
	return m
}

// Text sets a plain-text body.
func (m *Message) Text(text string) *Message {
	m.body = text
	m.html = false
	return m
}

// UseConfig replaces the SMTP settings for this one message.
func (m *Message) UseConfig(cfg SMTP) *Message {
	m.smtp = cfg
	return m
}

// Send delivers the message. Port 465 gets implicit TLS; anything else goes
// through SendMail, which upgrades with STARTTLS when the server offers it.
func (m *Message) Send() error {
	cfg := m.smtp
	if cfg.Username == "" {
		return fmt.Errorf("mail: MAIL_USERNAME not configured")
	}

	recipients := append(append(append([]string{}, m.to...), m.cc...), m.bcc...)
	raw := m.encode(fmt.Sprintf("%s <%s>", cfg.FromName, cfg.From))
	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)

	if cfg.Port == "465" {
		return sendImplicitTLS(addr, cfg.Host, auth, cfg.From, recipients, raw)
	}
	return smtp.SendMail(addr, auth, cfg.From, recipients, raw)
}

func sendImplicitTLS(addr, host string, auth smtp.Auth, from string, to []string, raw []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		return fmt.Errorf("mail: tls dial: %w", err)
	}
	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return err
	}
	defer client.Quit()

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	defer w.Close()
	_, err = w.Write(raw)
	return err
}

func (m *Message) encode(from string) []byte {
	contentType := "text/plain"
	if m.html {
		contentType = "text/html"
	}

	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + strings.Join(m.to, ", ") + "\r\n")
	if len(m.cc) > 0 {
		b.WriteString("Cc: " + strings.Join(m.cc, ", ") + "\r\n")
	}
	b.WriteString("Subject: " + m.subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: " + contentType + "; charset=\"UTF-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(m.body)
	return []byte(b.String())
}
