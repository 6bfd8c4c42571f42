package email

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/thriftwise/thriftwise/internal/application/notification"
	"github.com/thriftwise/thriftwise/internal/shared/config"
)

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
}

func SMTPConfigFrom(cfg config.EmailConfig) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
	}
}

// messageDialer is the part of gomail.Dialer the sender uses.
type messageDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPSender delivers notifications over SMTP.
type SMTPSender struct {
	config SMTPConfig
	dialer messageDialer
}

var _ notification.Sender = (*SMTPSender)(nil)

func NewSMTPSender(config SMTPConfig) *SMTPSender {
	return &SMTPSender{
		config: config,
		dialer: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if to == "" {
		return fmt.Errorf("recipient address is empty")
	}
	return s.dialer.DialAndSend(s.buildMessage(to, subject, body))
}

func (s *SMTPSender) buildMessage(to, subject, body string) *gomail.Message {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	m.AddAlternative("text/html", htmlBody(subject, body))
	return m
}

func htmlBody(subject, body string) string {
	paragraphs := strings.Split(strings.TrimSpace(body), "\n\n")
	var b strings.Builder
	b.WriteString("<html><body>")
	b.WriteString("<h2>" + html.EscapeString(subject) + "</h2>")
	for _, p := range paragraphs {
		b.WriteString("<p>" + html.EscapeString(p) + "</p>")
	}
	b.WriteString("</body></html>")
	return b.String()
}
