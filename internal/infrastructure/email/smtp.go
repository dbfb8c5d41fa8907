package email

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/dggcrm/dggcrm/internal/shared/config"
)

// ErrEmailServiceNotConfigured is returned by the disabled notifier.
var ErrEmailServiceNotConfigured = errors.New("email service not configured")

type SMTPConfig struct {
	Host        string
	Port        int
	Username    string
	Password    string
	FromAddress string
	FromName    string
	FrontendURL string // base URL for links back to the app
}

// SMTPConfigFrom converts the loaded email settings.
func SMTPConfigFrom(cfg config.EmailConfig, frontendURL string) SMTPConfig {
	return SMTPConfig{
		Host:        cfg.SMTPHost,
		Port:        cfg.SMTPPort,
		Username:    cfg.SMTPUser,
		Password:    cfg.SMTPPassword,
		FromAddress: cfg.FromAddress,
		FromName:    cfg.FromName,
		FrontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

type sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type SMTPEmailService struct {
	config SMTPConfig
	sender sender
}

func NewSMTPEmailService(config SMTPConfig) *SMTPEmailService {
	return &SMTPEmailService{
		config: config,
		sender: gomail.NewDialer(config.Host, config.Port, config.Username, config.Password),
	}
}

// NotifyTicketAssigned tells the new assignee about a ticket.
func (s *SMTPEmailService) NotifyTicketAssigned(_ context.Context, to, assigneeName string, ticketID uint, title string) error {
	if to == "" {
		return fmt.Errorf("assignee has no email address")
	}

	ticketURL := fmt.Sprintf("%s/tickets/%d", s.config.FrontendURL, ticketID)
	if title == "" {
		title = fmt.Sprintf("Ticket #%d", ticketID)
	}

	subject := fmt.Sprintf("Ticket #%d assigned to you", ticketID)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<p>Hi %s,</p>
			<p>The ticket <strong>%s</strong> was assigned to you.</p>
			<p><a href="%s">Open ticket</a></p>
		</body>
		</html>
	`, html.EscapeString(assigneeName), html.EscapeString(title), ticketURL)

	plainBody := fmt.Sprintf(`
Hi %s,

The ticket "%s" was assigned to you.

Open it at:
%s
	`, assigneeName, title, ticketURL)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPEmailService) sendEmail(to, subject, htmlBody, plainBody string) error {
	m := gomail.NewMessage()
	if s.config.FromName != "" {
		m.SetAddressHeader("From", s.config.FromAddress, s.config.FromName)
	} else {
		m.SetHeader("From", s.config.FromAddress)
	}
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// DisabledNotifier is used when SMTP is not configured.
type DisabledNotifier struct{}

func (DisabledNotifier) NotifyTicketAssigned(context.Context, string, string, uint, string) error {
	return ErrEmailServiceNotConfigured
}
