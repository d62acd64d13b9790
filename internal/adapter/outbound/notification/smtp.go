// Package notification delivers invitation and welcome emails.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"mime"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/orghub/server/internal/port/outbound"
)

// SMTPConfig holds SMTP configuration.
type SMTPConfig struct {
	Host             string
	Port             int
	User             string
	Password         string
	FromAddress      string
	FromName         string
	FrontendURL      string // invitation links point here
	InvitationExpiry time.Duration
}

// sendMailFunc matches smtp.SendMail.
type sendMailFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPSender sends emails via SMTP.
type SMTPSender struct {
	config   *SMTPConfig
	logger   *zap.Logger
	sendMail sendMailFunc
}

// NewSMTPSender creates a new SMTP sender.
func NewSMTPSender(config *SMTPConfig, logger *zap.Logger) *SMTPSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SMTPSender{
		config:   config,
		logger:   logger,
		sendMail: smtp.SendMail,
	}
}

// SendInvitation emails an invitation link.
func (s *SMTPSender) SendInvitation(ctx context.Context, email, orgName, inviterName, token, message string) error {
	subject := fmt.Sprintf("You're invited to join %s", orgName)
	body, err := render(invitationTemplate, map[string]any{
		"OrgName":     orgName,
		"InviterName": inviterName,
		"Message":     message,
		"AcceptURL":   InvitationURL(s.config.FrontendURL, token),
		"ExpiryDays":  expiryDays(s.config.InvitationExpiry),
	})
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	return s.send(ctx, email, subject, body)
}

// SendWelcome emails a new member after they join.
func (s *SMTPSender) SendWelcome(ctx context.Context, email, userName, orgName string) error {
	subject := fmt.Sprintf("Welcome to %s", orgName)
	body, err := render(welcomeTemplate, map[string]any{
		"Name":         userName,
		"OrgName":      orgName,
		"DashboardURL": s.config.FrontendURL,
	})
	if err != nil {
		return fmt.Errorf("render template: %w", err)
	}
	return s.send(ctx, email, subject, body)
}

func (s *SMTPSender) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	from := headerValue(s.config.FromAddress)
	if s.config.FromName != "" {
		from = fmt.Sprintf("%s <%s>", mime.QEncoding.Encode("utf-8", headerValue(s.config.FromName)), from)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		from, headerValue(to), mime.QEncoding.Encode("utf-8", headerValue(subject)), body)

	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.User != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.User, s.config.Password, s.config.Host)
	}

	if err := s.sendMail(addr, auth, s.config.FromAddress, []string{to}, []byte(msg)); err != nil {
		s.logger.Error("failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("send email: %w", err)
	}

	s.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

var headerBreaks = strings.NewReplacer("\r", "", "\n", "")

// headerValue strips line breaks so a value cannot start a new header.
func headerValue(v string) string {
	return headerBreaks.Replace(v)
}

// InvitationURL builds the frontend link that accepts token.
func InvitationURL(frontendURL, token string) string {
	return fmt.Sprintf("%s/invitations/%s", frontendURL, url.PathEscape(token))
}

func expiryDays(d time.Duration) int {
	days := int(d / (24 * time.Hour))
	if days < 1 {
		return 1
	}
	return days
}

func render(t *template.Template, data map[string]any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var _ outbound.NotificationPort = (*SMTPSender)(nil)
