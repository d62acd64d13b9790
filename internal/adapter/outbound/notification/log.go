package notification

import (
	"context"

	"go.uber.org/zap"

	"github.com/orghub/server/internal/port/outbound"
)

// LogSender logs notifications instead of sending them. Used when no SMTP host is configured.
type LogSender struct {
	frontendURL string
	logger      *zap.Logger
}

// NewLogSender creates a log-only sender.
func NewLogSender(frontendURL string, logger *zap.Logger) *LogSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSender{frontendURL: frontendURL, logger: logger}
}

// SendInvitation logs but doesn't send.
func (s *LogSender) SendInvitation(ctx context.Context, email, orgName, inviterName, token, message string) error {
	s.logger.Info("invitation email (log only)",
		zap.String("email", email),
		zap.String("organization", orgName),
		zap.String("inviter", inviterName),
		zap.String("accept_url", InvitationURL(s.frontendURL, token)),
	)
	return nil
}

// SendWelcome logs but doesn't send.
func (s *LogSender) SendWelcome(ctx context.Context, email, userName, orgName string) error {
	s.logger.Info("welcome email (log only)",
		zap.String("email", email),
		zap.String("name", userName),
		zap.String("organization", orgName),
	)
	return nil
}

var _ outbound.NotificationPort = (*LogSender)(nil)
