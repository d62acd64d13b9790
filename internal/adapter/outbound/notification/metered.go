package notification

import (
	"context"

	"github.com/orghub/server/internal/port/outbound"
	"github.com/orghub/server/internal/utils/metrics"
)

// MeteredSender counts delivery outcomes per email kind.
type MeteredSender struct {
	next    outbound.NotificationPort
	metrics *metrics.Metrics
}

// NewMeteredSender wraps next. A nil m returns next unchanged.
func NewMeteredSender(next outbound.NotificationPort, m *metrics.Metrics) outbound.NotificationPort {
	if m == nil {
		return next
	}
	return &MeteredSender{next: next, metrics: m}
}

func (s *MeteredSender) SendInvitation(ctx context.Context, email, orgName, inviterName, token, message string) error {
	err := s.next.SendInvitation(ctx, email, orgName, inviterName, token, message)
	s.metrics.RecordEmail("invitation", err)
	return err
}

func (s *MeteredSender) SendWelcome(ctx context.Context, email, userName, orgName string) error {
	err := s.next.SendWelcome(ctx, email, userName, orgName)
	s.metrics.RecordEmail("welcome", err)
	return err
}
