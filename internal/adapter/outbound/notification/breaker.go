package notification

import (
	"context"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/orghub/server/internal/port/outbound"
)

// BreakerConfig configures the circuit breaker around a sender.
type BreakerConfig struct {
	FailureThreshold uint32
	Timeout          time.Duration
}

// BreakerSender stops calling a failing mail server until it has had time to recover.
// While open, sends fail immediately with gobreaker.ErrOpenState.
type BreakerSender struct {
	next    outbound.NotificationPort
	breaker *gobreaker.CircuitBreaker[any]
}

// NewBreakerSender wraps next with a circuit breaker.
func NewBreakerSender(next outbound.NotificationPort, cfg BreakerConfig, logger *zap.Logger) *BreakerSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}

	settings := gobreaker.Settings{
		Name:        "notification",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("notification circuit breaker state changed",
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	}

	return &BreakerSender{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

// SendInvitation sends through the breaker.
func (s *BreakerSender) SendInvitation(ctx context.Context, email, orgName, inviterName, token, message string) error {
	return s.execute(func() error {
		return s.next.SendInvitation(ctx, email, orgName, inviterName, token, message)
	})
}

// SendWelcome sends through the breaker.
func (s *BreakerSender) SendWelcome(ctx context.Context, email, userName, orgName string) error {
	return s.execute(func() error {
		return s.next.SendWelcome(ctx, email, userName, orgName)
	})
}

// State returns the current breaker state.
func (s *BreakerSender) State() gobreaker.State {
	return s.breaker.State()
}

func (s *BreakerSender) execute(fn func() error) error {
	_, err := s.breaker.Execute(func() (any, error) {
		return nil, fn()
	})
	return err
}

var _ outbound.NotificationPort = (*BreakerSender)(nil)
