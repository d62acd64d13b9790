package notification

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/orghub/server/internal/utils/metrics"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newTestSender(sendErr error) (*SMTPSender, *[]capturedMail) {
	sent := &[]capturedMail{}
	s := NewSMTPSender(&SMTPConfig{
		Host:             "smtp.example.com",
		Port:             2525,
		FromAddress:      "no-reply@orghub.local",
		FromName:         "OrgHub",
		FrontendURL:      "https://app.example.com",
		InvitationExpiry: 7 * 24 * time.Hour,
	}, zap.NewNop())
	s.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		*sent = append(*sent, capturedMail{addr: addr, from: from, to: to, msg: string(msg)})
		return sendErr
	}
	return s, sent
}

func TestSMTPSender_SendInvitation(t *testing.T) {
	t.Run("renders_link_and_expiry", func(t *testing.T) {
		s, sent := newTestSender(nil)

		err := s.SendInvitation(context.Background(), "bob@example.com", "Acme", "Alice", "tok_123", "Join us <3")

		require.NoError(t, err)
		require.Len(t, *sent, 1)
		mail := (*sent)[0]
		assert.Equal(t, "smtp.example.com:2525", mail.addr)
		assert.Equal(t, []string{"bob@example.com"}, mail.to)
		assert.Contains(t, mail.msg, "Subject: You're invited to join Acme")
		assert.Contains(t, mail.msg, "From: OrgHub <no-reply@orghub.local>")
		assert.Contains(t, mail.msg, "https://app.example.com/invitations/tok_123")
		assert.Contains(t, mail.msg, "Alice has invited you")
		assert.Contains(t, mail.msg, "expire in 7 days")
		assert.Contains(t, mail.msg, "Join us &lt;3")
	})

	t.Run("omits_empty_message", func(t *testing.T) {
		s, sent := newTestSender(nil)

		require.NoError(t, s.SendInvitation(context.Background(), "bob@example.com", "Acme", "Alice", "tok", ""))

		assert.False(t, strings.Contains((*sent)[0].msg, `class="message"`))
	})

	t.Run("line_breaks_cannot_add_headers", func(t *testing.T) {
		s, sent := newTestSender(nil)

		err := s.SendInvitation(context.Background(), "bob@example.com", "Acme\r\nBcc: attacker@evil.com", "Alice", "tok", "")

		require.NoError(t, err)
		headers, _, found := strings.Cut((*sent)[0].msg, "\r\n\r\n")
		require.True(t, found)
		assert.NotContains(t, headers, "\r\nBcc:")
		assert.NotContains(t, headers, "\nBcc:")
		assert.Contains(t, headers, "Subject: You're invited to join AcmeBcc: attacker@evil.com")
	})

	t.Run("non_ascii_subject_is_encoded", func(t *testing.T) {
		s, sent := newTestSender(nil)

		require.NoError(t, s.SendInvitation(context.Background(), "bob@example.com", "Café Société", "Alice", "tok", ""))

		assert.Contains(t, (*sent)[0].msg, "Subject: =?utf-8?q?")
	})

	t.Run("propagates_send_failure", func(t *testing.T) {
		s, _ := newTestSender(errors.New("connection refused"))

		err := s.SendInvitation(context.Background(), "bob@example.com", "Acme", "Alice", "tok", "")

		assert.ErrorContains(t, err, "connection refused")
	})

	t.Run("cancelled_context", func(t *testing.T) {
		s, sent := newTestSender(nil)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := s.SendInvitation(ctx, "bob@example.com", "Acme", "Alice", "tok", "")

		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, *sent)
	})
}

func TestSMTPSender_SendWelcome(t *testing.T) {
	s, sent := newTestSender(nil)

	require.NoError(t, s.SendWelcome(context.Background(), "bob@example.com", "Bob", "Acme"))

	require.Len(t, *sent, 1)
	assert.Contains(t, (*sent)[0].msg, "Subject: Welcome to Acme")
	assert.Contains(t, (*sent)[0].msg, "Hi Bob,")

	require.NoError(t, s.SendWelcome(context.Background(), "bob@example.com", "Bob", "Acme\nReply-To: x@evil.com"))
	headers, _, _ := strings.Cut((*sent)[1].msg, "\r\n\r\n")
	assert.NotContains(t, headers, "\nReply-To:")
}

func TestInvitationURL(t *testing.T) {
	assert.Equal(t, "http://localhost:3000/invitations/abc-_DEF", InvitationURL("http://localhost:3000", "abc-_DEF"))
}

func TestLogSender(t *testing.T) {
	s := NewLogSender("http://localhost:3000", nil)
	assert.NoError(t, s.SendInvitation(context.Background(), "bob@example.com", "Acme", "Alice", "tok", ""))
	assert.NoError(t, s.SendWelcome(context.Background(), "bob@example.com", "Bob", "Acme"))
}

type failingSender struct {
	calls int
}

func (f *failingSender) SendInvitation(ctx context.Context, email, orgName, inviterName, token, message string) error {
	f.calls++
	return errors.New("smtp down")
}

func (f *failingSender) SendWelcome(ctx context.Context, email, userName, orgName string) error {
	f.calls++
	return errors.New("smtp down")
}

func TestBreakerSender(t *testing.T) {
	t.Run("opens_after_threshold", func(t *testing.T) {
		next := &failingSender{}
		s := NewBreakerSender(next, BreakerConfig{FailureThreshold: 2, Timeout: time.Minute}, nil)
		ctx := context.Background()

		assert.Error(t, s.SendInvitation(ctx, "a@example.com", "Acme", "Alice", "tok", ""))
		assert.Error(t, s.SendWelcome(ctx, "a@example.com", "A", "Acme"))
		assert.Equal(t, gobreaker.StateOpen, s.State())

		err := s.SendInvitation(ctx, "a@example.com", "Acme", "Alice", "tok", "")

		assert.ErrorIs(t, err, gobreaker.ErrOpenState)
		assert.Equal(t, 2, next.calls)
	})

	t.Run("passes_through_success", func(t *testing.T) {
		s := NewBreakerSender(NewLogSender("", nil), BreakerConfig{}, nil)

		assert.NoError(t, s.SendWelcome(context.Background(), "a@example.com", "A", "Acme"))
		assert.Equal(t, gobreaker.StateClosed, s.State())
	})
}

func TestMeteredSender(t *testing.T) {
	m := metrics.New("test", prometheus.NewRegistry())
	ctx := context.Background()

	ok := NewMeteredSender(NewLogSender("", nil), m)
	assert.NoError(t, ok.SendInvitation(ctx, "a@example.com", "Acme", "Alice", "tok", ""))

	failing := NewMeteredSender(&failingSender{}, m)
	assert.Error(t, failing.SendWelcome(ctx, "a@example.com", "A", "Acme"))

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsTotal.WithLabelValues("invitation", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsTotal.WithLabelValues("welcome", "failed")))

	plain := NewLogSender("", nil)
	assert.Same(t, plain, NewMeteredSender(plain, nil))
}
