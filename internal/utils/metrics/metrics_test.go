package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMetrics(t *testing.T) (*Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return New("test", reg), reg
}

func TestNew(t *testing.T) {
	t.Run("registers_with_given_registry", func(t *testing.T) {
		m, reg := newTestMetrics(t)
		m.RecordOrganizationCreated()

		families, err := reg.Gather()
		require.NoError(t, err)

		names := make([]string, 0, len(families))
		for _, f := range families {
			names = append(names, f.GetName())
		}
		assert.Contains(t, names, "test_organization_created_total")
	})

	t.Run("default_namespace", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		m := New("", reg)
		m.RecordRateLimited()

		n, err := testutil.GatherAndCount(reg, "orghub_http_rate_limited_total")
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("duplicate_registration_panics", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		New("dup", reg)
		assert.Panics(t, func() { New("dup", reg) })
	})
}

func TestRecordHTTPRequest(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordHTTPRequest("GET", "/organizations", 200, 10*time.Millisecond)
	m.RecordHTTPRequest("GET", "/organizations", 201, 10*time.Millisecond)
	m.RecordHTTPRequest("POST", "/organizations", 409, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/organizations", "2xx")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/organizations", "4xx")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPRequestDuration))
}

func TestDomainCounters(t *testing.T) {
	m, _ := newTestMetrics(t)

	m.RecordInvitationEvent("sent")
	m.RecordInvitationEvent("sent")
	m.RecordInvitationEvent("accepted")
	m.RecordMemberEvent("removed")
	m.RecordEmail("invitation", nil)
	m.RecordEmail("invitation", errors.New("smtp down"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.InvitationEventsTotal.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.InvitationEventsTotal.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.MemberEventsTotal.WithLabelValues("removed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsTotal.WithLabelValues("invitation", "sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EmailsTotal.WithLabelValues("invitation", "failed")))
}

func TestStatusCodeToString(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{204, "2xx"},
		{302, "3xx"},
		{404, "4xx"},
		{429, "4xx"},
		{500, "5xx"},
		{100, "unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusCodeToString(tt.code), "code %d", tt.code)
	}
}
