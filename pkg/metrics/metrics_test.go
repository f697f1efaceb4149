package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "localauth", want: "localauth"},
		{in: "local-auth", want: "local_auth"},
		{in: "local.auth v2", want: "local_auth_v2"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Namespace(tt.in))
		})
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics("local-auth").(*Metrics)
	m.RegisterCounter("login_requests_total", "help")
	m.RegisterCounterVec("login_failed_total", "help", []string{"reason"})

	m.IncCounter("login_requests_total")
	m.IncCounter("login_requests_total")
	m.IncCounter("not_registered")
	m.IncCounterVec("login_failed_total", "invalid_credentials")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.counters["login_requests_total"]))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.counterVecs["login_failed_total"].WithLabelValues("invalid_credentials")))

	families, err := m.GetRegistry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "local_auth_login_requests_total")
	assert.Contains(t, names, "local_auth_login_failed_total")
}

func TestMetrics_HistogramAndGauge(t *testing.T) {
	m := NewMetrics("localauth").(*Metrics)
	m.RegisterHistogram("login_duration_seconds", "help", []float64{0.1, 1})
	m.RegisterGauge("registered_users", "help")

	m.ObserveHistogram("login_duration_seconds", 0.05)
	m.SetGauge("registered_users", 3)
	m.SetGauge("unknown", 1)

	assert.Equal(t, 1, testutil.CollectAndCount(m.histograms["login_duration_seconds"]))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.gauges["registered_users"]))
}

func TestMetrics_DuplicateRegistrationPanics(t *testing.T) {
	m := NewMetrics("localauth")
	m.RegisterCounter("dup_total", "help")
	assert.Panics(t, func() { m.RegisterCounter("dup_total", "help") })
}
