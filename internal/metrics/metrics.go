// Package metrics names the service's Prometheus metrics and registers them
// on a collector.
package metrics

import "github.com/haguru/localauth/internal/interfaces"

var DurationSecondsBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

const (
	LabelReason = "reason"
	LabelField  = "field"

	RegisterRequestsTotal       = "register_requests_total"
	RegisterRequestsTotalHelp   = "Total number of register requests received"
	RegisterSuccessTotal        = "register_success_total"
	RegisterSuccessTotalHelp    = "Total number of successful registrations"
	RegisterRejectedTotal       = "register_rejected_total"
	RegisterRejectedTotalHelp   = "Total number of rejected registrations by reason"
	RegisterDurationSeconds     = "register_duration_seconds"
	RegisterDurationSecondsHelp = "Duration of register requests in seconds"

	LoginRequestsTotal        = "login_requests_total"
	LoginRequestsTotalHelp    = "Total number of login requests received"
	LoginSuccessTotal         = "login_success_total"
	LoginSuccessTotalHelp     = "Total number of successful login requests"
	LoginFailedTotal          = "login_failed_total"
	LoginFailedTotalHelp      = "Total number of failed login requests by reason"
	LoginDurationSeconds      = "login_duration_seconds"
	LoginDurationSecondsHelp  = "Duration of login requests in seconds"
	LoginRateLimitedTotal     = "login_rate_limited_total"
	LoginRateLimitedTotalHelp = "Total number of login requests that were rate limited"

	FieldRejectedTotal     = "field_rejected_total"
	FieldRejectedTotalHelp = "Total number of live field validations that showed an error"

	RegisteredUsers     = "registered_users"
	RegisteredUsersHelp = "Number of records in the stored user collection"
)

// Register adds every metric the HTTP surface reports to m.
func Register(m interfaces.Metrics) {
	m.RegisterCounter(RegisterRequestsTotal, RegisterRequestsTotalHelp)
	m.RegisterCounter(RegisterSuccessTotal, RegisterSuccessTotalHelp)
	m.RegisterCounterVec(RegisterRejectedTotal, RegisterRejectedTotalHelp, []string{LabelReason})
	m.RegisterHistogram(RegisterDurationSeconds, RegisterDurationSecondsHelp, DurationSecondsBuckets)

	m.RegisterCounter(LoginRequestsTotal, LoginRequestsTotalHelp)
	m.RegisterCounter(LoginSuccessTotal, LoginSuccessTotalHelp)
	m.RegisterCounterVec(LoginFailedTotal, LoginFailedTotalHelp, []string{LabelReason})
	m.RegisterHistogram(LoginDurationSeconds, LoginDurationSecondsHelp, DurationSecondsBuckets)
	m.RegisterCounter(LoginRateLimitedTotal, LoginRateLimitedTotalHelp)

	m.RegisterCounterVec(FieldRejectedTotal, FieldRejectedTotalHelp, []string{LabelField, LabelReason})

	m.RegisterGauge(RegisteredUsers, RegisteredUsersHelp)
}
