package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devconnect", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devconnect", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	Registrations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devconnect", Name: "registrations_total", Help: "Registration attempts by outcome."},
		[]string{"outcome"},
	)
	Logins = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "devconnect", Name: "logins_total", Help: "Login attempts by outcome."},
		[]string{"outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(Registrations)
	reg.MustRegister(Logins)
}
