package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ReactionTransitions counts reaction ledger transitions by outcome.
	// Outcomes: created, retracted, blocked.
	ReactionTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_reaction_transitions_total",
		Help: "Total number of reaction ledger transitions by kind and outcome",
	}, []string{"kind", "outcome"})

	// LoginAttempts counts login attempts by result.
	LoginAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_login_attempts_total",
		Help: "Total number of login attempts by result",
	}, []string{"result"})

	// MailSendFailures counts outbound mail failures.
	MailSendFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_mail_send_failures_total",
		Help: "Total number of failed outbound mail deliveries",
	})
)
