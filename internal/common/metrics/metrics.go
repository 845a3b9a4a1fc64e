package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Authentication outcomes, labeled by result: success, invalid_credentials,
// locked, lockout (the transition itself).
var LoginAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "backoffice_login_attempts_total",
		Help: "Authentication attempts by outcome",
	},
	[]string{"outcome"},
)

// Lifecycle transitions applied through the audit layer, labeled by
// transition name and entity.
var LifecycleTransitions = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "backoffice_lifecycle_transitions_total",
		Help: "Soft-delete/block layer transitions by kind and entity",
	},
	[]string{"transition", "entity"},
)

const (
	OutcomeSuccess            = "success"
	OutcomeInvalidCredentials = "invalid_credentials"
	OutcomeLocked             = "locked"
	OutcomeLockout            = "lockout"
)
