package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// authOutcomes counts authentication results by outcome.
var authOutcomes = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "auth_filter_outcomes_total",
		Help: "Number of requests seen by the authentication filter, differentiated by outcome.",
	},
	[]string{"outcome"},
)

// authorizationDenials counts rejections of the role and ownership gates.
var authorizationDenials = promauto.NewCounterVec( //nolint:gochecknoglobals
	prometheus.CounterOpts{
		Name: "auth_guard_denials_total",
		Help: "Number of requests rejected by an authorization gate, differentiated by gate and reason.",
	},
	[]string{"gate", "reason"},
)
