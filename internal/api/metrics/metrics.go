// Package metrics defines and registers all custom Prometheus metrics for
// the catalog API's credential authority. It is the single source of truth
// for metric names, labels, and help strings.
//
// Metrics are registered with the default registry via promauto at package
// init; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth operation metrics ────────────────────────────────────────────────────

// RegistrationsTotal counts registration attempts.
// Label:
//   - outcome: "success" or "duplicate"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by outcome.",
	},
	[]string{"outcome"},
)

// LoginsTotal counts login attempts. The failure label never distinguishes
// an unknown account from a wrong password.
// Label:
//   - outcome: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// TokenRefreshesTotal counts refresh-token exchanges.
// Label:
//   - outcome: "success" or "failure"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh token exchanges, by outcome.",
	},
	[]string{"outcome"},
)

// GuardRejectionsTotal counts requests rejected by the access guard.
// Label:
//   - reason: "missing_token", "invalid_token", "unknown_subject", "forbidden"
var GuardRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_rejections_total",
		Help:      "Total number of requests rejected by the access guard, by reason.",
	},
	[]string{"reason"},
)

// PasswordHashDuration measures how long a single bcrypt hash takes. Useful
// for spotting a misconfigured cost factor in production.
var PasswordHashDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "password_hash_duration_seconds",
		Help:      "Duration of a single password hashing operation.",
		Buckets:   []float64{.01, .025, .05, .1, .25, .5, 1, 2.5},
	},
)

// AuthEventsPublishedTotal counts auth events handed to the notification
// side-channel.
// Labels:
//   - type: event type (e.g. "user.registered")
//   - result: "ok", "error" or "dropped"
var AuthEventsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_events_published_total",
		Help:      "Total number of auth events sent to the notification stream.",
	},
	[]string{"type", "result"},
)
