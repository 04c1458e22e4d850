// Package metrics defines and registers all custom Prometheus metrics for the
// launch portal API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init via
// promauto; the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts successful logins.
var LoginsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins.",
	},
)

// SignupsTotal counts successful account signups.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups.",
	},
)

// PasswordResetsIssuedTotal counts reset codes issued to existing accounts.
var PasswordResetsIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "password_resets_issued_total",
		Help:      "Total number of password reset codes issued.",
	},
)

// ── Work item metrics ─────────────────────────────────────────────────────────

// WorkItemsCreatedTotal counts submitted work items.
// Label:
//   - software: the software token the work was submitted for
var WorkItemsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "work_items_created_total",
		Help:      "Total number of work items submitted, by software.",
	},
	[]string{"software"},
)

// WorkReviewsTotal counts admin review decisions.
// Label:
//   - decision: "accepted" or "rejected"
var WorkReviewsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "work_reviews_total",
		Help:      "Total number of admin review decisions, by outcome.",
	},
	[]string{"decision"},
)

// ── SSO metrics ───────────────────────────────────────────────────────────────

// SSOTokensIssuedTotal counts issued launch tokens.
// Label:
//   - software: the software token the launch token is scoped to
var SSOTokensIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sso_tokens_issued_total",
		Help:      "Total number of SSO launch tokens issued, by software.",
	},
	[]string{"software"},
)

// ── Admin view metrics ────────────────────────────────────────────────────────

// AdminViewRefreshesTotal counts change-feed driven refreshes of the admin
// projection.
// Label:
//   - result: "ok" or "error"
var AdminViewRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "admin_view_refreshes_total",
		Help:      "Total number of admin view refreshes, by result.",
	},
	[]string{"result"},
)
