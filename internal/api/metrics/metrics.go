// Package metrics defines and registers all custom Prometheus metrics for the
// library backend. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time
// via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "library"

// ── Lending metrics ───────────────────────────────────────────────────────────

// BooksCheckedOutTotal counts successful checkouts.
// Label:
//   - category: the book category (e.g. "FICTION")
var BooksCheckedOutTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_checked_out_total",
		Help:      "Total number of successful book checkouts, by category.",
	},
	[]string{"category"},
)

// BooksReturnedTotal counts successful returns.
var BooksReturnedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_returned_total",
		Help:      "Total number of successful book returns.",
	},
)

// CheckoutConflictsTotal counts checkout attempts rejected because the book
// was already borrowed.
var CheckoutConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_conflicts_total",
		Help:      "Total number of checkout attempts on already-borrowed books.",
	},
)

// ── Catalog metrics ───────────────────────────────────────────────────────────

// BooksCreatedTotal counts books added to the catalog.
// Label:
//   - category: the book category
var BooksCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "books_created_total",
		Help:      "Total number of books added to the catalog, by category.",
	},
	[]string{"category"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthLoginsTotal counts successful logins.
// Label:
//   - method: "password" or "google"
var AuthLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_logins_total",
		Help:      "Total number of successful logins, by method.",
	},
	[]string{"method"},
)

// AuthFailuresTotal counts rejected authentication attempts.
// Label:
//   - method: "password" or "google"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of rejected authentication attempts, by method.",
	},
	[]string{"method"},
)
