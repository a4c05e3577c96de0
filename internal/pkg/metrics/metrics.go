// Package metrics defines the business Prometheus metrics for the
// marketplace. It is the single source of truth for metric names, labels
// and help strings.
//
// Call Register once at startup, before the HTTP server starts, with the
// registry that backs the /metrics endpoint.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "freelancehub"

// ── Account metrics ───────────────────────────────────────────────────────────

// UsersRegisteredTotal counts successful registrations.
// Label:
//   - role: "client" or "freelancer"
var UsersRegisteredTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_registered_total",
		Help:      "Total number of users registered, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "accepted" or "rejected"
var LoginsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Marketplace metrics ───────────────────────────────────────────────────────

// ProjectsCreatedTotal counts published projects.
var ProjectsCreatedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "projects_created_total",
		Help:      "Total number of projects published.",
	},
)

// ReviewsCreatedTotal counts reviews left on profiles.
var ReviewsCreatedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of reviews added.",
	},
)

// SearchResults observes how many freelancers a non-empty search returned.
var SearchResults = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "search_results",
		Help:      "Number of users returned per freelancer search.",
		Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
	},
)

func collectors() []prometheus.Collector {
	return []prometheus.Collector{
		UsersRegisteredTotal,
		LoginsTotal,
		ProjectsCreatedTotal,
		ReviewsCreatedTotal,
		SearchResults,
	}
}

// Register adds every business metric to reg. Registering into a registry
// that already holds them is not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range collectors() {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
