// Package metrics defines and registers all custom Prometheus metrics for the
// portal shell. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default Prometheus registry on package load;
// Recorder adapts them to the observer interfaces the core depends on.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Submission metrics ───────────────────────────────────────────────────────

// SubmissionsTotal counts form submissions.
// Labels:
//   - form: the form name (e.g. "login", "job-post")
//   - outcome: "success", "validation_failed", "server_rejected",
//     "transport_failure" or "in_flight"
var SubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "Total number of form submissions, by form and outcome.",
	},
	[]string{"form", "outcome"},
)

// SubmissionDuration measures a submission from validation to navigation.
// Label:
//   - form: the form name
var SubmissionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "submission_duration_seconds",
		Help:      "Duration of form submissions, including the remote call.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"form"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// FetchesTotal counts entity fetch hooks.
// Labels:
//   - collection: the cache refreshed (e.g. "jobs", "companies", "job")
//   - outcome: "success", "stale", "server_rejected" or "transport_failure"
var FetchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetches_total",
		Help:      "Total number of entity cache fetches, by collection and outcome.",
	},
	[]string{"collection", "outcome"},
)

// ── Guard metrics ─────────────────────────────────────────────────────────────

// GuardRedirectsTotal counts screens the route guard refused to render.
// Label:
//   - reason: the guard's reason (e.g. "authentication required")
var GuardRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_redirects_total",
		Help:      "Total number of guard redirects, by reason.",
	},
	[]string{"reason"},
)

// Recorder feeds the metrics above from the core's observer hooks.
type Recorder struct{}

func (Recorder) ObserveSubmission(form, outcome string, elapsed time.Duration) {
	SubmissionsTotal.WithLabelValues(form, outcome).Inc()
	SubmissionDuration.WithLabelValues(form).Observe(elapsed.Seconds())
}

func (Recorder) ObserveFetch(collection, outcome string) {
	FetchesTotal.WithLabelValues(collection, outcome).Inc()
}

func (Recorder) ObserveRedirect(reason string) {
	GuardRedirectsTotal.WithLabelValues(reason).Inc()
}
