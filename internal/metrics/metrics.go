// Package metrics defines and registers the Prometheus metrics of the ontime
// server. Metrics are registered with the default registry on package
// initialisation via promauto and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ontime"

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts finished requests.
// Labels:
//   - method: HTTP method
//   - route: chi route pattern (e.g. "/todos/{id}"), never the raw path
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests, by method and route.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthFailuresTotal counts rejected credentials and tokens.
// Label:
//   - reason: "wrong_credentials", "missing_header", "malformed_token",
//     "bad_signature", "token_expired" or "unknown_user"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed authentication attempts, by reason.",
	},
	[]string{"reason"},
)

// Reason label values of AuthFailuresTotal.
const (
	ReasonWrongCredentials = "wrong_credentials"
	ReasonMissingHeader    = "missing_header"
	ReasonMalformedToken   = "malformed_token"
	ReasonBadSignature     = "bad_signature"
	ReasonTokenExpired     = "token_expired"
	ReasonUnknownUser      = "unknown_user"
)

// LoginsTotal counts successful logins.
var LoginsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of successful logins.",
	},
)

// RegistrationsTotal counts registration attempts.
// Label:
//   - result: "created", "duplicate" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of registration attempts, by result.",
	},
	[]string{"result"},
)

// ── Resource metrics ──────────────────────────────────────────────────────────

// ResourceOperationsTotal counts todo and note operations.
// Labels:
//   - resource: "todo" or "note"
//   - operation: "create", "list", "get", "update", "toggle" or "delete"
//   - result: "ok", "not_found" or "error"
var ResourceOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_operations_total",
		Help:      "Total number of todo and note operations, by resource, operation and result.",
	},
	[]string{"resource", "operation", "result"},
)
