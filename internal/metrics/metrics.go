package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Belphemur/TVShows/internal/apperrors"
)

// Fetch statuses used as the "status" label of FetchRequestsTotal.
const (
	StatusSuccess      = "success"
	StatusNetworkError = "network_error"
	StatusDecodeError  = "decode_error"
	StatusInvalid      = "invalid_request"
)

// Load outcomes used as the "outcome" label of ShowLoadsTotal.
const (
	OutcomeCompleted  = "completed"
	OutcomeFailed     = "failed"
	OutcomeSuperseded = "superseded"
	OutcomeCancelled  = "cancelled"
)

// Fetch client metrics
var (
	FetchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "show_fetch_requests_total",
			Help: "Total number of shows API requests by resource and status.",
		},
		[]string{"resource", "status"},
	)

	FetchDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "show_fetch_duration_seconds",
			Help:    "Duration of shows API requests, decoding included.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource"},
	)
)

// Orchestrator metrics
var (
	ShowLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "show_loads_total",
			Help: "Total number of show page loads by outcome.",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		FetchRequestsTotal,
		FetchDurationSeconds,
		ShowLoadsTotal,
	)
}

// FetchStatus maps a fetch error to its status label.
func FetchStatus(err error) string {
	switch {
	case err == nil:
		return StatusSuccess
	case errors.Is(err, &apperrors.DecodeError{}):
		return StatusDecodeError
	case errors.Is(err, apperrors.ErrInvalidRequest):
		return StatusInvalid
	default:
		return StatusNetworkError
	}
}
