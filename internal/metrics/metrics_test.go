package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/Belphemur/TVShows/internal/apperrors"
)

func getCounterVecValue(cv *prometheus.CounterVec, labels ...string) float64 {
	c, err := cv.GetMetricWithLabelValues(labels...)
	if err != nil {
		return 0
	}
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}

func TestMetrics_ShowLoadsTotal(t *testing.T) {
	before := getCounterVecValue(ShowLoadsTotal, OutcomeCompleted)
	ShowLoadsTotal.WithLabelValues(OutcomeCompleted).Inc()
	after := getCounterVecValue(ShowLoadsTotal, OutcomeCompleted)

	if after != before+1 {
		t.Errorf("Expected completed counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestMetrics_FetchRequestsTotal(t *testing.T) {
	before := getCounterVecValue(FetchRequestsTotal, "show", StatusDecodeError)
	FetchRequestsTotal.WithLabelValues("show", StatusDecodeError).Inc()
	after := getCounterVecValue(FetchRequestsTotal, "show", StatusDecodeError)

	if after != before+1 {
		t.Errorf("Expected decode error counter to increment by 1, got diff %.0f", after-before)
	}
}

func TestFetchStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: StatusSuccess},
		{name: "decode", err: fmt.Errorf("wrap: %w", &apperrors.DecodeError{Field: "data", Err: errors.New("x")}), want: StatusDecodeError},
		{name: "network", err: &apperrors.NetworkError{Op: "GET", URL: "u", Err: errors.New("refused")}, want: StatusNetworkError},
		{name: "invalid", err: apperrors.ErrInvalidRequest, want: StatusInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FetchStatus(tt.err); got != tt.want {
				t.Errorf("FetchStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewHTTPServer_ServesMetrics(t *testing.T) {
	srv := NewHTTPServer("127.0.0.1", 0)
	if srv.Addr != "127.0.0.1:9090" {
		t.Errorf("Expected default port 9090, got %s", srv.Addr)
	}

	ShowLoadsTotal.WithLabelValues(OutcomeFailed).Inc()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "show_loads_total") {
		t.Error("Expected show_loads_total in metrics output")
	}
}
