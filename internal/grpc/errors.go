package grpc

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/getsentry/sentry-go"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Belphemur/TVShows/internal/apperrors"
)

// errorDomain is the ErrorInfo domain of every error returned by the service.
const errorDomain = "tvshows.v1"

// Reasons attached to returned errors as errdetails.ErrorInfo.
const (
	ReasonInvalidRequest   = "INVALID_REQUEST"
	ReasonShowNotFound     = "SHOW_NOT_FOUND"
	ReasonSnapshotNotFound = "SNAPSHOT_NOT_FOUND"
	ReasonUnauthorized     = "UNAUTHORIZED"
	ReasonUpstream         = "UPSTREAM_UNAVAILABLE"
	ReasonDecode           = "UPSTREAM_MALFORMED"
	ReasonInternal         = "INTERNAL"
	ReasonCancelled        = "CANCELLED"
	ReasonDeadline         = "DEADLINE_EXCEEDED"
)

// toStatus maps a load error to a gRPC status. Cancellation and deadlines come
// from the caller and are never reported; not-found takes precedence over the
// network error that carries it.
func toStatus(err error, showID string) error {
	meta := map[string]string{"showId": showID}
	var netErr *apperrors.NetworkError

	switch {
	case errors.Is(err, context.Canceled):
		return newStatus(codes.Canceled, err.Error(), ReasonCancelled, meta)
	case errors.Is(err, context.DeadlineExceeded):
		return newStatus(codes.DeadlineExceeded, err.Error(), ReasonDeadline, meta)
	case errors.Is(err, apperrors.ErrInvalidRequest):
		return newStatus(codes.InvalidArgument, err.Error(), ReasonInvalidRequest, meta)
	case errors.Is(err, &apperrors.ErrNotFound{}):
		return newStatus(codes.NotFound, err.Error(), ReasonShowNotFound, meta)
	case errors.As(err, &netErr):
		if netErr.StatusCode != 0 {
			meta["statusCode"] = strconv.Itoa(netErr.StatusCode)
		}
		switch netErr.StatusCode {
		case http.StatusUnauthorized:
			return newStatus(codes.Unauthenticated, err.Error(), ReasonUnauthorized, meta)
		case http.StatusForbidden:
			return newStatus(codes.PermissionDenied, err.Error(), ReasonUnauthorized, meta)
		}
		reportError(err, showID)
		return newStatus(codes.Unavailable, err.Error(), ReasonUpstream, meta)
	case errors.Is(err, &apperrors.DecodeError{}):
		reportError(err, showID)
		return newStatus(codes.Internal, err.Error(), ReasonDecode, meta)
	default:
		reportError(err, showID)
		return newStatus(codes.Internal, err.Error(), ReasonInternal, meta)
	}
}

func newStatus(code codes.Code, msg, reason string, meta map[string]string) error {
	st := status.New(code, msg)
	detailed, err := st.WithDetails(&errdetails.ErrorInfo{
		Reason:   reason,
		Domain:   errorDomain,
		Metadata: meta,
	})
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// reportError sends server-side failures to Sentry. Swapped in tests.
var reportError = captureError

// captureError is a no-op when Sentry was not initialised.
func captureError(err error, showID string) {
	hub := sentry.CurrentHub().Clone()
	hub.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("showId", showID)
	})
	hub.CaptureException(err)
}

// ErrorReason extracts the ErrorInfo reason of a status error, or "" when it has none.
func ErrorReason(err error) string {
	st, ok := status.FromError(err)
	if !ok {
		return ""
	}
	for _, d := range st.Details() {
		if info, ok := d.(*errdetails.ErrorInfo); ok {
			return info.GetReason()
		}
	}
	return ""
}
