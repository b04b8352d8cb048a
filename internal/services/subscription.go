package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Belphemur/TVShows/internal/apperrors"
	"github.com/Belphemur/TVShows/internal/metrics"
	"github.com/Belphemur/TVShows/internal/models"
)

// ErrResultConsumed is returned by Wait once the single result has already been received.
var ErrResultConsumed = errors.New("load result already consumed")

// Subscription is the handle a display sink holds on one background load. It
// delivers at most one result; a cancelled or superseded load delivers none.
type Subscription struct {
	id         uuid.UUID
	req        models.RequestContext
	generation uint64
	loader     *DefaultShowLoader

	state atomic.Int32

	mu        sync.Mutex
	cancelled bool
	finished  bool
	dropErr   error
	result    chan models.FetchResult[*models.ShowPage]
}

func newSubscription(req models.RequestContext, generation uint64, loader *DefaultShowLoader) *Subscription {
	return &Subscription{
		id:         uuid.New(),
		req:        req,
		generation: generation,
		loader:     loader,
		result:     make(chan models.FetchResult[*models.ShowPage], 1),
	}
}

// ID identifies the subscription in logs.
func (s *Subscription) ID() uuid.UUID {
	return s.id
}

// Request returns the identifiers this load was started with, for callers that
// navigate to a related screen.
func (s *Subscription) Request() models.RequestContext {
	return s.req
}

// State returns the current lifecycle state of the load.
func (s *Subscription) State() LoadState {
	return LoadState(s.state.Load())
}

// Current reports whether no newer load has been started on the same loader.
func (s *Subscription) Current() bool {
	return s.loader.isCurrent(s.generation)
}

// Result returns the channel receiving the load result. It yields at most one
// value and is then closed; it closes without a value when the load was
// cancelled or superseded.
func (s *Subscription) Result() <-chan models.FetchResult[*models.ShowPage] {
	return s.result
}

// Cancel abandons interest in the result. The underlying requests still run to
// completion; their result is dropped. Calling Cancel more than once is a no-op.
func (s *Subscription) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancelled {
		return
	}
	s.cancelled = true

	if !s.finished {
		return
	}
	// Already finished: withdraw a result nobody has received yet.
	select {
	case _, ok := <-s.result:
		if ok {
			s.dropErr = apperrors.ErrCancelled
			metrics.ShowLoadsTotal.WithLabelValues(metrics.OutcomeCancelled).Inc()
		}
	default:
	}
}

// Wait blocks until the result arrives, the load is dropped, or ctx is done.
// A dropped load returns apperrors.ErrCancelled or apperrors.ErrSuperseded.
func (s *Subscription) Wait(ctx context.Context) (models.FetchResult[*models.ShowPage], error) {
	select {
	case res, ok := <-s.result:
		if ok {
			return res, nil
		}
		return models.FetchResult[*models.ShowPage]{}, s.dropReason()
	case <-ctx.Done():
		return models.FetchResult[*models.ShowPage]{}, ctx.Err()
	}
}

func (s *Subscription) dropReason() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.dropErr != nil:
		return s.dropErr
	case s.cancelled:
		return apperrors.ErrCancelled
	default:
		return ErrResultConsumed
	}
}

func (s *Subscription) setState(state LoadState) {
	s.state.Store(int32(state))
}

// finish publishes the result unless the subscription was cancelled or a newer
// load was started meanwhile.
func (s *Subscription) finish(result models.FetchResult[*models.ShowPage], logger zerolog.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.finished = true
	defer close(s.result)

	switch {
	case s.cancelled:
		s.dropErr = apperrors.ErrCancelled
		metrics.ShowLoadsTotal.WithLabelValues(metrics.OutcomeCancelled).Inc()
		logger.Debug().Msg("Dropping result of cancelled load")
	case !s.Current():
		s.dropErr = apperrors.ErrSuperseded
		metrics.ShowLoadsTotal.WithLabelValues(metrics.OutcomeSuperseded).Inc()
		logger.Debug().Msg("Dropping result of superseded load")
	default:
		if result.IsSuccess() {
			metrics.ShowLoadsTotal.WithLabelValues(metrics.OutcomeCompleted).Inc()
		} else {
			metrics.ShowLoadsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		}
		s.result <- result
	}
}
