package sink

import (
	"context"

	"github.com/Belphemur/TVShows/internal/apperrors"
	"github.com/Belphemur/TVShows/internal/config"
	"github.com/Belphemur/TVShows/internal/models"
	"github.com/Belphemur/TVShows/internal/services"
)

// Sink presents the outcome of a show-details load. A sink receives either a
// complete page or the error that prevented it, never a partial page.
type Sink interface {
	Render(ctx context.Context, result models.FetchResult[*models.ShowPage]) error
}

// Deliver waits for the subscription's result and renders it on s. A load that
// was cancelled or superseded renders nothing; Deliver then returns
// apperrors.ErrCancelled or apperrors.ErrSuperseded.
func Deliver(ctx context.Context, sub *services.Subscription, s Sink) error {
	logger := config.GetLogger().With().
		Str("subscriptionId", sub.ID().String()).
		Str("showId", sub.Request().ShowID).
		Logger()

	result, err := sub.Wait(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("Nothing to render")
		return err
	}

	// A newer load may have started between publication and receipt.
	if !sub.Current() {
		logger.Debug().Msg("Discarding result of superseded load")
		return apperrors.ErrSuperseded
	}

	return s.Render(ctx, result)
}

// Multi renders on every sink in order and returns the first error.
type Multi []Sink

func (m Multi) Render(ctx context.Context, result models.FetchResult[*models.ShowPage]) error {
	for _, s := range m {
		if err := s.Render(ctx, result); err != nil {
			return err
		}
	}
	return nil
}
