package services

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/Belphemur/TVShows/internal/apperrors"
	"github.com/Belphemur/TVShows/internal/config"
	"github.com/Belphemur/TVShows/internal/metrics"
	"github.com/Belphemur/TVShows/internal/models"
)

// DefaultShowLoader implements ShowLoader on top of a Fetcher.
type DefaultShowLoader struct {
	fetcher Fetcher

	// latest is the generation of the most recent Start; it is the only state
	// shared between loads.
	latest atomic.Uint64
}

// NewShowLoader creates a loader. Each display context should own its loader so
// that supersession stays scoped to it.
func NewShowLoader(fetcher Fetcher) *DefaultShowLoader {
	return &DefaultShowLoader{fetcher: fetcher}
}

var _ ShowLoader = (*DefaultShowLoader)(nil)

// LoadShow runs the dependent fetch synchronously.
func (l *DefaultShowLoader) LoadShow(ctx context.Context, req models.RequestContext) models.FetchResult[*models.ShowPage] {
	logger := config.GetLogger().With().Str("loadId", uuid.NewString()).Str("showId", req.ShowID).Logger()

	result := l.load(ctx, req, logger, nil)
	if result.IsSuccess() {
		metrics.ShowLoadsTotal.WithLabelValues(metrics.OutcomeCompleted).Inc()
	} else {
		metrics.ShowLoadsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
	}
	return result
}

// Start runs the dependent fetch in a goroutine. The fetches are detached from
// ctx cancellation: abandoning the result goes through Subscription.Cancel,
// which suppresses delivery without aborting the transport call. Values carried
// by ctx (deadlines excepted) are still visible to the fetcher.
func (l *DefaultShowLoader) Start(ctx context.Context, req models.RequestContext) *Subscription {
	generation := l.latest.Add(1)
	sub := newSubscription(req, generation, l)

	logger := config.GetLogger().With().
		Str("subscriptionId", sub.ID().String()).
		Str("showId", req.ShowID).
		Uint64("generation", generation).
		Logger()
	logger.Debug().Msg("Starting show load")

	detached := context.WithoutCancel(ctx)
	go func() {
		result := l.load(detached, req, logger, sub.setState)
		sub.finish(result, logger)
	}()

	return sub
}

// RefreshEpisodes re-fetches only the episode list of page.
func (l *DefaultShowLoader) RefreshEpisodes(ctx context.Context, page *models.ShowPage) models.FetchResult[*models.ShowPage] {
	if page == nil {
		return models.Failure[*models.ShowPage](apperrors.ErrInvalidRequest)
	}
	logger := config.GetLogger().With().Str("showId", page.Request.ShowID).Logger()

	episodes, err := l.fetcher.FetchEpisodes(ctx, page.Request)
	if err != nil {
		logger.Warn().Err(err).Msg("Episode refresh failed")
		return models.Failure[*models.ShowPage](err)
	}

	logger.Debug().Int("episodes", len(episodes)).Msg("Episode list refreshed")
	return models.Success(page.WithEpisodes(episodes))
}

// isCurrent reports whether generation belongs to the most recent Start.
func (l *DefaultShowLoader) isCurrent(generation uint64) bool {
	return l.latest.Load() == generation
}

// load is the dependent-fetch algorithm. Errors from either step are returned
// as-is so callers can inspect the originating failure.
func (l *DefaultShowLoader) load(ctx context.Context, req models.RequestContext, logger zerolog.Logger, track func(LoadState)) models.FetchResult[*models.ShowPage] {
	if track == nil {
		track = func(LoadState) {}
	}

	track(StateFetchingShow)
	if err := req.Validate(); err != nil {
		track(StateFailed)
		logger.Warn().Err(err).Msg("Rejected show load")
		return models.Failure[*models.ShowPage](err)
	}

	show, err := l.fetcher.FetchShowDetails(ctx, req)
	if err != nil {
		track(StateFailed)
		logger.Warn().Err(err).Str("stage", StateFetchingShow.String()).Msg("Show load failed")
		return models.Failure[*models.ShowPage](err)
	}

	track(StateFetchingEpisodes)
	episodes, err := l.fetcher.FetchEpisodes(ctx, req)
	if err != nil {
		track(StateFailed)
		logger.Warn().Err(err).Str("stage", StateFetchingEpisodes.String()).Msg("Show load failed, discarding show details")
		return models.Failure[*models.ShowPage](err)
	}

	track(StateCompleted)
	logger.Info().Str("title", show.Title).Int("episodes", len(episodes)).Msg("Show load completed")
	return models.Success(&models.ShowPage{
		Request:  req,
		Show:     *show,
		Episodes: episodes,
	})
}
