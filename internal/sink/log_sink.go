package sink

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Belphemur/TVShows/internal/models"
)

// LogSink reports each load outcome as a structured log line.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Render(_ context.Context, result models.FetchResult[*models.ShowPage]) error {
	page, err := result.Unwrap()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load show")
		return nil
	}

	s.logger.Info().
		Str("showId", page.Show.ID).
		Str("title", page.Show.Title).
		Int("episodes", page.EpisodeCount()).
		Msg("Show loaded")
	return nil
}
