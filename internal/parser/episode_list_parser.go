package parser

import (
	"fmt"
	"io"

	"github.com/Belphemur/TVShows/internal/apperrors"
	"github.com/Belphemur/TVShows/internal/config"
	"github.com/Belphemur/TVShows/internal/models"
)

// EpisodeListParser decodes the episode list from its "data" envelope,
// preserving server order.
type EpisodeListParser struct{}

// NewEpisodeListParser creates a new episode list parser instance
func NewEpisodeListParser() Parser[models.Episode] {
	return &EpisodeListParser{}
}

// ParseJSON decodes every episode in order. One invalid entry fails the whole list.
func (p *EpisodeListParser) ParseJSON(body io.Reader) ([]models.Episode, error) {
	raw, err := readBody(body, DataField)
	if err != nil {
		return nil, err
	}

	dtos, err := DecodeField[[]episodeDTO](raw, DataField)
	if err != nil {
		return nil, err
	}

	episodes := make([]models.Episode, 0, len(dtos))
	for i, dto := range dtos {
		episode, err := dto.toModel()
		if err != nil {
			logger := config.GetLogger()
			logger.Debug().Err(err).Int("index", i).Msg("Episode payload failed validation")
			return nil, &apperrors.DecodeError{Field: fmt.Sprintf("%s[%d]", DataField, i), Err: err}
		}
		episodes = append(episodes, episode)
	}

	logger := config.GetLogger()
	logger.Debug().Int("count", len(episodes)).Msg("Decoded episode list")
	return episodes, nil
}
