package parser

import (
	"io"

	"github.com/Belphemur/TVShows/internal/apperrors"
	"github.com/Belphemur/TVShows/internal/config"
	"github.com/Belphemur/TVShows/internal/models"
)

// ShowDetailsParser decodes the show resource from its "data" envelope.
type ShowDetailsParser struct{}

// NewShowDetailsParser creates a new show details parser instance
func NewShowDetailsParser() SingleResultParser[models.ShowDetails] {
	return &ShowDetailsParser{}
}

// ParseJSON decodes a single show.
func (p *ShowDetailsParser) ParseJSON(body io.Reader) (models.ShowDetails, error) {
	raw, err := readBody(body, DataField)
	if err != nil {
		return models.ShowDetails{}, err
	}

	dto, err := DecodeField[showDTO](raw, DataField)
	if err != nil {
		return models.ShowDetails{}, err
	}

	show, err := dto.toModel()
	if err != nil {
		logger := config.GetLogger()
		logger.Debug().Err(err).Msg("Show payload failed validation")
		return models.ShowDetails{}, &apperrors.DecodeError{Field: DataField, Err: err}
	}
	return show, nil
}
