package models

import (
	"strings"

	"github.com/Belphemur/TVShows/internal/apperrors"
)

// RequestContext carries the identifiers of one show-details load. It is passed
// explicitly on every call; nothing keeps it between calls.
type RequestContext struct {
	ShowID string
	Token  string
}

// Validate checks that the request names a show.
func (r RequestContext) Validate() error {
	if strings.TrimSpace(r.ShowID) == "" {
		return apperrors.ErrInvalidRequest
	}
	return nil
}

// EpisodeRef identifies a screen related to a show (adding an episode, viewing
// one) together with the credential needed to load it.
type EpisodeRef struct {
	ShowID    string
	EpisodeID string // empty when targeting a new episode
	Token     string
}
