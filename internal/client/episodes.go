package client

import (
	"context"
	"time"

	"github.com/Belphemur/TVShows/internal/models"
)

const resourceEpisodes = "episodes"

// FetchEpisodes retrieves the episode list of a show. The list is returned in
// the order the server sent it; it is never sorted or deduplicated.
func (c *client) FetchEpisodes(ctx context.Context, req models.RequestContext) (episodes []models.Episode, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	defer func() { observe(resourceEpisodes, req.ShowID, started, err) }()

	body, err := c.get(ctx, resourceEpisodes, req, c.resourceURL(req.ShowID, resourceEpisodes))
	if err != nil {
		return nil, err
	}

	return c.episodeParser.ParseJSON(body)
}
