package client

import (
	"context"
	"time"

	"github.com/Belphemur/TVShows/internal/models"
)

const resourceShow = "show"

// FetchShowDetails retrieves a single show by id.
func (c *client) FetchShowDetails(ctx context.Context, req models.RequestContext) (show *models.ShowDetails, err error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	defer func() { observe(resourceShow, req.ShowID, started, err) }()

	body, err := c.get(ctx, resourceShow, req, c.resourceURL(req.ShowID, ""))
	if err != nil {
		return nil, err
	}

	details, err := c.showParser.ParseJSON(body)
	if err != nil {
		return nil, err
	}
	return &details, nil
}
