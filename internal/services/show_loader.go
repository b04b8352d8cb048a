package services

import (
	"context"

	"github.com/Belphemur/TVShows/internal/models"
)

// Fetcher is the pair of fetch operations the loader sequences. client.Client
// satisfies it.
type Fetcher interface {
	FetchShowDetails(ctx context.Context, req models.RequestContext) (*models.ShowDetails, error)
	FetchEpisodes(ctx context.Context, req models.RequestContext) ([]models.Episode, error)
}

// ShowLoader loads a show page: the show first, then its episodes. A load is all
// or nothing; a caller needing partial data must use the Fetcher directly.
type ShowLoader interface {
	// LoadShow runs one load and returns its result. The episodes endpoint is
	// never called when the show fetch fails.
	LoadShow(ctx context.Context, req models.RequestContext) models.FetchResult[*models.ShowPage]

	// Start runs a load in the background and returns a handle to its result.
	// Starting a new load supersedes every load started earlier on this loader.
	Start(ctx context.Context, req models.RequestContext) *Subscription

	// RefreshEpisodes fetches the episode list of an already loaded page again and
	// returns a new page with the list replaced.
	RefreshEpisodes(ctx context.Context, page *models.ShowPage) models.FetchResult[*models.ShowPage]
}
