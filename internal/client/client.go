package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/Belphemur/TVShows/internal/config"
	"github.com/Belphemur/TVShows/internal/models"
	"github.com/Belphemur/TVShows/internal/parser"
)

// Client defines the fetch operations against the shows API. Every call is
// independent: nothing is cached and no state is shared between calls.
type Client interface {
	// FetchShowDetails requests the show resource identified by req.ShowID.
	FetchShowDetails(ctx context.Context, req models.RequestContext) (*models.ShowDetails, error)

	// FetchEpisodes requests the episode list of req.ShowID, in server order.
	FetchEpisodes(ctx context.Context, req models.RequestContext) ([]models.Episode, error)

	// Close releases idle connections held by the client.
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient    *http.Client
	baseURL       string
	showParser    parser.SingleResultParser[models.ShowDetails]
	episodeParser parser.Parser[models.Episode]
}

// NewClient creates a new client instance with proxy configuration if provided
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()

	timeout := 30 * time.Second
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to keep its pooling and HTTP/2 settings
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	baseURL := cfg.APIBaseURL
	if baseURL == "" {
		baseURL = config.DefaultAPIBaseURL
	}

	return &client{
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: newAPITransport(baseTransport, userAgent),
		},
		baseURL:       baseURL,
		showParser:    parser.NewShowDetailsParser(),
		episodeParser: parser.NewEpisodeListParser(),
	}
}

// Close releases idle keep-alive connections.
func (c *client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
