package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Belphemur/TVShows/internal/apperrors"
	"github.com/Belphemur/TVShows/internal/config"
	"github.com/Belphemur/TVShows/internal/metrics"
	"github.com/Belphemur/TVShows/internal/models"
	"github.com/Belphemur/TVShows/internal/parser"
)

// maxBodySize bounds how much of a response body is read.
const maxBodySize = 16 << 20

// resourceURL builds {baseURL}/shows/{showId}[/{sub}]?showId={showId}. The show id
// travels both in the path and in the query string; the API accepts either.
func (c *client) resourceURL(showID string, sub string) string {
	path := fmt.Sprintf("%s/shows/%s", c.baseURL, url.PathEscape(showID))
	if sub != "" {
		path += "/" + sub
	}
	query := url.Values{}
	query.Set("showId", showID)
	return path + "?" + query.Encode()
}

// get performs an authenticated GET and returns the UTF-8 body of a 2xx response.
// Transport failures and non-2xx statuses are NetworkErrors.
func (c *client) get(ctx context.Context, resource string, req models.RequestContext, reqURL string) (io.Reader, error) {
	logger := config.GetLogger()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &apperrors.NetworkError{Op: http.MethodGet, URL: reqURL, Err: fmt.Errorf("create request: %w", err)}
	}
	httpReq.Header.Set("Authorization", req.Token)

	logger.Debug().Str("resource", resource).Str("showId", req.ShowID).Str("url", reqURL).Msg("Requesting resource")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &apperrors.NetworkError{Op: http.MethodGet, URL: reqURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apperrors.NewStatusError(http.MethodGet, reqURL, resp.StatusCode, resource, req.ShowID)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, &apperrors.NetworkError{Op: http.MethodGet, URL: reqURL, Err: fmt.Errorf("read body: %w", err)}
	}

	reader, err := parser.NewUTF8Reader(bytes.NewReader(body), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, &apperrors.DecodeError{Field: parser.DataField, Err: err}
	}
	return reader, nil
}

// observe records the outcome of one fetch and logs failures.
func observe(resource string, showID string, started time.Time, err error) {
	metrics.FetchDurationSeconds.WithLabelValues(resource).Observe(time.Since(started).Seconds())
	metrics.FetchRequestsTotal.WithLabelValues(resource, metrics.FetchStatus(err)).Inc()

	if err != nil {
		logger := config.GetLogger()
		logger.Warn().Err(err).Str("resource", resource).Str("showId", showID).Msg("Fetch failed")
	}
}
