package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// ShowAPI is an in-process fake of the shows API. Handlers can be replaced per
// test; request counts and the last seen headers are recorded per endpoint.
// It is a test helper and should not be used in production code.
type ShowAPI struct {
	Server *httptest.Server

	ShowHandler     http.HandlerFunc
	EpisodesHandler http.HandlerFunc

	showCalls     atomic.Int64
	episodesCalls atomic.Int64

	mu       sync.Mutex
	requests []*http.Request
}

// NewShowAPI starts a fake API and closes it when the test ends.
func NewShowAPI(t *testing.T) *ShowAPI {
	t.Helper()
	api := &ShowAPI{}
	api.Server = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.Server.Close)
	return api
}

// URL returns the API base URL to configure clients with.
func (a *ShowAPI) URL() string {
	return a.Server.URL + "/api"
}

func (a *ShowAPI) serve(w http.ResponseWriter, r *http.Request) {
	a.mu.Lock()
	a.requests = append(a.requests, r.Clone(r.Context()))
	a.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, "/api/shows/")
	switch {
	case path == r.URL.Path || path == "":
		http.NotFound(w, r)
	case strings.HasSuffix(path, "/episodes"):
		a.episodesCalls.Add(1)
		if a.EpisodesHandler == nil {
			http.NotFound(w, r)
			return
		}
		a.EpisodesHandler(w, r)
	case !strings.Contains(path, "/"):
		a.showCalls.Add(1)
		if a.ShowHandler == nil {
			http.NotFound(w, r)
			return
		}
		a.ShowHandler(w, r)
	default:
		http.NotFound(w, r)
	}
}

// ShowCalls returns how many times the show endpoint was hit.
func (a *ShowAPI) ShowCalls() int64 {
	return a.showCalls.Load()
}

// EpisodesCalls returns how many times the episodes endpoint was hit.
func (a *ShowAPI) EpisodesCalls() int64 {
	return a.episodesCalls.Load()
}

// Requests returns a copy of every request received so far.
func (a *ShowAPI) Requests() []*http.Request {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*http.Request(nil), a.requests...)
}

// JSON returns a handler writing payload wrapped in a {"data": ...} envelope.
func JSON(payload any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{"data": payload})
	}
}

// Raw returns a handler writing body verbatim with the given status.
func Raw(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

// Status returns a handler replying with an empty body and the given status.
func Status(status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}
}

// Show builds a show payload as the API serves it.
func Show(id, title string) map[string]any {
	return map[string]any{
		"id":          id,
		"title":       title,
		"description": "Description of " + title,
		"imageUrl":    "/images/" + id + ".png",
	}
}

// Episode builds an episode payload as the API serves it.
func Episode(id, showID, number string) map[string]any {
	return map[string]any{
		"id":            id,
		"showId":        showID,
		"title":         "Episode " + number,
		"description":   "",
		"episodeNumber": number,
		"season":        "1",
		"imageUrl":      "",
	}
}
