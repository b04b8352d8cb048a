package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Belphemur/TVShows/internal/cache"
	"github.com/Belphemur/TVShows/internal/models"
)

// SnapshotSink keeps the last completed page of each show so headless
// consumers can read what was last rendered. Failures leave the previous
// snapshot untouched. Tokens are never stored.
type SnapshotSink struct {
	store cache.Cache
}

func NewSnapshotSink(store cache.Cache) *SnapshotSink {
	return &SnapshotSink{store: store}
}

func (s *SnapshotSink) Render(_ context.Context, result models.FetchResult[*models.ShowPage]) error {
	page, err := result.Unwrap()
	if err != nil {
		return nil
	}

	key := page.Request.ShowID
	if key == "" {
		key = page.Show.ID
	}

	data, err := json.Marshal(page)
	if err != nil {
		return fmt.Errorf("encode snapshot for show %s: %w", key, err)
	}
	s.store.Set(key, data)
	return nil
}

// Snapshot returns the last page stored for showID, or false when none is kept.
func (s *SnapshotSink) Snapshot(showID string) (*models.ShowPage, bool, error) {
	data, ok := s.store.Get(showID)
	if !ok {
		return nil, false, nil
	}

	var page models.ShowPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, false, fmt.Errorf("decode snapshot for show %s: %w", showID, err)
	}
	page.Request = models.RequestContext{ShowID: showID}
	return &page, true, nil
}
