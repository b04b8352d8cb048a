package sink

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Belphemur/TVShows/internal/apperrors"
	"github.com/Belphemur/TVShows/internal/models"
	"github.com/Belphemur/TVShows/internal/services"
)

// stubFetcher serves a fixed show; episode fetches block until release is closed.
type stubFetcher struct {
	release chan struct{}
	err     error
}

func (f *stubFetcher) FetchShowDetails(_ context.Context, req models.RequestContext) (*models.ShowDetails, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.ShowDetails{ID: req.ShowID, Title: "Show " + req.ShowID}, nil
}

func (f *stubFetcher) FetchEpisodes(_ context.Context, req models.RequestContext) ([]models.Episode, error) {
	if f.release != nil {
		<-f.release
	}
	return []models.Episode{{ID: "e1", ShowID: req.ShowID, Title: "Pilot", EpisodeNumber: "1", Season: "1"}}, nil
}

// recordingSink remembers every result it rendered.
type recordingSink struct {
	mu      sync.Mutex
	results []models.FetchResult[*models.ShowPage]
}

func (s *recordingSink) Render(_ context.Context, result models.FetchResult[*models.ShowPage]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.results)
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestDeliver_RendersSuccess(t *testing.T) {
	loader := services.NewShowLoader(&stubFetcher{})
	rec := &recordingSink{}

	sub := loader.Start(context.Background(), models.RequestContext{ShowID: "7"})
	if err := Deliver(testCtx(t), sub, rec); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	if rec.count() != 1 {
		t.Fatalf("Expected 1 render, got %d", rec.count())
	}
	page, err := rec.results[0].Unwrap()
	if err != nil {
		t.Fatalf("Expected success, got %v", err)
	}
	if page.Show.Title != "Show 7" || page.EpisodeCount() != 1 {
		t.Errorf("Unexpected page: %+v", page)
	}
}

func TestDeliver_RendersFailure(t *testing.T) {
	wantErr := apperrors.NewNotFoundError("show", "7")
	loader := services.NewShowLoader(&stubFetcher{err: wantErr})
	rec := &recordingSink{}

	sub := loader.Start(context.Background(), models.RequestContext{ShowID: "7"})
	if err := Deliver(testCtx(t), sub, rec); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	if rec.count() != 1 {
		t.Fatalf("Expected 1 render, got %d", rec.count())
	}
	if !errors.Is(rec.results[0].Err, &apperrors.ErrNotFound{}) {
		t.Errorf("Expected not found failure, got %v", rec.results[0].Err)
	}
}

func TestDeliver_SkipsCancelled(t *testing.T) {
	release := make(chan struct{})
	loader := services.NewShowLoader(&stubFetcher{release: release})
	rec := &recordingSink{}

	sub := loader.Start(context.Background(), models.RequestContext{ShowID: "7"})
	sub.Cancel()
	close(release)

	err := Deliver(testCtx(t), sub, rec)
	if !errors.Is(err, apperrors.ErrCancelled) {
		t.Fatalf("Expected ErrCancelled, got %v", err)
	}
	if rec.count() != 0 {
		t.Errorf("Expected no render for cancelled load, got %d", rec.count())
	}
}

func TestDeliver_SkipsSuperseded(t *testing.T) {
	release := make(chan struct{})
	loader := services.NewShowLoader(&stubFetcher{release: release})
	rec := &recordingSink{}

	first := loader.Start(context.Background(), models.RequestContext{ShowID: "1"})
	second := loader.Start(context.Background(), models.RequestContext{ShowID: "2"})
	close(release)

	if err := Deliver(testCtx(t), first, rec); !errors.Is(err, apperrors.ErrSuperseded) {
		t.Fatalf("Expected ErrSuperseded for first load, got %v", err)
	}
	if err := Deliver(testCtx(t), second, rec); err != nil {
		t.Fatalf("Deliver second: %v", err)
	}

	if rec.count() != 1 {
		t.Fatalf("Expected only the latest load rendered, got %d", rec.count())
	}
	if page, _ := rec.results[0].Unwrap(); page.Show.ID != "2" {
		t.Errorf("Expected page of show 2, got %q", page.Show.ID)
	}
}

func TestMulti_RendersAll(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	result := models.Success(&models.ShowPage{Show: models.ShowDetails{ID: "1"}})

	if err := (Multi{a, b}).Render(context.Background(), result); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if a.count() != 1 || b.count() != 1 {
		t.Errorf("Expected both sinks rendered, got %d and %d", a.count(), b.count())
	}
}
