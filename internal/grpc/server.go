package grpc

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Belphemur/TVShows/internal/apperrors"
	"github.com/Belphemur/TVShows/internal/config"
	"github.com/Belphemur/TVShows/internal/models"
	"github.com/Belphemur/TVShows/internal/services"
	"github.com/Belphemur/TVShows/internal/sink"
)

// authorizationKey is the metadata key holding the access token.
const authorizationKey = "authorization"

// server implements ShowDetailsServer. Each call is an independent load; calls
// never supersede each other.
type server struct {
	loader    services.ShowLoader
	snapshots *sink.SnapshotSink
	sink      sink.Sink
	logger    zerolog.Logger
}

// NewServer creates the show-details service. Every load result is rendered to
// the log and, when successful, stored in snapshots. A nil snapshots disables
// GetSnapshot.
func NewServer(loader services.ShowLoader, snapshots *sink.SnapshotSink) ShowDetailsServer {
	logger := config.GetLogger()
	sinks := sink.Multi{sink.NewLogSink(logger)}
	if snapshots != nil {
		sinks = append(sinks, snapshots)
	}
	return &server{
		loader:    loader,
		snapshots: snapshots,
		sink:      sinks,
		logger:    logger,
	}
}

func (s *server) LoadShow(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	showID := strings.TrimSpace(req.GetValue())
	s.logger.Debug().Str("showId", showID).Msg("LoadShow called")

	result := s.loader.LoadShow(ctx, models.RequestContext{ShowID: showID, Token: tokenFromContext(ctx)})
	if err := s.sink.Render(ctx, result); err != nil {
		s.logger.Warn().Err(err).Str("showId", showID).Msg("Failed to render load result")
	}

	page, err := result.Unwrap()
	if err != nil {
		return nil, toStatus(err, showID)
	}

	out, err := pageToStruct(page)
	if err != nil {
		return nil, toStatus(err, showID)
	}
	s.logger.Debug().Str("showId", showID).Int("episodes", page.EpisodeCount()).Msg("LoadShow completed")
	return out, nil
}

func (s *server) GetSnapshot(_ context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	showID := strings.TrimSpace(req.GetValue())
	s.logger.Debug().Str("showId", showID).Msg("GetSnapshot called")

	if showID == "" {
		return nil, toStatus(apperrors.ErrInvalidRequest, showID)
	}
	if s.snapshots == nil {
		return nil, status.Error(codes.Unimplemented, "snapshots are disabled")
	}

	page, ok, err := s.snapshots.Snapshot(showID)
	if err != nil {
		s.logger.Error().Err(err).Str("showId", showID).Msg("Failed to read snapshot")
		return nil, toStatus(err, showID)
	}
	if !ok {
		return nil, newStatus(codes.NotFound, "no snapshot for show "+showID, ReasonSnapshotNotFound, map[string]string{"showId": showID})
	}

	out, err := pageToStruct(page)
	if err != nil {
		return nil, toStatus(err, showID)
	}
	return out, nil
}

// tokenFromContext returns the access token sent as "authorization" metadata,
// or "" when none was sent.
func tokenFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(authorizationKey)
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[0])
}
