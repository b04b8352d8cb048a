package grpc

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection/grpc_reflection_v1"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Belphemur/TVShows/internal/apperrors"
	"github.com/Belphemur/TVShows/internal/models"
)

// startTestServer serves loader on a local port and returns a connected client.
func startTestServer(t *testing.T, loader *mockLoader) *grpc.ClientConn {
	t.Helper()
	srv := NewGRPCServer(loader, newTestSnapshots(t))

	lis, err := net.Listen("tcp", "localhost:0")
	if err != nil {
		t.Fatalf("Failed to listen: %v", err)
	}
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.GracefulStop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		t.Fatalf("Failed to dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestNewGRPCServer_HealthCheck(t *testing.T) {
	conn := startTestServer(t, &mockLoader{})
	healthClient := grpc_health_v1.NewHealthClient(conn)

	for _, service := range []string{"", ServiceName} {
		resp, err := healthClient.Check(context.Background(), &grpc_health_v1.HealthCheckRequest{Service: service})
		if err != nil {
			t.Fatalf("Health check %q failed: %v", service, err)
		}
		if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
			t.Errorf("Expected SERVING for %q, got %v", service, resp.Status)
		}
	}
}

func TestNewGRPCServer_ReflectionListsService(t *testing.T) {
	conn := startTestServer(t, &mockLoader{})

	stream, err := grpc_reflection_v1.NewServerReflectionClient(conn).ServerReflectionInfo(context.Background())
	if err != nil {
		t.Fatalf("ServerReflectionInfo: %v", err)
	}
	if err := stream.Send(&grpc_reflection_v1.ServerReflectionRequest{
		MessageRequest: &grpc_reflection_v1.ServerReflectionRequest_ListServices{ListServices: ""},
	}); err != nil {
		t.Fatalf("Send: %v", err)
	}
	resp, err := stream.Recv()
	if err != nil {
		t.Fatalf("Recv: %v", err)
	}

	found := false
	for _, s := range resp.GetListServicesResponse().GetService() {
		if s.GetName() == ServiceName {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected %s in reflection service list", ServiceName)
	}
}

func TestShowDetailsClient_RoundTrip(t *testing.T) {
	var gotToken string
	conn := startTestServer(t, &mockLoader{
		loadShowFunc: func(_ context.Context, req models.RequestContext) models.FetchResult[*models.ShowPage] {
			gotToken = req.Token
			return models.Success(testPage(req.ShowID))
		},
	})
	client := NewShowDetailsClient(conn)

	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "tok")
	resp, err := client.LoadShow(ctx, wrapperspb.String("3"))
	if err != nil {
		t.Fatalf("LoadShow: %v", err)
	}
	if gotToken != "tok" {
		t.Errorf("Expected token from metadata, got %q", gotToken)
	}

	page, err := PageFromStruct(resp)
	if err != nil {
		t.Fatalf("PageFromStruct: %v", err)
	}
	if page.Show.ID != "3" || page.EpisodeCount() != 2 {
		t.Errorf("Unexpected page: %+v", page)
	}

	snap, err := client.GetSnapshot(context.Background(), wrapperspb.String("3"))
	if err != nil {
		t.Fatalf("GetSnapshot: %v", err)
	}
	if p, _ := PageFromStruct(snap); p == nil || p.Show.Title != "Show 3" {
		t.Errorf("Unexpected snapshot: %+v", p)
	}
}

func TestShowDetailsClient_ErrorDetails(t *testing.T) {
	conn := startTestServer(t, &mockLoader{
		loadShowFunc: func(_ context.Context, req models.RequestContext) models.FetchResult[*models.ShowPage] {
			return models.Failure[*models.ShowPage](apperrors.NewStatusError("fetch show", "http://x", 404, "show", req.ShowID))
		},
	})

	_, err := NewShowDetailsClient(conn).LoadShow(context.Background(), wrapperspb.String("404"))
	if status.Code(err) != codes.NotFound {
		t.Fatalf("Expected NotFound, got %v", err)
	}
	if ErrorReason(err) != ReasonShowNotFound {
		t.Errorf("Expected reason %s, got %q", ReasonShowNotFound, ErrorReason(err))
	}
}
