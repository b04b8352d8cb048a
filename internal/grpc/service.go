package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// ServiceName is the fully qualified name of the show-details service.
const ServiceName = "tvshows.v1.ShowDetailsService"

const (
	loadShowMethod    = "/" + ServiceName + "/LoadShow"
	getSnapshotMethod = "/" + ServiceName + "/GetSnapshot"
)

// ShowDetailsServer is the server API of tvshows.v1.ShowDetailsService. Requests
// carry the show id as a StringValue; pages are returned as a Struct holding the
// JSON form of models.ShowPage.
type ShowDetailsServer interface {
	// LoadShow loads the show and its episodes. The access token is read from
	// the "authorization" request metadata.
	LoadShow(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
	// GetSnapshot returns the last page successfully loaded for the show.
	GetSnapshot(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error)
}

// UnimplementedShowDetailsServer answers every method with codes.Unimplemented.
type UnimplementedShowDetailsServer struct{}

func (UnimplementedShowDetailsServer) LoadShow(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method LoadShow not implemented")
}

func (UnimplementedShowDetailsServer) GetSnapshot(context.Context, *wrapperspb.StringValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSnapshot not implemented")
}

// RegisterShowDetailsServer registers srv on s.
func RegisterShowDetailsServer(s grpc.ServiceRegistrar, srv ShowDetailsServer) {
	s.RegisterService(&showDetailsServiceDesc, srv)
}

func loadShowHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShowDetailsServer).LoadShow(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: loadShowMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShowDetailsServer).LoadShow(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func getSnapshotHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(ShowDetailsServer).GetSnapshot(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: getSnapshotMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(ShowDetailsServer).GetSnapshot(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

var showDetailsServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ShowDetailsServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "LoadShow", Handler: loadShowHandler},
		{MethodName: "GetSnapshot", Handler: getSnapshotHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tvshows/v1/show_details.proto",
}

// ShowDetailsClient calls tvshows.v1.ShowDetailsService.
type ShowDetailsClient struct {
	cc grpc.ClientConnInterface
}

func NewShowDetailsClient(cc grpc.ClientConnInterface) *ShowDetailsClient {
	return &ShowDetailsClient{cc: cc}
}

func (c *ShowDetailsClient) LoadShow(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, loadShowMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ShowDetailsClient) GetSnapshot(ctx context.Context, in *wrapperspb.StringValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, getSnapshotMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
