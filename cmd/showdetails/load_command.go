package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Belphemur/TVShows/internal/client"
	grpcserver "github.com/Belphemur/TVShows/internal/grpc"
	"github.com/Belphemur/TVShows/internal/models"
	"github.com/Belphemur/TVShows/internal/services"
	"github.com/Belphemur/TVShows/internal/sink"
)

func newLoadCommand(opts *rootOptions) *cobra.Command {
	var token string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "load <showId>",
		Short: "Load a show and its episodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.RequestContext{ShowID: args[0], Token: token}
			out := outputSink(cmd, asJSON)

			if opts.server != "" {
				return loadRemote(cmd.Context(), opts.server, req, out)
			}
			return loadLocal(cmd.Context(), opts, req, out)
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "Access token sent as the Authorization header")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the page as JSON")

	return cmd
}

func loadLocal(ctx context.Context, opts *rootOptions, req models.RequestContext, out sink.Sink) error {
	if ctx == nil {
		ctx = context.Background()
	}
	c := client.NewClient(opts.appConfig())
	defer c.Close()

	loader := services.NewShowLoader(c)
	sub := loader.Start(ctx, req)
	defer sub.Cancel()

	return sink.Deliver(ctx, sub, out)
}

func loadRemote(ctx context.Context, address string, req models.RequestContext, out sink.Sink) error {
	if ctx == nil {
		ctx = context.Background()
	}
	conn, err := dialServer(address)
	if err != nil {
		return err
	}
	defer conn.Close()

	if req.Token != "" {
		ctx = metadata.AppendToOutgoingContext(ctx, "authorization", req.Token)
	}

	resp, err := grpcserver.NewShowDetailsClient(conn).LoadShow(ctx, wrapperspb.String(req.ShowID))
	if err != nil {
		return out.Render(ctx, models.Failure[*models.ShowPage](err))
	}

	page, err := grpcserver.PageFromStruct(resp)
	if err != nil {
		return err
	}
	page.Request = req
	return out.Render(ctx, models.Success(page))
}

func dialServer(address string) (*grpc.ClientConn, error) {
	conn, err := grpc.NewClient(address, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", address, err)
	}
	return conn, nil
}
