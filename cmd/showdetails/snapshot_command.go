package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/wrapperspb"

	grpcserver "github.com/Belphemur/TVShows/internal/grpc"
	"github.com/Belphemur/TVShows/internal/models"
)

func newSnapshotCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "snapshot <showId>",
		Short: "Print the last page a showproxy server loaded for a show",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.server == "" {
				return errors.New("snapshot requires --server")
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			conn, err := dialServer(opts.server)
			if err != nil {
				return err
			}
			defer conn.Close()

			out := outputSink(cmd, asJSON)
			resp, err := grpcserver.NewShowDetailsClient(conn).GetSnapshot(ctx, wrapperspb.String(args[0]))
			if err != nil {
				return out.Render(ctx, models.Failure[*models.ShowPage](err))
			}
			page, err := grpcserver.PageFromStruct(resp)
			if err != nil {
				return err
			}
			return out.Render(ctx, models.Success(page))
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the page as JSON")

	return cmd
}
