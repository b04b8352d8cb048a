package main

import (
	"context"
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/Belphemur/TVShows/internal/models"
	"github.com/Belphemur/TVShows/internal/sink"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// jsonSink prints completed pages as JSON. Failures print nothing.
type jsonSink struct {
	cmd *cobra.Command
}

func (s jsonSink) Render(_ context.Context, result models.FetchResult[*models.ShowPage]) error {
	page, err := result.Unwrap()
	if err != nil {
		return nil
	}
	return writeJSON(s.cmd, page)
}

// failOnError renders through the wrapped sink and then reports a failed load
// as the command's error, so the process exits non-zero.
type failOnError struct {
	sink.Sink
}

func (f failOnError) Render(ctx context.Context, result models.FetchResult[*models.ShowPage]) error {
	if err := f.Sink.Render(ctx, result); err != nil {
		return err
	}
	return result.Err
}

func outputSink(cmd *cobra.Command, asJSON bool) sink.Sink {
	if asJSON {
		return failOnError{jsonSink{cmd: cmd}}
	}
	return failOnError{sink.NewTableSink(cmd.OutOrStdout())}
}
