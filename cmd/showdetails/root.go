package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Belphemur/TVShows/internal/config"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	apiURL string
	server string
}

// appConfig returns the loaded configuration with flag overrides applied.
func (o *rootOptions) appConfig() *config.Config {
	cfg := *config.GetConfig()
	if o.apiURL != "" {
		cfg.APIBaseURL = strings.TrimRight(o.apiURL, "/")
	}
	return &cfg
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "showdetails",
		Short:         "Show details and episode list of a TV show",
		SilenceUsage:  true,
		SilenceErrors: true,
		// stdout carries only command output; logs go to stderr.
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.SetLogOutput(cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Shows API base URL (overrides api_base_url)")
	rootCmd.PersistentFlags().StringVar(&opts.server, "server", "", "Address of a showproxy gRPC server to load through")

	rootCmd.AddCommand(newLoadCommand(opts))
	rootCmd.AddCommand(newSnapshotCommand(opts))

	return rootCmd
}
