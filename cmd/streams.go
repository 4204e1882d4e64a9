package cmd

import (
	"os"

	"github.com/skein-dev/skein/internal/batchlog"
	"github.com/skein-dev/skein/internal/output"

	"github.com/spf13/cobra"
)

var (
	streamsLimit int
	streamsGroup string
)

var streamsCmd = &cobra.Command{
	Use:   "streams [prefix]",
	Short: "List job log streams",
	Long: `List log streams in the AWS Batch log group, most recently active
first, optionally filtered by name prefix.

Examples:
  # The 20 most recently active job streams
  skein streams

  # Streams for a particular job queue prefix
  skein streams job/nextstrain-job

  # More results, as JSON
  skein streams -l 100 -o json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStreams,
}

func init() {
	rootCmd.AddCommand(streamsCmd)

	streamsCmd.Flags().IntVarP(&streamsLimit, "limit", "l", 20, "Max streams to return")
	streamsCmd.Flags().StringVar(&streamsGroup, "group", "", "Log group to list (default "+batchlog.DefaultLogGroup+")")
}

func runStreams(cmd *cobra.Command, args []string) error {
	app := GetApp(cmd)
	ctx := cmd.Context()

	prefix := ""
	if len(args) == 1 {
		prefix = args[0]
	}

	group := streamsGroup
	if group == "" {
		if cfg, err := app.LoadAliases(); err == nil {
			group = cfg.LogGroup
		}
	}

	session, err := batchlog.NewSession(app.Config.Profile, app.Config.Region)
	if err != nil {
		return err
	}
	src := batchlog.NewSource(session.Logs(), group)

	if account, err := session.AccountID(ctx); err == nil {
		app.Render.Status("Listing streams in %s (account %s, %s)...", src.LogGroup(), account, session.Region())
	} else {
		app.Render.Debug("Could not determine AWS account ID: %v", err)
		app.Render.Status("Listing streams in %s...", src.LogGroup())
	}

	streams, err := src.ListStreams(ctx, prefix, streamsLimit)
	if err != nil {
		return err
	}

	formatter := output.NewFormatter(app.Config.OutputFormat, os.Stdout)
	return formatter.Streams(streams)
}
