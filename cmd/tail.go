package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skein-dev/skein/internal/batchlog"
	"github.com/skein-dev/skein/internal/output"
	"github.com/skein-dev/skein/pkg/timeutil"

	"github.com/spf13/cobra"
)

var (
	tailInterval time.Duration
	tailSince    string
	tailGroup    string
)

var tailCmd = &cobra.Command{
	Use:   "tail <stream|@alias>",
	Short: "Tail an AWS Batch job log stream",
	Long: `Follow a job's log stream in real time, similar to 'tail -f'.

Each log entry is delivered exactly once, in the order it is first seen,
even though successive polls of CloudWatch Logs overlap at the cursor
timestamp.

Examples:
  # Tail a job's log stream
  skein tail job/default/abc123

  # Tail a configured alias
  skein tail @ncov

  # Start from 10 minutes ago instead of the stream's beginning
  skein tail @ncov --since 10m

  # Emit one JSON object per entry, for piping
  skein tail @ncov -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runTail,
}

func init() {
	rootCmd.AddCommand(tailCmd)

	tailCmd.Flags().DurationVar(&tailInterval, "interval", batchlog.DefaultPollInterval, "Polling interval")
	tailCmd.Flags().StringVar(&tailSince, "since", "", "Only entries at or after this time (30m, 2h, RFC3339); default is the stream's beginning")
	tailCmd.Flags().StringVar(&tailGroup, "group", "", "Log group to read from (default "+batchlog.DefaultLogGroup+")")
}

func runTail(cmd *cobra.Command, args []string) error {
	app := GetApp(cmd)

	group, stream, err := app.ResolveStream(args[0], tailGroup)
	if err != nil {
		return err
	}

	session, err := batchlog.NewSession(app.Config.Profile, app.Config.Region)
	if err != nil {
		return err
	}
	src := batchlog.NewSource(session.Logs(), group)

	formatter := output.NewFormatter(app.Config.OutputFormat, os.Stdout)
	consumer := func(e batchlog.Entry) error {
		return formatter.Entry(stream, e)
	}

	opts := []batchlog.WatcherOption{
		batchlog.WithInterval(tailInterval),
		batchlog.WithLogger(app.Logger()),
	}
	if tailSince != "" {
		since, err := timeutil.Parse(tailSince)
		if err != nil {
			return fmt.Errorf("invalid --since: %w", err)
		}
		opts = append(opts, batchlog.WithStartTime(since.UnixMilli()))
	}

	watcher := batchlog.NewWatcher(src, stream, consumer, opts...)

	// Handle Ctrl+C gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		app.Render.Status("Stopping tail...")
		watcher.Stop()
	}()

	app.Render.Status("Watching %s/%s (Ctrl+C to stop)...", src.LogGroup(), stream)

	if err := watcher.Start(); err != nil {
		return err
	}
	watcher.Join()
	return nil
}
