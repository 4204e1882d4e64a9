package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/skein-dev/skein/internal/batchlog"
	skeinerrors "github.com/skein-dev/skein/internal/errors"
	"github.com/skein-dev/skein/internal/output"
	"github.com/skein-dev/skein/pkg/timeutil"

	"github.com/spf13/cobra"
)

var (
	activityStart  string
	activityEnd    string
	activityPeriod time.Duration
	activityGroup  string
)

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show log volume over time",
	Long: `Show how many log events and bytes the AWS Batch log group received
per time bucket, useful for spotting when a batch of jobs ran.

Examples:
  # Last 24 hours in hourly buckets
  skein activity

  # A specific window in 5 minute buckets
  skein activity --start 2026-03-01T06:00:00Z --end 2026-03-01T12:00:00Z --period 5m`,
	RunE: runActivity,
}

func init() {
	rootCmd.AddCommand(activityCmd)

	activityCmd.Flags().StringVar(&activityStart, "start", "24h", "Start of the window (RFC3339 or relative like 2h, 7d)")
	activityCmd.Flags().StringVar(&activityEnd, "end", "now", "End of the window (RFC3339 or relative)")
	activityCmd.Flags().DurationVar(&activityPeriod, "period", time.Hour, "Bucket size")
	activityCmd.Flags().StringVar(&activityGroup, "group", "", "Log group to query (default "+batchlog.DefaultLogGroup+")")
}

func runActivity(cmd *cobra.Command, args []string) error {
	app := GetApp(cmd)
	ctx := cmd.Context()

	start, err := timeutil.Parse(activityStart)
	if err != nil {
		return skeinerrors.InvalidTimeError(activityStart)
	}
	end, err := timeutil.Parse(activityEnd)
	if err != nil {
		return skeinerrors.InvalidTimeError(activityEnd)
	}
	if !end.After(start) {
		return fmt.Errorf("end time %s is not after start time %s", end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	if activityPeriod < time.Minute {
		return fmt.Errorf("period must be at least 1m, got %s", activityPeriod)
	}

	group := activityGroup
	if group == "" {
		if cfg, err := app.LoadAliases(); err == nil {
			group = cfg.LogGroup
		}
	}
	if group == "" {
		group = batchlog.DefaultLogGroup
	}

	session, err := batchlog.NewSession(app.Config.Profile, app.Config.Region)
	if err != nil {
		return err
	}

	app.Render.Status("Querying activity for %s from %s to %s...",
		group, start.Local().Format("2006-01-02 15:04"), end.Local().Format("2006-01-02 15:04"))

	points, err := batchlog.Activity(ctx, session.Metrics(), group, batchlog.ActivityParams{
		StartTime: start,
		EndTime:   end,
		Period:    activityPeriod,
	})
	if err != nil {
		return err
	}

	if len(points) == 0 {
		app.Render.Info("No log activity in that window.")
		return nil
	}

	formatter := output.NewFormatter(app.Config.OutputFormat, os.Stdout)
	return formatter.Activity(points)
}
