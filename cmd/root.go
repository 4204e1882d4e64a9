package cmd

import (
	"fmt"
	"os"

	"github.com/skein-dev/skein/internal/ui"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	profile      string
	region       string
	outputFormat string
	cfgFile      string
	verbose      bool
	noColor      bool
	quiet        bool

	// render is the global renderer for all output
	render *ui.Renderer
)

var rootCmd = &cobra.Command{
	Use:   "skein",
	Short: "Follow AWS Batch job logs as they happen",
	Long: `skein - a length of thread wound on a reel. Unwind the logs of your
AWS Batch jobs as they run.

skein tails the CloudWatch log streams that AWS Batch writes job output to,
lists streams, charts log volume, and serves finished build output (dataset
JSON and narrative Markdown files) in your browser.

Stream arguments:
  job/default/abc123...   A log stream name in the batch log group
  @alias-name             An alias from the config file

Configuration:
  Create ~/.skein/config.yaml to define stream aliases:

    streams:
      ncov:
        stream: job/nextstrain-job/default/abc123
      zika:
        stream: job/zika-build/default/def456
        group: /custom/log-group

    log_group: /aws/batch/job

    view:
      host: 127.0.0.1
      port: 4000

Examples:
  # Tail a job's log stream
  skein tail job/default/abc123

  # Tail from shortly before now, using an alias
  skein tail @ncov --since 5m

  # List recently active job streams
  skein streams

  # Chart log volume over the last day
  skein activity -s 24h

  # Serve and open a finished build
  skein view ./my-build`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion sets the version string for the root command
func SetVersion(v string) {
	rootCmd.Version = v
}

func init() {
	cobra.OnInitialize(initConfig, initRenderer)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.skein/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&profile, "profile", "p", "", "AWS profile")
	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "Suppress status messages")

	// Bind flags to viper
	_ = viper.BindPFlag("profile", rootCmd.PersistentFlags().Lookup("profile"))
	_ = viper.BindPFlag("region", rootCmd.PersistentFlags().Lookup("region"))
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// initRenderer initializes the global renderer with current settings.
func initRenderer() {
	render = ui.NewRenderer(
		ui.WithNoColor(noColor || os.Getenv("NO_COLOR") != ""),
		ui.WithQuiet(quiet),
		ui.WithVerbose(IsVerbose()),
	)
}

// IsVerbose returns true if verbose mode is enabled
func IsVerbose() bool {
	return verbose || viper.GetBool("verbose")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home + "/.skein")
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	// Environment variables
	viper.SetEnvPrefix("SKEIN")
	viper.AutomaticEnv()

	// Defaults
	viper.SetDefault("output", "text")
	viper.SetDefault("log_group", "")

	// Read config file (ignore if not found, warn on other errors)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Warning: error reading config file: %v\n", err)
		}
	}
}

// getProfile returns the AWS profile from flags or config.
func getProfile() string {
	if profile != "" {
		return profile
	}
	return viper.GetString("profile")
}

// getRegion returns the AWS region from flags or config.
func getRegion() string {
	if region != "" {
		return region
	}
	return viper.GetString("region")
}

// getOutputFormat returns the output format from flags or config.
func getOutputFormat() string {
	if outputFormat != "" {
		return outputFormat
	}
	return viper.GetString("output")
}
