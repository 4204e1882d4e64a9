package cmd

import (
	"fmt"

	"github.com/skein-dev/skein/internal/batchlog"
	"github.com/skein-dev/skein/internal/config"

	"github.com/spf13/cobra"
)

var sourcesAddGroup string

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "Manage stream aliases",
	Long: `List and manage the stream aliases defined in ~/.skein/config.yaml.
An alias lets you write @name instead of a full log stream name.`,
	RunE: runSources,
}

var sourcesAddCmd = &cobra.Command{
	Use:   "add <name> <stream>",
	Short: "Add or update a stream alias",
	Long: `Add a stream alias to the config file, creating the file if needed.

Examples:
  skein sources add ncov job/nextstrain-job/default/abc123
  skein sources add zika job/zika/default/def456 --group /custom/log-group`,
	Args: cobra.ExactArgs(2),
	RunE: runSourcesAdd,
}

var sourcesRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a stream alias",
	Args:  cobra.ExactArgs(1),
	RunE:  runSourcesRemove,
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
	sourcesCmd.AddCommand(sourcesAddCmd)
	sourcesCmd.AddCommand(sourcesRemoveCmd)

	sourcesAddCmd.Flags().StringVar(&sourcesAddGroup, "group", "", "Log group for this alias (default "+batchlog.DefaultLogGroup+")")
}

func runSources(cmd *cobra.Command, args []string) error {
	app := GetApp(cmd)

	cfg, err := app.LoadAliases()
	if err != nil {
		return err
	}

	if len(cfg.Streams) == 0 {
		app.Render.Info("No stream aliases configured.")
		app.Render.Info("Add one with: skein sources add <name> <stream>")
		return nil
	}

	rows := make([][]string, 0, len(cfg.Streams))
	for _, name := range cfg.AliasNames() {
		alias := cfg.Streams[name]
		group := alias.Group
		if group == "" {
			group = "(default)"
		}
		rows = append(rows, []string{"@" + name, alias.Stream, group})
	}
	app.Render.Table([]string{"ALIAS", "STREAM", "GROUP"}, rows)
	return nil
}

func runSourcesAdd(cmd *cobra.Command, args []string) error {
	app := GetApp(cmd)
	name, stream := args[0], args[1]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	cfg.Streams[name] = config.StreamAlias{Stream: stream, Group: sourcesAddGroup}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	app.Render.Success("Saved alias @%s -> %s", name, stream)
	return nil
}

func runSourcesRemove(cmd *cobra.Command, args []string) error {
	app := GetApp(cmd)
	name := args[0]

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if _, ok := cfg.Streams[name]; !ok {
		return fmt.Errorf("stream alias %q not found", name)
	}

	delete(cfg.Streams, name)
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	app.Render.Success("Removed alias @%s", name)
	return nil
}
