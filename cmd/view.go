package cmd

import (
	"fmt"
	"net/netip"
	"os/signal"
	"syscall"

	"github.com/skein-dev/skein/internal/browse"
	"github.com/skein-dev/skein/internal/netutil"
	"github.com/skein-dev/skein/internal/view"

	"github.com/spf13/cobra"
)

var (
	viewHost        string
	viewPort        int
	viewOpen        bool
	viewAllowRemote bool
)

var viewCmd = &cobra.Command{
	Use:   "view <directory>",
	Short: "Serve a build directory in your browser",
	Long: `Serve the dataset (JSON) and narrative (Markdown) files of a finished
build over HTTP and open the default one in your browser.

The directory may contain auspice/ and narratives/ subdirectories; when
present those are served instead of the directory itself.

Examples:
  # Serve and open ./my-build
  skein view ./my-build

  # Serve without opening a browser
  skein view ./my-build --open=false

  # Serve on all interfaces for someone else to reach
  skein view ./my-build --allow-remote-access`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringVar(&viewHost, "host", "127.0.0.1", "Host to listen on")
	viewCmd.Flags().IntVar(&viewPort, "port", 4000, "Port to listen on")
	viewCmd.Flags().BoolVar(&viewOpen, "open", true, "Open the default dataset or narrative in a browser")
	viewCmd.Flags().BoolVar(&viewAllowRemote, "allow-remote-access", false, "Listen on all interfaces, not just the local host")
}

func runView(cmd *cobra.Command, args []string) error {
	app := GetApp(cmd)

	host, port := viewHost, viewPort
	if cfg, err := app.LoadAliases(); err == nil {
		if cfg.View.Host != "" && !cmd.Flags().Changed("host") {
			host = cfg.View.Host
		}
		if cfg.View.Port != 0 && !cmd.Flags().Changed("port") {
			port = cfg.View.Port
		}
	}
	if viewAllowRemote {
		host = "0.0.0.0"
	}

	build, err := view.Scan(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	resolved := netutil.Resolve(ctx, host)
	if loopback, err := netutil.IsLoopback(ctx, resolved); err == nil && !loopback {
		app.Render.Warning("Serving on %s, which is reachable from other machines.", resolved)
	}

	base := fmt.Sprintf("http://%s:%d/", displayHost(resolved), port)
	app.Render.URLList(base, build.Paths())
	app.Render.Status("Serving %s on %s (Ctrl+C to stop)...", build.Dir, base)

	if viewOpen {
		browse.Open(base+build.DefaultPath(), app.Render.Warning)
	}

	return view.Serve(ctx, host, port, build)
}

// displayHost brackets IPv6 literals for use inside a URL.
func displayHost(host string) string {
	if addr, err := netip.ParseAddr(host); err == nil && addr.Is6() {
		return "[" + host + "]"
	}
	return host
}
