// Package cli wires the lazyverdi command line.
package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/lazyverdi/lazyverdi/internal/config"
	"github.com/lazyverdi/lazyverdi/internal/dash"
	"github.com/lazyverdi/lazyverdi/internal/tui/theme"
	"github.com/lazyverdi/lazyverdi/internal/verdi"
)

var (
	cfgFile   string
	profile   string
	themeName string

	// Build information - set via ldflags
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "lazyverdi",
	Short: "Keyboard-driven terminal dashboard for AiiDA's verdi CLI",
	Long: `lazyverdi wraps the verdi command line in a live terminal dashboard.

Seven panels show computers, processes, groups, codes, profiles, daemon
status and command results side by side, refreshed in the background.
Navigate with vim keys, select processes with space/v/ctrl+a and kill
them in one batch with K.

Examples:
  lazyverdi                  # Open the dashboard
  lazyverdi -p myprofile     # Use a specific AiiDA profile
  lazyverdi config path      # Print the config file location`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDashboard(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default "+config.DefaultPath()+")")
	rootCmd.Flags().StringVarP(&profile, "profile", "p", "", "verdi profile to use")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "color theme (mocha, latte, plain or a custom theme name)")

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func runDashboard(w io.Writer) error {
	if !IsInteractive(w) {
		return fmt.Errorf("lazyverdi needs an interactive terminal; pipe-friendly output is what verdi itself is for")
	}

	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if profile != "" {
		cfg.VerdiProfile = profile
	}
	if themeName != "" {
		cfg.Theme = themeName
	}
	theme.Configure(cfg.Theme)

	client := verdi.NewClient(cfg.VerdiPath, cfg.VerdiProfile)
	if !client.IsInstalled() {
		return fmt.Errorf("%q not found in PATH; install AiiDA or set verdi_path in %s", cfg.VerdiPath, path)
	}

	// Live-reload config edits into the running dashboard. A broken
	// watcher is not fatal; the dashboard just loses hot reload.
	reloads := make(chan *config.Config, 1)
	stop, err := config.Watch(path, func(c *config.Config) {
		select {
		case reloads <- c:
		default:
		}
	})
	if err == nil {
		defer stop()
	}

	width, height := terminalSize(w)
	model := dash.New(dash.Options{
		Config:        cfg,
		Client:        client,
		ConfigReloads: reloads,
		InitialWidth:  width,
		InitialHeight: height,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}

// IsInteractive returns true when the writer is a terminal. The dashboard
// relies on raw keyboard input; in tests or piped execution it must not run.
func IsInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// terminalSize probes the terminal so the first frame renders before the
// resize message arrives. Zeroes mean unknown.
func terminalSize(w io.Writer) (int, int) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, 0
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0, 0
	}
	return width, height
}

// goVersion returns the current Go runtime version.
func goVersion() string {
	return runtime.Version()
}

// goPlatform returns the OS/ARCH string.
func goPlatform() string {
	return fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
}
