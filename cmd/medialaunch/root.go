package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MarkwRowe/MediaDownloaderv1/internal/browser"
	"github.com/MarkwRowe/MediaDownloaderv1/internal/guard"
	"github.com/MarkwRowe/MediaDownloaderv1/internal/launcher"
	"github.com/MarkwRowe/MediaDownloaderv1/internal/netcheck"
)

var (
	flagConfig     string
	flagHost       string
	flagPort       int
	flagRuntime    string
	flagEntrypoint string
	flagNoBrowser  bool
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "medialaunch [port]",
	Short: "Single-instance launcher for the media toolkit backend",
	Long: `medialaunch makes sure exactly one backend instance is running.

If something is already listening on the target port, the default browser is
opened at the app and nothing new is started. Otherwise the browser is opened
and the backend is launched in the foreground; medialaunch exits when the
backend does, with the backend's exit status.

Example:
  medialaunch              # default port 5000
  medialaunch 8080
  medialaunch --no-browser --verbose`,
	Args:          cobra.MaximumNArgs(1),
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          runRoot,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "medialaunch:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Configuration file path (default: auto-discover .medialaunch/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagHost, "host", "", "Host the backend binds to (default 127.0.0.1)")
	rootCmd.PersistentFlags().IntVar(&flagPort, "port", 0, "Port the backend listens on (default 5000)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Show launcher diagnostics")

	rootCmd.Flags().StringVar(&flagRuntime, "runtime", "", "Interpreter binary for the backend (default: project virtualenv, then PATH)")
	rootCmd.Flags().StringVar(&flagEntrypoint, "entrypoint", "", "Backend entry script (default app.py)")
	rootCmd.Flags().BoolVar(&flagNoBrowser, "no-browser", false, "Do not open the browser")
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Forward interrupts to the supervised backend via context cancel.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		cancel()
	}()

	plan, err := buildPlan(args)
	if err != nil {
		return err
	}

	g := &guard.Guard{
		Endpoint:    guard.Endpoint{Host: plan.cfg.Host, Port: plan.cfg.Port},
		Runtime:     plan.runtime,
		Entrypoint:  plan.entrypoint,
		ProjectRoot: plan.projectRoot,
		FFmpegDir:   plan.cfg.FFmpegDir,
		Prober:      netcheck.New(),
		Browser:     browser.SystemOpener{},
		Spawner:     launcher.ExecSpawner{},
		OpenBrowser: !flagNoBrowser && plan.cfg.BrowserEnabled(),
		Logger:      newLogger(),
	}

	code, err := g.Run(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "medialaunch:", err)
	}
	if code != 0 {
		os.Exit(code)
	}
	return nil
}

func newLogger() *slog.Logger {
	if flagVerbose {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
