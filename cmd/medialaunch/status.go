package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MarkwRowe/MediaDownloaderv1/internal/guard"
	"github.com/MarkwRowe/MediaDownloaderv1/internal/netcheck"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report whether the backend is listening",
	Long: `Check the configured endpoint for a listening backend.

Exit status is 0 when something is listening, 1 when nothing is.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(nil)
	if err != nil {
		return err
	}

	ep := guard.Endpoint{Host: cfg.Host, Port: cfg.Port}

	prober := netcheck.New()
	lst, err := prober.Listening(cmd.Context(), cfg.Host, cfg.Port)
	if err != nil {
		return fmt.Errorf("check listener on port %d: %w", cfg.Port, err)
	}

	if lst == nil {
		color.Red("✗ nothing listening on port %d", cfg.Port)
		os.Exit(1)
	}

	switch {
	case lst.Process != "":
		color.Green("✓ backend running at %s (pid %d, %s)", ep.URL(), lst.PID, lst.Process)
	case lst.PID > 0:
		color.Green("✓ backend running at %s (pid %d)", ep.URL(), lst.PID)
	default:
		color.Green("✓ backend running at %s", ep.URL())
	}
	return nil
}
