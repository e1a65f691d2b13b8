package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/MarkwRowe/MediaDownloaderv1/internal/netcheck"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that everything the launcher needs is in place",
	Long: `Verify the backend runtime, entry script, ffmpeg install, and port state.

ffmpeg is only needed for format conversion, so a missing ffmpeg is a
warning, not a failure. Exit status is 1 when a required dependency is
missing.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	plan, err := buildPlan(nil)
	if err != nil {
		return err
	}

	healthy := true

	if fileUsable(plan.runtime) {
		color.Green("✓ runtime: %s", plan.runtime)
	} else {
		healthy = false
		if plan.runtime == "" {
			color.Red("✗ runtime: no python interpreter found (install the backend's virtualenv)")
		} else {
			color.Red("✗ runtime: %s does not exist", plan.runtime)
		}
	}

	if fileUsable(plan.entrypoint) {
		color.Green("✓ entrypoint: %s", plan.entrypoint)
	} else {
		healthy = false
		color.Red("✗ entrypoint: %s does not exist", plan.entrypoint)
	}

	if path, ok := findFFmpeg(plan.cfg.FFmpegDir); ok {
		color.Green("✓ ffmpeg: %s", path)
	} else {
		color.Yellow("! ffmpeg: not found (conversions will fail; set FFMPEG_LOCATION or install ffmpeg)")
	}

	lst, err := netcheck.New().Listening(cmd.Context(), plan.cfg.Host, plan.cfg.Port)
	switch {
	case err != nil:
		color.Yellow("! port %d: state unknown (%v)", plan.cfg.Port, err)
	case lst == nil:
		color.Green("✓ port %d: free", plan.cfg.Port)
	case lst.Process != "":
		color.Yellow("! port %d: in use by %s (pid %d)", plan.cfg.Port, lst.Process, lst.PID)
	default:
		color.Yellow("! port %d: in use", plan.cfg.Port)
	}

	if !healthy {
		os.Exit(1)
	}
	return nil
}

// findFFmpeg mirrors the backend's own lookup: an explicit directory wins,
// then PATH.
func findFFmpeg(dir string) (string, bool) {
	if dir != "" {
		for _, name := range []string{"ffmpeg", "ffmpeg.exe"} {
			candidate := filepath.Join(dir, name)
			if fileUsable(candidate) {
				return candidate, true
			}
		}
		return "", false
	}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return path, true
	}
	return "", false
}

func fileUsable(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
