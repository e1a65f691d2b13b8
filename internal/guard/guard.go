// Package guard implements the single-instance bootstrap: check the port,
// reuse an existing backend when one is listening, launch one when not.
package guard

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/MarkwRowe/MediaDownloaderv1/internal/browser"
	"github.com/MarkwRowe/MediaDownloaderv1/internal/env"
	"github.com/MarkwRowe/MediaDownloaderv1/internal/launcher"
	"github.com/MarkwRowe/MediaDownloaderv1/internal/netcheck"
)

// Endpoint is where the backend should be reachable. Built once at launch,
// immutable after.
type Endpoint struct {
	Host string
	Port int
}

// URL returns the browser-facing address. Wildcard bind hosts map to
// loopback since a browser cannot dial 0.0.0.0.
func (e Endpoint) URL() string {
	host := e.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d", host, e.Port)
}

// Guard ties the pieces together. All collaborators are interfaces so the
// launch decision is testable without browsers or real processes.
type Guard struct {
	Endpoint    Endpoint
	Runtime     string
	Entrypoint  string
	ProjectRoot string
	FFmpegDir   string

	Prober  netcheck.Prober
	Browser browser.Opener
	Spawner launcher.Spawner

	// OpenBrowser disables the browser step when false (--no-browser).
	OpenBrowser bool

	// Out receives user-facing confirmation messages. Defaults to stdout.
	Out    io.Writer
	Logger *slog.Logger
}

// Run performs the bootstrap and returns the process exit status:
// 0 when an existing backend was reused or a launched one exited cleanly,
// 1 on pre-flight failure, otherwise the backend's own exit status.
//
// The error (when non-nil) carries the diagnostic for the user; the exit
// status is authoritative either way.
func (g *Guard) Run(ctx context.Context) (int, error) {
	out := g.Out
	if out == nil {
		out = os.Stdout
	}
	log := g.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if g.Endpoint.Port <= 0 || g.Endpoint.Port > 65535 {
		return 1, fmt.Errorf("port must be between 1 and 65535, got %d", g.Endpoint.Port)
	}

	// Pre-flight: both files must exist before anything is probed or spawned.
	if err := checkFile("runtime", g.Runtime,
		"install the backend's python environment or set runtime in the config"); err != nil {
		return 1, err
	}
	if err := checkFile("entrypoint", g.Entrypoint,
		"run medialaunch from the project root or set entrypoint in the config"); err != nil {
		return 1, err
	}

	url := g.Endpoint.URL()

	// A failed check reads as "not running": better to risk a duplicate
	// launch than to refuse to start the app.
	lst, err := g.Prober.Listening(ctx, g.Endpoint.Host, g.Endpoint.Port)
	if err != nil {
		log.Warn("listener check failed, assuming not running", "error", err)
		lst = nil
	}

	if lst != nil {
		if lst.Process != "" {
			log.Debug("backend already listening", "pid", lst.PID, "process", lst.Process)
		}
		g.openBrowser(url, log)
		fmt.Fprintf(out, "Backend already running at %s\n", url)
		return 0, nil
	}

	// Speculative open: the page loads once the backend comes up, and the
	// launch must not wait on the browser.
	g.openBrowser(url, log)
	fmt.Fprintf(out, "Starting backend at %s\n", url)

	spec := launcher.Spec{
		Runtime:    g.Runtime,
		Entrypoint: g.Entrypoint,
		Dir:        g.ProjectRoot,
		Env: env.BuildBackendEnv(os.Environ(), env.Backend{
			Host:      g.Endpoint.Host,
			Port:      g.Endpoint.Port,
			FFmpegDir: g.FFmpegDir,
		}),
	}

	log.Debug("spawning backend", "runtime", spec.Runtime, "entrypoint", spec.Entrypoint, "dir", spec.Dir)

	if err := g.Spawner.Spawn(ctx, spec); err != nil {
		if code, ok := launcher.ExitStatus(err); ok {
			// The backend ran; its exit status is ours.
			return code, nil
		}
		return 1, &LaunchError{Err: err}
	}

	return 0, nil
}

func (g *Guard) openBrowser(url string, log *slog.Logger) {
	if !g.OpenBrowser || g.Browser == nil {
		return
	}
	if err := g.Browser.Open(url); err != nil {
		// Never fatal: the user can open the URL themselves.
		log.Warn("could not open browser", "url", url, "error", err)
	}
}

func checkFile(role, path, hint string) error {
	if path == "" {
		return &MissingDependencyError{Role: role, Path: "(not set)", Hint: hint}
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return &MissingDependencyError{Role: role, Path: path, Hint: hint}
	}
	return nil
}
