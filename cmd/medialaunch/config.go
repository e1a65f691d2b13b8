package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/MarkwRowe/MediaDownloaderv1/internal/config"
	"github.com/MarkwRowe/MediaDownloaderv1/internal/launcher"
)

// launchPlan is the fully resolved input to the guard: absolute paths plus
// the effective endpoint.
type launchPlan struct {
	cfg         *config.Config
	runtime     string
	entrypoint  string
	projectRoot string
}

// resolveConfig builds the effective config from, in rising precedence:
// defaults, discovered or explicit config file, environment, flags, and the
// positional port argument.
func resolveConfig(portArgs []string) (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DiscoverConfig()
	}

	var cfg *config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if flagHost != "" {
		cfg.Host = flagHost
	}
	if flagPort != 0 {
		cfg.Port = flagPort
	}
	if len(portArgs) == 1 {
		port, err := strconv.Atoi(portArgs[0])
		if err != nil {
			return nil, fmt.Errorf("invalid port argument: %q", portArgs[0])
		}
		cfg.Port = port
	}
	if flagRuntime != "" {
		cfg.Runtime = config.ExpandPath(flagRuntime)
	}
	if flagEntrypoint != "" {
		cfg.Entrypoint = config.ExpandPath(flagEntrypoint)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildPlan(portArgs []string) (*launchPlan, error) {
	cfg, err := resolveConfig(portArgs)
	if err != nil {
		return nil, err
	}

	entrypoint, err := filepath.Abs(cfg.Entrypoint)
	if err != nil {
		return nil, fmt.Errorf("resolve entrypoint: %w", err)
	}

	projectRoot := cfg.ProjectRoot
	if projectRoot == "" {
		projectRoot = filepath.Dir(entrypoint)
	}

	runtime := cfg.Runtime
	if runtime == "" {
		// Leave empty on failure: the guard's pre-flight check reports it.
		if found, ferr := launcher.FindRuntime(projectRoot); ferr == nil {
			runtime = found
		}
	}

	return &launchPlan{
		cfg:         cfg,
		runtime:     runtime,
		entrypoint:  entrypoint,
		projectRoot: projectRoot,
	}, nil
}
