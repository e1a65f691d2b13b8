package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MarkwRowe/MediaDownloaderv1/internal/config"
)

var exampleConfig = `# medialaunch configuration
# Copy to ~/.medialaunch/config.yaml (or <project>/.medialaunch/config.yaml)
# and customize. Everything here is optional; flags and the HOST/PORT
# environment variables override these values.

# Where the backend listens and the browser is pointed.
#host: 127.0.0.1
#port: 5000

# Interpreter used to start the backend. Defaults to the project virtualenv
# (.venv/bin/python), then python3 on PATH. Relative paths resolve against
# this file's directory.
#runtime: .venv/bin/python

# Backend entry script.
#entrypoint: app.py

# Working directory for the backend. Defaults to the entrypoint's directory.
#project_root: .

# Directory containing the ffmpeg binary, forwarded as FFMPEG_LOCATION.
#ffmpeg_dir: /opt/ffmpeg/bin

#browser:
#  disabled: true
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a medialaunch config file with commented defaults",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

var initConfigDir string

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initConfigDir, "config-dir", "~/"+config.ConfigDirName, "Configuration directory to create")
}

func runInit(cmd *cobra.Command, args []string) error {
	configDir := config.ExpandPath(initConfigDir)

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, config.ConfigFileName)
	if err := writeFileIfNotExists(configPath, exampleConfig); err != nil {
		return err
	}

	fmt.Printf("✓ Created configuration directory: %s\n", configDir)
	fmt.Printf("✓ Created config file: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("1. Uncomment and adjust the settings you need")
	fmt.Println("2. Run: medialaunch")

	return nil
}

func writeFileIfNotExists(path string, content string) error {
	if _, err := os.Stat(path); err == nil {
		fmt.Printf("⊘ Skipped (already exists): %s\n", path)
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
