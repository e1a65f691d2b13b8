package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags clears the package-level flag state between tests.
func resetFlags(t *testing.T) {
	t.Helper()
	flagConfig, flagHost, flagRuntime, flagEntrypoint = "", "", "", ""
	flagPort = 0
	flagNoBrowser, flagVerbose = false, false
	t.Cleanup(func() {
		flagConfig, flagHost, flagRuntime, flagEntrypoint = "", "", "", ""
		flagPort = 0
		flagNoBrowser, flagVerbose = false, false
	})
}

// isolate keeps discovery away from any real config on the machine.
func isolate(t *testing.T) {
	t.Helper()
	resetFlags(t)
	t.Setenv("HOME", t.TempDir())

	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestResolveConfig_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := resolveConfig(nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Host)
	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "app.py", cfg.Entrypoint)
}

func TestResolveConfig_PositionalPort(t *testing.T) {
	isolate(t)

	cfg, err := resolveConfig([]string{"8080"})
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
}

func TestResolveConfig_PositionalPortInvalid(t *testing.T) {
	isolate(t)

	_, err := resolveConfig([]string{"eighty-eighty"})
	require.Error(t, err)
}

func TestResolveConfig_PositionalPortOutOfRange(t *testing.T) {
	isolate(t)

	_, err := resolveConfig([]string{"70000"})
	require.Error(t, err)
}

func TestResolveConfig_PositionalWinsOverFlagAndEnv(t *testing.T) {
	isolate(t)
	t.Setenv("PORT", "6000")
	flagPort = 7000

	cfg, err := resolveConfig([]string{"8000"})
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Port)
}

func TestResolveConfig_FlagWinsOverEnv(t *testing.T) {
	isolate(t)
	t.Setenv("HOST", "10.0.0.1")
	flagHost = "0.0.0.0"

	cfg, err := resolveConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Host)
}

func TestResolveConfig_ExplicitConfigFile(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\nhost: 0.0.0.0\n"), 0600))
	flagConfig = path

	cfg, err := resolveConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
}

func TestResolveConfig_EnvWinsOverFile(t *testing.T) {
	isolate(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\n"), 0600))
	flagConfig = path
	t.Setenv("PORT", "9001")

	cfg, err := resolveConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, 9001, cfg.Port)
}

func TestBuildPlan_ProjectRootFromEntrypoint(t *testing.T) {
	isolate(t)

	project := t.TempDir()
	entry := filepath.Join(project, "app.py")
	require.NoError(t, os.WriteFile(entry, []byte("# backend\n"), 0644))
	flagEntrypoint = entry

	plan, err := buildPlan(nil)
	require.NoError(t, err)

	assert.Equal(t, entry, plan.entrypoint)
	assert.Equal(t, project, plan.projectRoot)
}

func TestBuildPlan_VenvRuntimeDiscovered(t *testing.T) {
	isolate(t)

	project := t.TempDir()
	entry := filepath.Join(project, "app.py")
	require.NoError(t, os.WriteFile(entry, []byte("# backend\n"), 0644))
	venvBin := filepath.Join(project, ".venv", "bin")
	require.NoError(t, os.MkdirAll(venvBin, 0755))
	python := filepath.Join(venvBin, "python")
	require.NoError(t, os.WriteFile(python, []byte("#!/bin/sh\n"), 0755))
	flagEntrypoint = entry

	plan, err := buildPlan(nil)
	require.NoError(t, err)
	assert.Equal(t, python, plan.runtime)
}

func TestBuildPlan_ExplicitRuntimeKept(t *testing.T) {
	isolate(t)
	flagRuntime = "/usr/bin/python3"

	plan, err := buildPlan(nil)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/python3", plan.runtime)
}
