// Package env builds the environment handed to the spawned backend.
package env

import (
	"strconv"
	"strings"
)

// Backend describes the variables injected into the backend process.
type Backend struct {
	Host      string
	Port      int
	FFmpegDir string
}

// BuildBackendEnv creates an environment for the backend process with:
//   - Stale endpoint variables filtered out (we set our own)
//   - HOST/PORT set to the endpoint the guard checked, so the backend binds
//     exactly where the browser was pointed
//   - FFMPEG_LOCATION forwarded when the launcher resolved one
func BuildBackendEnv(parentEnv []string, b Backend) []string {
	env := make([]string, 0, len(parentEnv)+3)

	for _, e := range parentEnv {
		key := strings.SplitN(e, "=", 2)[0]
		if overriddenKey(key, b) {
			continue
		}
		env = append(env, e)
	}

	env = append(env,
		"HOST="+b.Host,
		"PORT="+strconv.Itoa(b.Port),
	)
	if b.FFmpegDir != "" {
		env = append(env, "FFMPEG_LOCATION="+b.FFmpegDir)
	}

	return env
}

func overriddenKey(key string, b Backend) bool {
	switch strings.ToUpper(key) {
	case "HOST", "PORT":
		return true
	case "FFMPEG_LOCATION":
		return b.FFmpegDir != ""
	}
	return false
}
