package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// venvCandidates are the conventional interpreter locations inside a project,
// checked before falling back to PATH. Windows virtualenvs use Scripts/.
var venvCandidates = []string{
	filepath.Join(".venv", "bin", "python"),
	filepath.Join(".venv", "bin", "python3"),
	filepath.Join("venv", "bin", "python"),
	filepath.Join("venv", "bin", "python3"),
	filepath.Join(".venv", "Scripts", "python.exe"),
	filepath.Join("venv", "Scripts", "python.exe"),
}

// FindRuntime locates a python interpreter for the backend. Project-local
// virtualenvs win over whatever is on PATH, matching how the backend is
// normally installed.
func FindRuntime(projectRoot string) (string, error) {
	for _, rel := range venvCandidates {
		candidate := filepath.Join(projectRoot, rel)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no python interpreter found in %s or on PATH", projectRoot)
}
