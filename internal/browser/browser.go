// Package browser opens a URL in the OS-default web browser.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Opener opens a URL in the user's browser.
type Opener interface {
	Open(url string) error
}

// SystemOpener launches the platform's URL handler. The launch is
// fire-and-forget: Start without Wait, so a slow browser never blocks the
// caller.
type SystemOpener struct{}

func (SystemOpener) Open(url string) error {
	name, args := openCommand(runtime.GOOS, url)
	if name == "" {
		return fmt.Errorf("no known browser opener for %s", runtime.GOOS)
	}
	// #nosec G204 -- command name is a fixed per-OS handler
	return exec.Command(name, args...).Start()
}

// openCommand returns the per-OS command that hands a URL to the default
// browser. Empty name means the platform is unsupported.
func openCommand(goos, url string) (string, []string) {
	switch goos {
	case "linux":
		return "xdg-open", []string{url}
	case "darwin":
		return "open", []string{url}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}
	}
	return "", nil
}
