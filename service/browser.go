package service

import (
	"fmt"
	"os/exec"
	"runtime"
)

// linuxOpeners are tried in order
var linuxOpeners = []string{"xdg-open", "gnome-open", "kde-open"}

// OpenBrowser opens the specified URL in the default browser without
// waiting for it to exit
func OpenBrowser(url string) error {
	name, args, err := browserCommand(url)
	if err != nil {
		return err
	}
	if err := exec.Command(name, args...).Start(); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}

func browserCommand(url string) (string, []string, error) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{url}, nil
	case "windows":
		return "cmd", []string{"/c", "start", url}, nil
	case "linux":
		for _, opener := range linuxOpeners {
			if _, err := exec.LookPath(opener); err == nil {
				return opener, []string{url}, nil
			}
		}
		return "", nil, fmt.Errorf("no suitable browser opener found for Linux")
	}
	return "", nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
}
