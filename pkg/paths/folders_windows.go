//go:build windows

package paths

import (
	"os"

	"golang.org/x/sys/windows"
)

// applicationDataDir is the roaming AppData folder. xdg.ConfigHome points at
// the local one on Windows.
func applicationDataDir() string {
	if dir, err := windows.KnownFolderPath(windows.FOLDERID_RoamingAppData, 0); err == nil && dir != "" {
		return dir
	}
	return os.Getenv("APPDATA")
}
