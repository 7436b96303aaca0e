//go:build !windows

package paths

import "github.com/adrg/xdg"

func applicationDataDir() string {
	return xdg.ConfigHome
}
