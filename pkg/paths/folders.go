package paths

import (
	"sort"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotlink/pkg/errors"
)

// FolderResolver turns a special folder identifier into an absolute directory.
type FolderResolver interface {
	Resolve(id string) (string, error)
}

// XDGFolders resolves special folders from the platform's standard
// directories. Identifiers are case-insensitive; the Windows names
// (ApplicationData, MyDocuments, ...) are accepted alongside the XDG ones.
type XDGFolders struct{}

// NewXDGFolders returns the default resolver.
func NewXDGFolders() XDGFolders {
	return XDGFolders{}
}

// Resolve implements FolderResolver. The table is read at call time so it
// follows xdg.Reload.
func (XDGFolders) Resolve(id string) (string, error) {
	return lookupFolder(xdgFolderTable(), id)
}

func xdgFolderTable() map[string]string {
	home := xdg.Home
	if home == "" {
		home = HomeDir()
	}
	return map[string]string{
		"userprofile":          home,
		"home":                 home,
		"applicationdata":      applicationDataDir(),
		"xdgconfighome":        xdg.ConfigHome,
		"localapplicationdata": xdg.DataHome,
		"xdgdatahome":          xdg.DataHome,
		"xdgcachehome":         xdg.CacheHome,
		"xdgstatehome":         xdg.StateHome,
		"xdgbinhome":           xdg.BinHome,
		"desktop":              xdg.UserDirs.Desktop,
		"desktopdirectory":     xdg.UserDirs.Desktop,
		"mydocuments":          xdg.UserDirs.Documents,
		"personal":             xdg.UserDirs.Documents,
		"mymusic":              xdg.UserDirs.Music,
		"mypictures":           xdg.UserDirs.Pictures,
		"myvideos":             xdg.UserDirs.Videos,
		"templates":            xdg.UserDirs.Templates,
		"downloads":            xdg.UserDirs.Download,
	}
}

// MapFolders resolves special folders from a fixed table.
type MapFolders map[string]string

// Resolve implements FolderResolver.
func (m MapFolders) Resolve(id string) (string, error) {
	table := make(map[string]string, len(m))
	for k, v := range m {
		table[normalizeFolderID(k)] = v
	}
	return lookupFolder(table, id)
}

func lookupFolder(table map[string]string, id string) (string, error) {
	dir, ok := table[normalizeFolderID(id)]
	if !ok || dir == "" {
		return "", errors.Newf(errors.ErrConfigValid, "unknown special folder %q", id).
			WithDetail("folder", id).
			WithDetail("known", knownFolders(table))
	}
	return dir, nil
}

func normalizeFolderID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

func knownFolders(table map[string]string) []string {
	known := make([]string, 0, len(table))
	for k := range table {
		known = append(known, k)
	}
	sort.Strings(known)
	return known
}
