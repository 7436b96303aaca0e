package inventory

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/logging"
)

// PathProvider treats every executable on the search path as an installed
// application named after the executable.
type PathProvider struct {
	// Dirs defaults to the entries of $PATH.
	Dirs []string
}

// NewPathProvider creates a provider scanning $PATH.
func NewPathProvider() *PathProvider {
	return &PathProvider{}
}

func (p *PathProvider) Name() string { return "path" }

// Query lists executables; the first directory holding a name wins, as in a
// shell lookup. Unreadable directories are skipped.
func (p *PathProvider) Query() ([]Record, error) {
	logger := logging.GetLogger("inventory.path")

	dirs := p.Dirs
	if len(dirs) == 0 {
		dirs = filepath.SplitList(os.Getenv("PATH"))
	}

	seen := make(map[string]bool)
	var records []Record
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			logger.Trace().Err(err).Str("dir", dir).Msg("Skipping unreadable PATH entry")
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			name, ok := executableName(entry)
			if !ok || seen[name] {
				continue
			}
			seen[name] = true
			full := filepath.Join(dir, entry.Name())
			records = append(records, Record{
				DisplayName: name,
				Key:         full,
				NoRemove:    true,
				Source:      p.Name(),
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].DisplayName < records[j].DisplayName
	})
	return records, nil
}

// executableName returns the display name for an executable entry.
func executableName(entry os.DirEntry) (string, bool) {
	info, err := entry.Info()
	if err != nil {
		return "", false
	}

	if runtime.GOOS == "windows" {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, candidate := range windowsExecutableExts() {
			if ext == candidate {
				return strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())), true
			}
		}
		return "", false
	}

	if info.Mode()&0111 == 0 {
		return "", false
	}
	return entry.Name(), true
}

func windowsExecutableExts() []string {
	pathext := os.Getenv("PATHEXT")
	if pathext == "" {
		return []string{".com", ".exe", ".bat", ".cmd"}
	}
	var exts []string
	for _, e := range strings.Split(pathext, ";") {
		if e = strings.TrimSpace(e); e != "" {
			exts = append(exts, strings.ToLower(e))
		}
	}
	return exts
}
