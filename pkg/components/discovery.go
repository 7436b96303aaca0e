package components

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// Candidate is a component directory found under the dotfiles root.
type Candidate struct {
	Name string
	Path string
}

// Discover returns the immediate subdirectories of root, sorted by name.
// Hidden entries and regular files are skipped. A missing, unreadable or
// non-directory root is the only error.
func Discover(fsys types.FS, root string) ([]Candidate, error) {
	logger := logging.GetLogger("components.discovery")
	logger.Trace().Str("root", root).Msg("Discovering components")

	info, err := fsys.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.ErrNotFound, "dotfiles root does not exist").
				WithDetail("path", root)
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot access dotfiles root").
			WithDetail("path", root)
	}

	if !info.IsDir() {
		return nil, errors.New(errors.ErrInvalidInput, "dotfiles root is not a directory").
			WithDetail("path", root)
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot read dotfiles root").
			WithDetail("path", root)
	}

	var candidates []Candidate
	for _, entry := range entries {
		name := entry.Name()

		if strings.HasPrefix(name, ".") {
			logger.Trace().Str("name", name).Msg("Skipping hidden entry")
			continue
		}

		fullPath := filepath.Join(root, name)
		if !isDir(fsys, entry, fullPath) {
			continue
		}

		candidates = append(candidates, Candidate{Name: name, Path: fullPath})
		logger.Trace().Str("path", fullPath).Msg("Found component candidate")
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Name < candidates[j].Name
	})

	logger.Debug().Int("count", len(candidates)).Msg("Found component candidates")
	return candidates, nil
}

// isDir follows a symlinked entry so a linked directory still counts.
func isDir(fsys types.FS, entry os.DirEntry, fullPath string) bool {
	if entry.IsDir() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := fsys.Stat(fullPath)
	return err == nil && info.IsDir()
}

// Select keeps the components named in names, in discovery order. Names may
// carry trailing separators or a leading path (shell completion of
// "dotfiles/vim/"). An empty names list selects everything; unknown names
// are an error.
func Select(all []*types.Component, names []string) ([]*types.Component, error) {
	if len(names) == 0 {
		return all, nil
	}

	wanted := make(map[string]bool, len(names))
	var order []string
	for _, n := range names {
		key := normalizeName(n)
		if key == "" || wanted[key] {
			continue
		}
		wanted[key] = true
		order = append(order, key)
	}

	found := make(map[string]bool, len(wanted))
	var selected []*types.Component
	for _, c := range all {
		if wanted[c.Name] {
			selected = append(selected, c)
			found[c.Name] = true
		}
	}

	var missing []string
	for _, n := range order {
		if !found[n] {
			missing = append(missing, n)
		}
	}
	if len(missing) > 0 {
		return nil, errors.Newf(errors.ErrComponentNotFound, "unknown component(s): %s", strings.Join(missing, ", ")).
			WithDetail("missing", missing)
	}

	return selected, nil
}

func normalizeName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimRight(name, `/\`)
	if name == "" {
		return ""
	}
	return filepath.Base(filepath.FromSlash(name))
}
