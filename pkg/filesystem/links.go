package filesystem

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// NodeKind says what occupies a path, without following a final symlink.
type NodeKind int

const (
	NodeMissing NodeKind = iota
	NodeFile
	NodeDir
	NodeLink
)

// String implements fmt.Stringer
func (k NodeKind) String() string {
	switch k {
	case NodeMissing:
		return "missing"
	case NodeFile:
		return "file"
	case NodeDir:
		return "directory"
	case NodeLink:
		return "symlink"
	default:
		return "unknown"
	}
}

// Node is the state of a single target path.
type Node struct {
	Kind NodeKind

	// LinkTarget is the absolute, cleaned destination when Kind is NodeLink.
	LinkTarget string
}

// Inspect looks at path exactly once. Symbolic links are reported as links
// with their resolved target; anything that is neither a directory nor a link
// counts as a file.
func Inspect(fsys types.FS, path string) (Node, error) {
	info, err := fsys.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Node{Kind: NodeMissing}, nil
		}
		return Node{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot inspect %s", path).
			WithDetail("path", path)
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		target, err := readLink(fsys, path)
		if err != nil {
			return Node{}, err
		}
		return Node{Kind: NodeLink, LinkTarget: target}, nil
	case info.IsDir():
		return Node{Kind: NodeDir}, nil
	default:
		return Node{Kind: NodeFile}, nil
	}
}

// readLink reads the link at path. Relative targets are resolved against the
// directory containing the link.
func readLink(fsys types.FS, path string) (string, error) {
	target, err := fsys.Readlink(path)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "cannot read link %s", path).
			WithDetail("path", path)
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return filepath.Clean(target), nil
}

// SamePath compares two absolute paths after cleaning.
func SamePath(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
