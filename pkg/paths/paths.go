// Package paths provides centralized path handling for dotlink.
// It locates the dotfiles root, the metadata directories and the standard
// per-user folders a component can be installed under.
package paths

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotlink/pkg/errors"
)

// Environment variable names
const (
	// EnvDotfilesRoot is the primary environment variable for dotfiles location
	EnvDotfilesRoot = "DOTFILES_ROOT"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Default directories and files
const (
	// DotlinkDirName is the directory name for dotlink-specific files
	DotlinkDirName = "dotlink"

	// RootConfigFile is the optional configuration file at the dotfiles root
	RootConfigFile = ".dotlink.toml"

	// UserConfigFile is the configuration file under the XDG config home
	UserConfigFile = "config.toml"

	// CustomMetadataDir is the descriptor directory inside the dotfiles root
	CustomMetadataDir = ".dotlink"

	// MetadataDir is the descriptor directory under the XDG data home
	MetadataDir = "metadata"

	// DescriptorExt is the extension of component descriptor files
	DescriptorExt = ".xml"
)

// FindDotfilesRoot determines the dotfiles root using the following priority:
// 1. explicit (a flag or configured value), if non-empty
// 2. DOTFILES_ROOT environment variable
// 3. Git repository root of the working directory
// 4. Current working directory (fallback)
//
// The boolean reports whether the working directory fallback was used so the
// caller can warn about it. The returned path is absolute.
func FindDotfilesRoot(explicit string) (string, bool, error) {
	root, usedFallback, err := findDotfilesRoot(explicit)
	if err != nil {
		return "", false, err
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for dotfiles root")
	}
	return abs, usedFallback, nil
}

func findDotfilesRoot(explicit string) (string, bool, error) {
	if explicit != "" {
		return ExpandHome(explicit), false, nil
	}

	if root := os.Getenv(EnvDotfilesRoot); root != "" {
		return ExpandHome(root), false, nil
	}

	if gitRoot, err := findGitRoot(); err == nil && gitRoot != "" {
		return gitRoot, false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}
	return cwd, true, nil
}

// findGitRoot attempts to find the root of the current git repository
func findGitRoot() (string, error) {
	output, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", err
	}

	gitRoot := strings.TrimSpace(string(output))
	if gitRoot == "" {
		return "", errors.New(errors.ErrNotFound, "git root is empty")
	}
	return gitRoot, nil
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir := HomeDir()
	if homeDir == "" {
		return path
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~\
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// HomeDir returns the user's home directory, or "" when it cannot be found.
func HomeDir() string {
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return home
	}
	return os.Getenv(EnvHome)
}

// UserConfigPath returns the per-user configuration file path.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, DotlinkDirName, UserConfigFile)
}

// GlobalMetadataDir returns the shared descriptor directory.
func GlobalMetadataDir() string {
	return filepath.Join(xdg.DataHome, DotlinkDirName, MetadataDir)
}

// CustomMetadataPath returns the descriptor directory inside root.
func CustomMetadataPath(root string) string {
	return filepath.Join(root, CustomMetadataDir)
}

// RootConfigPath returns the configuration file inside root.
func RootConfigPath(root string) string {
	return filepath.Join(root, RootConfigFile)
}
