// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Orchestrate isolated dotfiles test environments

package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/inventory"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
)

// TestEnvironment provides a complete test environment with all dependencies
type TestEnvironment struct {
	// Core paths
	DotfilesRoot string
	HomeDir      string
	ConfigDir    string
	CustomDir    string
	GlobalDir    string

	FS types.FS

	t       *testing.T
	tempDir string
}

// NewTestEnvironment creates an isolated environment in a temp directory
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	env := &TestEnvironment{
		DotfilesRoot: filepath.Join(tempDir, "dotfiles"),
		HomeDir:      filepath.Join(tempDir, "home"),
		FS:           filesystem.NewOS(),
		t:            t,
		tempDir:      tempDir,
	}
	env.ConfigDir = filepath.Join(env.HomeDir, ".config")
	env.CustomDir = filepath.Join(env.DotfilesRoot, paths.CustomMetadataDir)
	env.GlobalDir = filepath.Join(tempDir, "share", "dotlink", "metadata")

	for _, dir := range []string{env.DotfilesRoot, env.HomeDir, env.CustomDir, env.GlobalDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}

	t.Setenv(paths.EnvDotfilesRoot, env.DotfilesRoot)
	t.Setenv("HOME", env.HomeDir)

	return env
}

// TempDir returns the environment's base directory.
func (env *TestEnvironment) TempDir() string {
	return env.tempDir
}

// SetupComponent creates a component directory holding tree.
func (env *TestEnvironment) SetupComponent(name string, tree FileTree) string {
	env.t.Helper()
	path := filepath.Join(env.DotfilesRoot, name)
	if err := os.MkdirAll(path, 0755); err != nil {
		env.t.Fatalf("Failed to create component directory: %v", err)
	}
	CreateFileTree(env.t, path, tree)
	return path
}

// WithFileTree creates tree under the home directory, for pre-existing
// target content.
func (env *TestEnvironment) WithFileTree(tree FileTree) {
	env.t.Helper()
	CreateFileTree(env.t, env.HomeDir, tree)
}

// WriteDescriptor writes a descriptor into the custom metadata directory.
func (env *TestEnvironment) WriteDescriptor(name, xml string) {
	env.t.Helper()
	env.writeDescriptor(env.CustomDir, name, xml)
}

// WriteGlobalDescriptor writes a descriptor into the global metadata directory.
func (env *TestEnvironment) WriteGlobalDescriptor(name, xml string) {
	env.t.Helper()
	env.writeDescriptor(env.GlobalDir, name, xml)
}

func (env *TestEnvironment) writeDescriptor(dir, name, xml string) {
	path := filepath.Join(dir, name+paths.DescriptorExt)
	if err := os.WriteFile(path, []byte(xml), 0644); err != nil {
		env.t.Fatalf("Failed to write descriptor %s: %v", path, err)
	}
}

// Folders returns a special folder table rooted in the environment.
func (env *TestEnvironment) Folders() paths.MapFolders {
	return paths.MapFolders{
		"UserProfile":     env.HomeDir,
		"ApplicationData": env.ConfigDir,
	}
}

// RunConfig returns a configuration pointing at the environment.
func (env *TestEnvironment) RunConfig(autodetect bool) *config.RunConfig {
	return &config.RunConfig{
		DotfilesRoot: env.DotfilesRoot,
		Autodetect:   autodetect,
		HomeDir:      env.HomeDir,
		Metadata: config.MetadataConfig{
			CustomDir: env.CustomDir,
			GlobalDir: env.GlobalDir,
		},
		Inventory: config.InventoryConfig{
			Sources: []string{inventory.SourcePath},
		},
	}
}

// Component returns an installable component for name with the given
// install path.
func (env *TestEnvironment) Component(name, installPath string) *types.Component {
	return &types.Component{
		Name:         name,
		Availability: types.AvailabilityAlwaysInstall,
		SourcePath:   filepath.Join(env.DotfilesRoot, name),
		InstallPath:  installPath,
		RemovePath:   installPath,
	}
}

// FileTree represents a directory structure for testing. String values are
// file contents, FileTree values are subdirectories and Link values are
// symbolic links.
type FileTree map[string]interface{}

// Link is a symbolic link entry in a FileTree.
type Link string

// CreateFileTree recursively creates a file tree under basePath
func CreateFileTree(t *testing.T, basePath string, tree FileTree) {
	t.Helper()

	for name, content := range tree {
		fullPath := filepath.Join(basePath, name)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", fullPath, err)
		}

		switch v := content.(type) {
		case string:
			if err := os.WriteFile(fullPath, []byte(v), 0644); err != nil {
				t.Fatalf("Failed to write file %s: %v", fullPath, err)
			}
		case FileTree:
			if err := os.MkdirAll(fullPath, 0755); err != nil {
				t.Fatalf("Failed to create directory %s: %v", fullPath, err)
			}
			CreateFileTree(t, fullPath, v)
		case Link:
			if err := os.Symlink(string(v), fullPath); err != nil {
				t.Fatalf("Failed to create link %s: %v", fullPath, err)
			}
		default:
			t.Fatalf("Invalid file tree content type for %s: %T", name, content)
		}
	}
}

// Pre-built component trees for common test scenarios

// VimTree returns a vim component with a nested directory
func VimTree() FileTree {
	return FileTree{
		"vimrc":  "\" Vim configuration\nset number\nset expandtab",
		"gvimrc": "\" GVim configuration\nset guifont=Monaco:h12",
		"colors": FileTree{
			"monokai.vim": "\" Monokai color scheme",
		},
	}
}

// GitTree returns a flat git component
func GitTree() FileTree {
	return FileTree{
		"gitconfig": "[user]\n  name = Test User\n  email = test@example.com",
		"gitignore": "*.tmp\n*.log\n.DS_Store",
	}
}
