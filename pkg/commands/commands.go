// Package commands provides high-level command implementations for dotlink.
//
// This package is the orchestration layer between the CLI and the core
// packages. Every command resolves components the same way:
//   - discover the dotfiles root's subdirectories
//   - query the software inventory once
//   - load each component's descriptor and classify it
//   - optionally narrow to the components named by the caller
//
// Commands:
//   - ListComponents   - classify components, with a grouped summary
//   - InstallComponents - link installable components into place
//   - RemoveComponents - take those links away
//   - StatusComponents - what install would do, without touching anything
package commands

import (
	"github.com/arthur-debert/dotlink/pkg/components"
	"github.com/arthur-debert/dotlink/pkg/config"
	"github.com/arthur-debert/dotlink/pkg/descriptor"
	"github.com/arthur-debert/dotlink/pkg/errors"
	"github.com/arthur-debert/dotlink/pkg/filesystem"
	"github.com/arthur-debert/dotlink/pkg/inventory"
	"github.com/arthur-debert/dotlink/pkg/logging"
	"github.com/arthur-debert/dotlink/pkg/paths"
	"github.com/arthur-debert/dotlink/pkg/types"
	"github.com/spf13/afero"
)

// Options holds what every command needs. Only Config is required.
type Options struct {
	// Config is the resolved run configuration (required)
	Config *config.RunConfig

	// ComponentNames restricts the run to these components. Empty means all.
	ComponentNames []string

	// FileSystem to use for discovery and linking (defaults to OS filesystem)
	FileSystem types.FS

	// MetadataFS is where descriptors are read from (defaults to OS filesystem)
	MetadataFS afero.Fs

	// Inventory overrides the provider built from Config.Inventory
	Inventory inventory.Provider

	// Folders resolves special folders (defaults to XDG folders)
	Folders paths.FolderResolver
}

// resolution is the shared outcome of component resolution.
type resolution struct {
	fs            types.FS
	components    []*types.Component
	inventorySize int
	inventoryErr  error
}

// resolveComponents runs discovery, detection and install path resolution.
// Only an unusable dotfiles root or bad run-level configuration fails it.
func resolveComponents(opts Options) (*resolution, error) {
	logger := logging.GetLogger("commands")

	cfg := opts.Config
	if cfg == nil {
		return nil, errors.New(errors.ErrInvalidInput, "run configuration is required")
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	metaFS := opts.MetadataFS
	if metaFS == nil {
		metaFS = afero.NewOsFs()
	}
	folders := opts.Folders
	if folders == nil {
		folders = paths.NewXDGFolders()
	}

	candidates, err := components.Discover(fs, cfg.DotfilesRoot)
	if err != nil {
		return nil, err
	}

	provider := opts.Inventory
	if provider == nil {
		provider, err = inventory.FromSources(cfg.Inventory.Sources, cfg.Inventory.File)
		if err != nil {
			return nil, err
		}
	}

	// The inventory is read once; every component sees the same snapshot.
	snapshot, invErr := inventory.Load(provider)
	if invErr != nil {
		logger.Warn().Err(invErr).Msg("Software inventory incomplete, detection may miss installed software")
	}

	loader := descriptor.NewLoader(metaFS, cfg.Metadata.CustomDir, cfg.Metadata.GlobalDir)
	resolver := components.NewResolver(snapshot, folders, cfg.HomeDir, cfg.Autodetect)

	all := make([]*types.Component, 0, len(candidates))
	for _, cand := range candidates {
		desc, loadErr := loader.Load(cand.Name)
		all = append(all, resolver.Resolve(cand.Name, cand.Path, desc, loadErr))
	}

	selected, err := components.Select(all, opts.ComponentNames)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Int("discovered", len(all)).
		Int("selected", len(selected)).
		Int("inventory", snapshot.Len()).
		Msg("Components resolved")

	return &resolution{
		fs:            fs,
		components:    selected,
		inventorySize: snapshot.Len(),
		inventoryErr:  invErr,
	}, nil
}
