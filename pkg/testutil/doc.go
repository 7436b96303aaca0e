// Package testutil provides utilities for testing dotlink components.
//
// Key components:
//   - TestEnvironment: an isolated dotfiles root, home directory and
//     metadata directories under t.TempDir, with HOME and DOTFILES_ROOT
//     pointed at them
//   - FileTree: declarative directory/file layout builder
//   - Link assertions: check what a target path is after a linker run
//
// The linker works on real symbolic links, so environments always use the
// OS filesystem. Descriptor-only tests can use afero.NewMemMapFs directly.
package testutil
