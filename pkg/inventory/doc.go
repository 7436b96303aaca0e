// Package inventory exposes the host's installed-software records to
// automatic component detection.
//
// A Provider enumerates raw records; Load queries it exactly once per run and
// keeps only visible records (a display name, not a system component, and
// some uninstall mechanism) in an immutable Snapshot. Providers exist for the
// Windows uninstall registry, executables on $PATH, and TOML/YAML snapshot
// files.
package inventory
