// Package filesystem provides filesystem implementations for dotlink.
//
// It contains the OS-backed implementation of types.FS and the read-only
// node inspection the linker relies on: one Lstat per node and, for symbolic
// links, one Readlink resolved to an absolute path.
package filesystem
