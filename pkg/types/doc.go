// Package types defines the core types and interfaces used throughout dotlink.
// This includes the Component entity and its Availability classification, the
// Outcome values produced by the linker, and the FS interface the linker and
// discovery code run against.
package types
