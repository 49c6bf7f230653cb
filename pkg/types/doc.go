// Package types defines the core types and interfaces used throughout scpkg.
// This includes the FS and Pather interfaces, the Manifest and PackageRecord
// data structures, and the per-command result types.
package types
