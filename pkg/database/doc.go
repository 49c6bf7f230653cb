// Package database persists the installed-package records as a single
// JSON document on disk. It abstracts away the physical location of the
// file, providing a load/save API for commands, and keeps packages in
// the order they were first installed.
package database
