// Package testutil provides utilities for testing scpkg components.
//
// Key components:
//   - TestEnvironment: sandboxed prefix, database, cache and config
//     under a temp directory, with environment variables pointed at it
//   - PackageFixture: declarative package sources, built as directories,
//     zip archives or tarballs
//
// Usage guidelines:
//   - Tests that install or uninstall should go through TestEnvironment
//     so nothing ever touches real system paths
//   - All test data should be defined inline, not in external files
//   - Each test should be completely isolated with no shared state
package testutil
