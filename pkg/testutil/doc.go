// Package testutil provides utilities for testing chipbuild components.
//
// Key components:
//   - RecordingRunner: an execution delegate that records commands instead
//     of spawning processes
//   - Assertion helpers for the plain-testing tests that do not use testify
//   - Filesystem helpers for building throwaway checkout and output trees
//
// All test data should be defined inline, not in external files, and each
// test should be completely isolated with no shared state.
package testutil
