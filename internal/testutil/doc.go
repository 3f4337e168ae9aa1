// SPDX-License-Identifier: MPL-2.0

// Package testutil provides helper functions for tests that fail fast on
// setup errors.
//
// Helpers cover environment variable management (MustSetenv, MustUnsetenv)
// and building on-disk inventory fixtures (WriteTree, MustWriteFile).
package testutil
