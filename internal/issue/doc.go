// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors for user-facing CLI messages.
//
// An ActionableError records the operation that failed, the file or directory
// involved, and hints for fixing it, so the command layer can render the same
// failure tersely or with its full cause chain.
package issue
