// SPDX-License-Identifier: MPL-2.0

// Package descriptor loads per-host descriptor files.
//
// A host is described either by a single file (web01.yml) or by a directory
// of fragments (web01/) whose top-level keys are merged, later fragments
// overriding earlier ones. Only .yaml, .yml and .json fragments are read;
// Ansible Vault encrypted fragments are skipped without error.
//
// Field values are exposed to the grouping logic through Value, which is
// either a single scalar or a list of scalars.
package descriptor
