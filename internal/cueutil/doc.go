// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates JSON documents against embedded CUE schemas.
//
// Settings files are plain JSON, which is valid CUE, so they can be compiled
// directly and unified with a schema definition:
//
//  1. Compile the embedded schema
//  2. Compile user data and unify with the schema definition
//  3. Validate and decode to a generic map
//
// # Usage
//
//	//go:embed settings_schema.cue
//	var schema []byte
//
//	values, err := cueutil.ValidateToMap(schema, data, "#Settings",
//	    cueutil.WithFilename("dynamic_inventory.cfg"),
//	    cueutil.WithConcrete(false),
//	)
package cueutil
