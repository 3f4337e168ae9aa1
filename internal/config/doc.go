// SPDX-License-Identifier: MPL-2.0

// Package config loads the inventory settings using Viper with a JSON
// settings file validated against an embedded CUE schema.
//
// Settings are read from dynamic_inventory.cfg in the root directory (the
// directory holding the executable unless overridden). A dynamic_inventory.env
// file next to it is loaded into the environment, and HOSTINV_* variables
// override scalar settings. Paths in the settings are resolved against the
// root directory into absolute locations for the inventory base and the
// host_vars directory.
package config
