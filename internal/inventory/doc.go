// SPDX-License-Identifier: MPL-2.0

// Package inventory builds an Ansible dynamic inventory from host descriptors.
//
// Inventory is the in-memory graph of groups, hosts, child links and host
// variables; it serializes to the JSON document expected from an inventory
// script's --list mode, or to a flat list of names.
//
// Group membership is derived from path rules. A rule such as
//
//	"env": "env::region"
//
// reads the host's env field, then its region field, producing the groups
// env_<env> and env_<env>_<region> linked as parent and child. List values
// fan out to one group per element.
//
// Collector walks a host_vars directory and feeds every enabled host into an
// Inventory.
package inventory
