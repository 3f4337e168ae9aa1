// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the hostinv command line.
//
// hostinv is an Ansible dynamic inventory script. The root command selects
// one of three modes (--list, --host, --list-text), loads the settings, walks
// the host_vars directory and writes the resulting document to stdout.
package cmd
