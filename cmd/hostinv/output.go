// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"io"
)

// writeJSON writes v followed by a newline, with HTML characters unescaped.
func writeJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// hostVarsStub is the --host answer. Host variables are delivered through
// _meta.hostvars in --list, so Ansible never needs per-host calls.
func hostVarsStub() map[string]any {
	return map[string]any{}
}
