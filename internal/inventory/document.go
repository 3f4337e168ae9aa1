// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"bytes"
	"encoding/json"
)

// MetaKey is the reserved top-level key carrying host variables.
const MetaKey = "_meta"

type (
	// Document is the inventory script --list output: one entry per group
	// plus the _meta entry.
	Document struct {
		Meta   Meta
		Groups map[string]GroupEntry
	}

	// Meta carries the host variables so consumers need not call --host.
	Meta struct {
		HostVars map[string]map[string]any `json:"hostvars"`
	}

	// GroupEntry is a group as serialized in the document.
	GroupEntry struct {
		Hosts    []string       `json:"hosts,omitempty"`
		Children []string       `json:"children,omitempty"`
		Vars     map[string]any `json:"vars,omitempty"`
	}
)

// MarshalJSON flattens groups and _meta into a single object. Keys are
// sorted and HTML characters are not escaped. A group named _meta is
// shadowed by the meta entry.
func (d Document) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(d.Groups)+1)
	for name, g := range d.Groups {
		flat[name] = g
	}
	hostvars := d.Meta.HostVars
	if hostvars == nil {
		hostvars = map[string]map[string]any{}
	}
	flat[MetaKey] = Meta{HostVars: hostvars}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(flat); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
