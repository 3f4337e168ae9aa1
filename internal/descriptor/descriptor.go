// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"fmt"
	"maps"
)

// DisabledField is the descriptor key that excludes a host when truthy.
const DisabledField = "disabled"

// Descriptor is the merged key/value content of one host's fragments.
// Nested values are JSON-compatible (string-keyed maps, slices, scalars).
type Descriptor map[string]any

// Lookup resolves field to a Value. It reports false when the field is
// absent or holds a mapping, null, or an empty list.
func (d Descriptor) Lookup(field string) (Value, bool) {
	raw, ok := d[field]
	if !ok {
		return Value{}, false
	}
	return valueOf(raw)
}

// Disabled reports whether the descriptor opts its host out of the inventory.
func (d Descriptor) Disabled() bool {
	raw, ok := d[DisabledField]
	return ok && truthy(raw)
}

// Merge copies every top-level key of other into d, replacing existing keys.
func (d Descriptor) Merge(other Descriptor) {
	maps.Copy(d, other)
}

// Vars returns a shallow copy suitable for use as host variables.
func (d Descriptor) Vars() map[string]any {
	return maps.Clone(map[string]any(d))
}

// jsonSafe rewrites decoded YAML so that it can be encoded as JSON:
// map[any]any (YAML mappings with non-string keys) become map[string]any.
func jsonSafe(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = jsonSafe(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[fmt.Sprint(k)] = jsonSafe(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = jsonSafe(val)
		}
		return out
	default:
		return v
	}
}
