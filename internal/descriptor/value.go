// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// KindScalar is a single value.
	KindScalar Kind = iota + 1
	// KindList is a sequence of values, each producing its own group or alias.
	KindList
)

type (
	// Kind discriminates the two shapes a field value can take.
	Kind int

	// Value is a descriptor field resolved to the shapes the inventory
	// understands: one string or a list of strings.
	Value struct {
		kind  Kind
		items []string
	}
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Scalar returns a single-valued Value.
func Scalar(s string) Value {
	return Value{kind: KindScalar, items: []string{s}}
}

// List returns a multi-valued Value.
func List(items ...string) Value {
	return Value{kind: KindList, items: append([]string(nil), items...)}
}

// Kind reports the value shape.
func (v Value) Kind() Kind { return v.kind }

// IsList reports whether the value came from a sequence.
func (v Value) IsList() bool { return v.kind == KindList }

// Items returns every element; a scalar yields a one-element slice.
func (v Value) Items() []string {
	return append([]string(nil), v.items...)
}

// String renders the value for logs.
func (v Value) String() string {
	if v.kind == KindList {
		return "[" + strings.Join(v.items, ", ") + "]"
	}
	if len(v.items) == 0 {
		return ""
	}
	return v.items[0]
}

// valueOf converts a decoded document value. Mappings, nulls and empty
// sequences have no Value.
func valueOf(raw any) (Value, bool) {
	switch t := raw.(type) {
	case []any:
		items := make([]string, 0, len(t))
		for _, elem := range t {
			if s, ok := scalarString(elem); ok {
				items = append(items, s)
			}
		}
		if len(items) == 0 {
			return Value{}, false
		}
		return List(items...), true
	default:
		s, ok := scalarString(raw)
		if !ok {
			return Value{}, false
		}
		return Scalar(s), true
	}
}

func scalarString(raw any) (string, bool) {
	switch t := raw.(type) {
	case string:
		return t, true
	case bool:
		return strconv.FormatBool(t), true
	case int:
		return strconv.Itoa(t), true
	case int64:
		return strconv.FormatInt(t, 10), true
	case uint64:
		return strconv.FormatUint(t, 10), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case fmt.Stringer:
		return t.String(), true
	default:
		return "", false
	}
}

// truthy follows the usual YAML/JSON reading of "enabled" flags: false,
// zero, empty strings and empty collections are false.
func truthy(raw any) bool {
	switch t := raw.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	case json.Number:
		f, err := t.Float64()
		return err != nil || f != 0
	case []any:
		return len(t) > 0
	case map[string]any:
		return len(t) > 0
	default:
		return true
	}
}
