// SPDX-License-Identifier: MPL-2.0

package descriptor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptor_Lookup(t *testing.T) {
	t.Parallel()

	d := Descriptor{
		"env":     "prod",
		"region":  []any{"us", "eu"},
		"weight":  1.5,
		"count":   3,
		"active":  true,
		"number":  json.Number("42"),
		"empty":   []any{},
		"nothing": nil,
		"nested":  map[string]any{"a": 1},
		"mixed":   []any{"a", map[string]any{"b": 2}, 7},
	}

	tests := []struct {
		field    string
		wantOK   bool
		wantKind Kind
		want     []string
	}{
		{field: "env", wantOK: true, wantKind: KindScalar, want: []string{"prod"}},
		{field: "region", wantOK: true, wantKind: KindList, want: []string{"us", "eu"}},
		{field: "weight", wantOK: true, wantKind: KindScalar, want: []string{"1.5"}},
		{field: "count", wantOK: true, wantKind: KindScalar, want: []string{"3"}},
		{field: "active", wantOK: true, wantKind: KindScalar, want: []string{"true"}},
		{field: "number", wantOK: true, wantKind: KindScalar, want: []string{"42"}},
		{field: "mixed", wantOK: true, wantKind: KindList, want: []string{"a", "7"}},
		{field: "empty"},
		{field: "nothing"},
		{field: "nested"},
		{field: "absent"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			t.Parallel()

			v, ok := d.Lookup(tt.field)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantKind, v.Kind())
			assert.Equal(t, tt.want, v.Items())
		})
	}
}

func TestDescriptor_Disabled(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    Descriptor
		want bool
	}{
		{name: "absent", d: Descriptor{"env": "prod"}, want: false},
		{name: "true", d: Descriptor{"disabled": true}, want: true},
		{name: "false", d: Descriptor{"disabled": false}, want: false},
		{name: "non-empty string", d: Descriptor{"disabled": "yes"}, want: true},
		{name: "string no is still a string", d: Descriptor{"disabled": "no"}, want: true},
		{name: "empty string", d: Descriptor{"disabled": ""}, want: false},
		{name: "zero", d: Descriptor{"disabled": 0}, want: false},
		{name: "one", d: Descriptor{"disabled": 1}, want: true},
		{name: "null", d: Descriptor{"disabled": nil}, want: false},
		{name: "json zero", d: Descriptor{"disabled": json.Number("0")}, want: false},
		{name: "empty list", d: Descriptor{"disabled": []any{}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.d.Disabled())
		})
	}
}

func TestDescriptor_MergeOverridesTopLevelKeys(t *testing.T) {
	t.Parallel()

	d := Descriptor{"env": "prod", "net": map[string]any{"vlan": 10}}
	d.Merge(Descriptor{"env": "staging", "net": map[string]any{"mtu": 9000}})

	assert.Equal(t, Descriptor{"env": "staging", "net": map[string]any{"mtu": 9000}}, d)
}

func TestValue(t *testing.T) {
	t.Parallel()

	s := Scalar("prod")
	assert.False(t, s.IsList())
	assert.Equal(t, "prod", s.String())
	assert.Equal(t, "scalar", s.Kind().String())

	l := List("us", "eu")
	assert.True(t, l.IsList())
	assert.Equal(t, "[us, eu]", l.String())
	assert.Equal(t, "list", l.Kind().String())

	items := l.Items()
	items[0] = "mutated"
	assert.Equal(t, []string{"us", "eu"}, l.Items(), "Items must return a copy")
}
