// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"maps"
	"slices"
)

type (
	// Inventory owns every group, the set of known host and group names, and
	// the per-host variables. It is built by one collection pass and is not
	// safe for concurrent mutation.
	Inventory struct {
		prefix   string
		groups   map[string]*Group
		names    map[string]struct{}
		hostvars map[string]map[string]any
	}

	// Option configures an Inventory.
	Option func(*Inventory)
)

// WithGroupPrefix prepends prefix and an underscore to every group name.
func WithGroupPrefix(prefix string) Option {
	return func(inv *Inventory) {
		inv.prefix = prefix
	}
}

// New creates an empty Inventory.
func New(opts ...Option) *Inventory {
	inv := &Inventory{
		groups:   make(map[string]*Group),
		names:    make(map[string]struct{}),
		hostvars: make(map[string]map[string]any),
	}
	for _, opt := range opts {
		opt(inv)
	}
	return inv
}

// GroupName returns the stored name for a raw group name: the group prefix
// is applied, then the name is normalized.
func (inv *Inventory) GroupName(raw string) string {
	if inv.prefix != "" {
		raw = inv.prefix + "_" + raw
	}
	return NormalizeName(raw)
}

// materialize returns the group for a raw name, creating it on first use.
func (inv *Inventory) materialize(raw string) (string, *Group) {
	name := inv.GroupName(raw)
	inv.names[name] = struct{}{}
	g, ok := inv.groups[name]
	if !ok {
		g = newGroup()
		inv.groups[name] = g
	}
	return name, g
}

// AddHost adds host to group. Host names are kept verbatim.
func (inv *Inventory) AddHost(group, host string) {
	_, g := inv.materialize(group)
	g.hosts[host] = struct{}{}
	inv.names[host] = struct{}{}
}

// AddChild links child under group, materializing both.
func (inv *Inventory) AddChild(group, child string) {
	childName, _ := inv.materialize(child)
	_, g := inv.materialize(group)
	g.children[childName] = struct{}{}
}

// AddGroupVar sets one variable on group.
func (inv *Inventory) AddGroupVar(group, name string, value any) {
	_, g := inv.materialize(group)
	g.vars[name] = value
}

// AddGroupVars sets every entry of vars on group.
func (inv *Inventory) AddGroupVars(group string, vars map[string]any) {
	_, g := inv.materialize(group)
	maps.Copy(g.vars, vars)
}

// AddHostVars records vars for host, replacing any previous value.
func (inv *Inventory) AddHostVars(host string, vars map[string]any) {
	inv.hostvars[host] = vars
}

// HostVars returns the variables recorded for host.
func (inv *Inventory) HostVars(host string) (map[string]any, bool) {
	vars, ok := inv.hostvars[host]
	return vars, ok
}

// Group looks up a group by raw name.
func (inv *Inventory) Group(raw string) (*Group, bool) {
	g, ok := inv.groups[inv.GroupName(raw)]
	return g, ok
}

// GroupNames returns every stored group name in sorted order.
func (inv *Inventory) GroupNames() []string {
	return slices.Sorted(maps.Keys(inv.groups))
}

// Hosts returns every host that belongs to at least one group, sorted.
func (inv *Inventory) Hosts() []string {
	seen := make(map[string]struct{})
	for _, g := range inv.groups {
		for h := range g.hosts {
			seen[h] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// FlatList returns the union of every host and group name ever referenced,
// sorted.
func (inv *Inventory) FlatList() []string {
	return slices.Sorted(maps.Keys(inv.names))
}

// Document returns the --list representation.
func (inv *Inventory) Document() Document {
	doc := Document{
		Meta:   Meta{HostVars: make(map[string]map[string]any, len(inv.hostvars))},
		Groups: make(map[string]GroupEntry, len(inv.groups)),
	}
	maps.Copy(doc.Meta.HostVars, inv.hostvars)
	for name, g := range inv.groups {
		doc.Groups[name] = g.entry()
	}
	return doc
}
