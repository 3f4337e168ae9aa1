// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"maps"
	"slices"
)

// Group is one inventory group. Its members are stored as sets; accessors
// return sorted copies.
type Group struct {
	hosts    map[string]struct{}
	children map[string]struct{}
	vars     map[string]any
}

func newGroup() *Group {
	return &Group{
		hosts:    make(map[string]struct{}),
		children: make(map[string]struct{}),
		vars:     make(map[string]any),
	}
}

// Hosts returns the direct member hosts in sorted order.
func (g *Group) Hosts() []string {
	return slices.Sorted(maps.Keys(g.hosts))
}

// Children returns the child group names in sorted order.
func (g *Group) Children() []string {
	return slices.Sorted(maps.Keys(g.children))
}

// Vars returns a copy of the group variables.
func (g *Group) Vars() map[string]any {
	return maps.Clone(g.vars)
}

// HasHost reports whether host is a direct member.
func (g *Group) HasHost(host string) bool {
	_, ok := g.hosts[host]
	return ok
}

// HasChild reports whether child is linked under g.
func (g *Group) HasChild(child string) bool {
	_, ok := g.children[child]
	return ok
}

func (g *Group) entry() GroupEntry {
	e := GroupEntry{}
	if len(g.hosts) > 0 {
		e.Hosts = g.Hosts()
	}
	if len(g.children) > 0 {
		e.Children = g.Children()
	}
	if len(g.vars) > 0 {
		e.Vars = g.Vars()
	}
	return e
}
