// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"slices"
	"strings"

	"github.com/hostinv/hostinv/internal/descriptor"
)

// PathSeparator separates field names in a group path expression.
const PathSeparator = "::"

type (
	// PathRule derives groups under Prefix from a sequence of descriptor
	// fields, outermost first.
	PathRule struct {
		Prefix   string
		Segments []string
	}

	// LookupFunc resolves a descriptor field for the host being expanded.
	LookupFunc func(field string) (descriptor.Value, bool)
)

// ParsePathRule builds a rule from a prefix and an expression such as
// "env::region". An empty expression means the field named like the prefix.
func ParsePathRule(prefix, expr string) PathRule {
	if expr == "" {
		expr = prefix
	}
	return PathRule{Prefix: prefix, Segments: strings.Split(expr, PathSeparator)}
}

// ParsePathRules builds the rules for a prefix → expressions mapping, sorted
// by prefix and then by expression order.
func ParsePathRules(paths map[string][]string) []PathRule {
	prefixes := make([]string, 0, len(paths))
	for prefix := range paths {
		prefixes = append(prefixes, prefix)
	}
	slices.Sort(prefixes)

	var rules []PathRule
	for _, prefix := range prefixes {
		exprs := paths[prefix]
		if len(exprs) == 0 {
			exprs = []string{""}
		}
		for _, expr := range exprs {
			rules = append(rules, ParsePathRule(prefix, expr))
		}
	}
	return rules
}

// String renders the rule as prefix=seg1::seg2.
func (r PathRule) String() string {
	return r.Prefix + "=" + strings.Join(r.Segments, PathSeparator)
}

// ExpandPath expands segments under prefix for one host and returns the
// deepest group names reached, linking every parent to its children on the
// way. The last segment is resolved against the groups produced by the
// segments before it.
//
// When a field is absent the groups reached so far are returned unchanged,
// so an empty result never occurs: with no usable field at all the result is
// {prefix}.
func (inv *Inventory) ExpandPath(prefix string, segments []string, lookup LookupFunc) []string {
	if len(segments) == 0 {
		return []string{prefix}
	}

	parents := inv.ExpandPath(prefix, segments[:len(segments)-1], lookup)

	value, ok := lookup(segments[len(segments)-1])
	if !ok {
		return parents
	}

	var children []string
	seen := make(map[string]struct{})
	for _, v := range value.Items() {
		for _, parent := range parents {
			child := parent + "_" + v
			inv.AddChild(parent, child)
			if _, dup := seen[child]; dup {
				continue
			}
			seen[child] = struct{}{}
			children = append(children, child)
		}
	}
	return children
}

// HostGroups applies every rule to one host and returns the union of the
// specialized groups in first-seen order. A rule whose first field is absent
// contributes nothing.
func (inv *Inventory) HostGroups(rules []PathRule, lookup LookupFunc) []string {
	var groups []string
	seen := make(map[string]struct{})
	for _, rule := range rules {
		for _, g := range inv.ExpandPath(rule.Prefix, rule.Segments, lookup) {
			if g == rule.Prefix {
				continue
			}
			if _, dup := seen[g]; dup {
				continue
			}
			seen[g] = struct{}{}
			groups = append(groups, g)
		}
	}
	return groups
}
