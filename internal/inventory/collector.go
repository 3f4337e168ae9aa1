// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/hostinv/hostinv/internal/descriptor"
	"github.com/hostinv/hostinv/internal/issue"

	"github.com/charmbracelet/log"
)

// RootGroupPrefix is prepended to the inventory base directory name to form
// the group every collected host joins.
const RootGroupPrefix = "inv_"

type (
	// DescriptorLoader loads the merged descriptor of one host entry.
	DescriptorLoader interface {
		Load(path string) (descriptor.Descriptor, error)
	}

	// Collector registers the hosts of a host_vars directory into an Inventory.
	Collector struct {
		inv       *Inventory
		loader    DescriptorLoader
		rules     []PathRule
		fields    []string
		rootGroup string
		logger    *log.Logger
	}

	// CollectorOption configures a Collector.
	CollectorOption func(*Collector)
)

// WithRules sets the group path rules applied to every host.
func WithRules(rules ...PathRule) CollectorOption {
	return func(c *Collector) {
		c.rules = append(c.rules, rules...)
	}
}

// WithFields sets the descriptor fields whose values become host aliases.
func WithFields(fields ...string) CollectorOption {
	return func(c *Collector) {
		c.fields = append(c.fields, fields...)
	}
}

// WithRootGroup sets the group every host joins. Empty disables it.
func WithRootGroup(name string) CollectorOption {
	return func(c *Collector) {
		c.rootGroup = name
	}
}

// WithCollectorLogger sets the logger.
func WithCollectorLogger(logger *log.Logger) CollectorOption {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// RootGroupName returns the root group for an inventory base directory.
func RootGroupName(inventoryBase string) string {
	return RootGroupPrefix + filepath.Base(inventoryBase)
}

// NewCollector creates a Collector that writes into inv.
func NewCollector(inv *Inventory, loader DescriptorLoader, opts ...CollectorOption) *Collector {
	c := &Collector{
		inv:    inv,
		loader: loader,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect registers every entry of dir, a file or a fragment directory per
// host. Entries whose name starts with a dot are ignored.
func (c *Collector) Collect(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return issue.WrapWithContext(err, "list host descriptors", dir)
	}

	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if _, err := os.Stat(path); err != nil {
			c.logger.Debug("skipping unreadable host entry", "path", path, "err", err)
			continue
		}
		if err := c.CollectHost(path); err != nil {
			return err
		}
	}
	return nil
}

// CollectHost loads one host entry and registers each of its names in each
// of its groups. A disabled descriptor leaves the inventory untouched.
func (c *Collector) CollectHost(path string) error {
	d, err := c.loader.Load(path)
	if err != nil {
		return issue.NewErrorContext().
			WithOperation("load host descriptor").
			WithResource(path).
			WithSuggestion("Fix the YAML/JSON syntax of the reported fragment").
			WithSuggestion("Set \"skip_invalid\": true in the settings file to skip malformed fragments").
			Wrap(err).
			BuildError()
	}

	if d.Disabled() {
		c.logger.Debug("skipping disabled host", "path", path)
		return nil
	}

	names := c.hostNames(path, d)
	groups := c.inv.HostGroups(c.rules, d.Lookup)
	if c.rootGroup != "" {
		groups = append(groups, c.rootGroup)
	}

	c.logger.Debug("collected host", "path", path, "names", names, "groups", groups)

	for _, host := range names {
		for _, group := range groups {
			c.inv.AddHost(group, host)
		}
	}
	return nil
}

// hostNames returns the entry name followed by every alias from the
// configured fields. Each alias gets the whole descriptor as host variables;
// a later field or value overwrites an earlier one for the same alias.
func (c *Collector) hostNames(path string, d descriptor.Descriptor) []string {
	names := []string{descriptor.HostName(path)}
	seen := map[string]struct{}{names[0]: {}}

	for _, field := range c.fields {
		value, ok := d.Lookup(field)
		if !ok {
			continue
		}
		for _, alias := range value.Items() {
			c.inv.AddHostVars(alias, d.Vars())
			if _, dup := seen[alias]; dup {
				continue
			}
			seen[alias] = struct{}{}
			names = append(names, alias)
		}
	}
	return names
}
