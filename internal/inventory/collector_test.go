// SPDX-License-Identifier: MPL-2.0

package inventory

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/hostinv/hostinv/internal/descriptor"
	"github.com/hostinv/hostinv/internal/issue"
	"github.com/hostinv/hostinv/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, files map[string]string, opts ...CollectorOption) *Inventory {
	t.Helper()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, files)

	inv := New()
	err := NewCollector(inv, descriptor.NewLoader(), opts...).Collect(dir)
	require.NoError(t, err)
	return inv
}

func TestCollect_PlainHostsJoinOnlyRootGroup(t *testing.T) {
	t.Parallel()

	files := make(map[string]string)
	for i := range 5 {
		files[fmt.Sprintf("host%02d.yml", i)] = fmt.Sprintf("env: e%d\n", i)
	}
	files["host99/main.yml"] = "env: prod\n"

	inv := collect(t, files, WithRootGroup(RootGroupName("/srv/inventories/site-a")))

	assert.Equal(t, []string{"inv_site_a"}, inv.GroupNames())
	assert.Len(t, inv.Hosts(), 6)

	root, ok := inv.Group("inv_site-a")
	require.True(t, ok)
	assert.Equal(t, []string{"host00", "host01", "host02", "host03", "host04", "host99"}, root.Hosts())
	assert.Empty(t, inv.Document().Meta.HostVars)
}

func TestCollect_DisabledHostLeavesNoTrace(t *testing.T) {
	t.Parallel()

	inv := collect(t, map[string]string{
		"web01.yml": "env: prod\nregion: us\nname: www\ndisabled: true\n",
	},
		WithRootGroup("inv_site"),
		WithFields("name"),
		WithRules(ParsePathRule("env", "env::region")),
	)

	assert.Empty(t, inv.GroupNames())
	assert.Empty(t, inv.Hosts())
	assert.Empty(t, inv.FlatList())
	assert.Empty(t, inv.Document().Meta.HostVars)
}

func TestCollect_DirectoryEntryLosesExtension(t *testing.T) {
	t.Parallel()

	inv := collect(t, map[string]string{
		"web01.example.com/main.yml": "env: prod\n",
		"db01.example.com.yml":       "env: prod\n",
	}, WithRootGroup("r"))

	assert.Equal(t, []string{"db01.example.com", "web01.example"}, inv.Hosts())
}

func TestCollect_YAMLBooleanSpellingsOfDisabled(t *testing.T) {
	t.Parallel()

	inv := collect(t, map[string]string{
		"keep1.yml":      "disabled: no\nenv: prod\n",
		"keep2.yml":      "disabled: off\nenv: prod\n",
		"drop1.yml":      "disabled: yes\nenv: prod\n",
		"drop2/main.yml": "disabled: On\nenv: prod\n",
		"drop3.yml":      "disabled: \"no\"\nenv: prod\n",
	},
		WithRootGroup("r"),
		WithRules(ParsePathRule("env", "env")),
	)

	root, ok := inv.Group("r")
	require.True(t, ok)
	assert.Equal(t, []string{"keep1", "keep2"}, root.Hosts())
	assert.Equal(t, []string{"keep1", "keep2"}, inv.Hosts())

	env, ok := inv.Group("env_prod")
	require.True(t, ok)
	assert.Equal(t, []string{"keep1", "keep2"}, env.Hosts())
}

func TestCollect_YAMLBooleanSpellingsGroupAsTrue(t *testing.T) {
	t.Parallel()

	inv := collect(t, map[string]string{
		"a.yml": "monitored: yes\n",
		"b.yml": "monitored: true\n",
		"c.yml": "monitored: on\n",
	}, WithRules(ParsePathRule("monitored", "monitored")))

	assert.Equal(t, []string{"monitored", "monitored_true"}, inv.GroupNames())
	grp, ok := inv.Group("monitored_true")
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b", "c"}, grp.Hosts())
}

func TestCollect_AliasesAndGroups(t *testing.T) {
	t.Parallel()

	inv := collect(t, map[string]string{
		"web01.yml": "fqdn: web01.example.com\naliases: [www, api]\nenv: prod\nregion: [us, eu]\n",
		"db01.json": `{"fqdn": "db01.example.com", "env": "prod"}`,
		".gitkeep":  "",
	},
		WithRootGroup("inv_site"),
		WithFields("fqdn", "aliases"),
		WithRules(ParsePathRule("env", "env::region")),
	)

	assert.Equal(t, []string{"env", "env_prod", "env_prod_eu", "env_prod_us", "inv_site"}, inv.GroupNames())

	us, ok := inv.Group("env_prod_us")
	require.True(t, ok)
	assert.Equal(t, []string{"api", "web01", "web01.example.com", "www"}, us.Hosts())

	prod, ok := inv.Group("env_prod")
	require.True(t, ok)
	assert.Equal(t, []string{"db01", "db01.example.com"}, prod.Hosts())

	root, ok := inv.Group("inv_site")
	require.True(t, ok)
	assert.Equal(t, []string{"api", "db01", "db01.example.com", "web01", "web01.example.com", "www"}, root.Hosts())

	hv := inv.Document().Meta.HostVars
	assert.ElementsMatch(t, []string{"web01.example.com", "www", "api", "db01.example.com"}, keys(hv))
	assert.Equal(t, "web01.example.com", hv["www"]["fqdn"])
	_, hasFileName := hv["web01"]
	assert.False(t, hasFileName, "file-derived names carry no hostvars")
}

func TestCollect_NoRootGroupAndNoRules(t *testing.T) {
	t.Parallel()

	inv := collect(t, map[string]string{"web01.yml": "env: prod\n"})

	assert.Empty(t, inv.GroupNames())
	assert.Empty(t, inv.FlatList())
}

func TestCollect_EntriesWithoutDescriptorsStillCount(t *testing.T) {
	t.Parallel()

	inv := collect(t, map[string]string{
		"web01.yml":      "$ANSIBLE_VAULT;1.1;AES256\n6162\n",
		"web02/":         "",
		"web03.txt":      "whatever",
		"web04/vars.yml": "disabled: false\n",
	}, WithRootGroup("all_hosts"))

	root, ok := inv.Group("all_hosts")
	require.True(t, ok)
	assert.Equal(t, []string{"web01", "web02", "web03", "web04"}, root.Hosts())
}

func TestCollect_MalformedDescriptor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	testutil.WriteTree(t, dir, map[string]string{
		"good.yml": "env: prod\n",
		"bad.yml":  "env: [oops\n",
	})

	t.Run("fails by default", func(t *testing.T) {
		t.Parallel()

		err := NewCollector(New(), descriptor.NewLoader(), WithRootGroup("r")).Collect(dir)
		require.Error(t, err)
		assert.ErrorIs(t, err, descriptor.ErrMalformedDescriptor)

		var ae *issue.ActionableError
		require.ErrorAs(t, err, &ae)
		assert.Equal(t, filepath.Join(dir, "bad.yml"), ae.Resource)
	})

	t.Run("skip invalid keeps the host", func(t *testing.T) {
		t.Parallel()

		inv := New()
		loader := descriptor.NewLoader(descriptor.WithSkipInvalid(true))
		require.NoError(t, NewCollector(inv, loader, WithRootGroup("r")).Collect(dir))

		root, ok := inv.Group("r")
		require.True(t, ok)
		assert.Equal(t, []string{"bad", "good"}, root.Hosts())
	})
}

func TestCollect_MissingDirectory(t *testing.T) {
	t.Parallel()

	err := NewCollector(New(), descriptor.NewLoader()).Collect(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)

	var ae *issue.ActionableError
	assert.True(t, errors.As(err, &ae))
}

type stubLoader map[string]descriptor.Descriptor

func (s stubLoader) Load(path string) (descriptor.Descriptor, error) {
	return s[filepath.Base(path)], nil
}

func TestCollectHost_WithStubLoader(t *testing.T) {
	t.Parallel()

	inv := New(WithGroupPrefix("lab"))
	loader := stubLoader{"sw01": {"model": "ex4300", "vlan": []any{10, 20}}}
	c := NewCollector(inv, loader, WithRules(ParsePathRule("vlan", "")))

	require.NoError(t, c.CollectHost("/inv/host_vars/sw01"))

	assert.Equal(t, []string{"lab_vlan", "lab_vlan_10", "lab_vlan_20"}, inv.GroupNames())
	g, ok := inv.Group("vlan_10")
	require.True(t, ok)
	assert.Equal(t, []string{"sw01"}, g.Hosts())
}

func keys(m map[string]map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
