package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentpack-dev/agentpack/internal/item"
	"github.com/agentpack-dev/agentpack/internal/registry"
)

// buildRegistry wires up a registry from name -> dependency list.
func buildRegistry(t *testing.T, deps map[string][]string) *registry.Registry {
	t.Helper()
	reg := registry.New("")
	for name, d := range deps {
		err := reg.Add(&item.Item{Name: name, Version: "1.0.0", Type: item.TypeAgent, Dependencies: d})
		require.NoError(t, err)
	}
	return reg
}

func TestResolveChainOrdersDependenciesFirst(t *testing.T) {
	reg := buildRegistry(t, map[string][]string{
		"a": nil,
		"b": {"a"},
		"c": {"b"},
	})

	sel, err := Resolve(reg, []string{"c"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, sel.Names())
	assert.Equal(t, []string{"c"}, sel.Explicit)
	assert.Equal(t, []string{"a", "b"}, sel.Transitive)
}

func TestResolveDeduplicatesSharedDependencies(t *testing.T) {
	reg := buildRegistry(t, map[string][]string{
		"base":  nil,
		"left":  {"base"},
		"right": {"base"},
		"top":   {"left", "right"},
	})

	sel, err := Resolve(reg, []string{"top"})
	require.NoError(t, err)

	assert.Equal(t, []string{"base", "left", "right", "top"}, sel.Names())
}

func TestResolveOrdersDependencySiblingsLexically(t *testing.T) {
	reg := buildRegistry(t, map[string][]string{
		"zeta":  nil,
		"alpha": nil,
		"mid":   nil,
		"top":   {"zeta", "mid", "alpha"},
	})

	sel, err := Resolve(reg, []string{"top"})
	require.NoError(t, err)

	assert.Equal(t, []string{"alpha", "mid", "zeta", "top"}, sel.Names())
}

func TestResolveIsIdempotent(t *testing.T) {
	reg := buildRegistry(t, map[string][]string{
		"a": nil,
		"b": {"a"},
		"c": {"a", "b"},
		"d": {"c"},
	})

	first, err := Resolve(reg, []string{"d", "b"})
	require.NoError(t, err)
	second, err := Resolve(reg, []string{"d", "b"})
	require.NoError(t, err)

	assert.Equal(t, first.Names(), second.Names())
	assert.Equal(t, first.Explicit, second.Explicit)
	assert.Equal(t, first.Transitive, second.Transitive)
}

func TestResolveKeepsFirstRequestedOrder(t *testing.T) {
	reg := buildRegistry(t, map[string][]string{
		"x": nil,
		"y": nil,
	})

	sel, err := Resolve(reg, []string{"y", "x", "y"})
	require.NoError(t, err)

	assert.Equal(t, []string{"y", "x"}, sel.Explicit)
	assert.Equal(t, []string{"y", "x"}, sel.Names())
}

func TestResolveMissingRequest(t *testing.T) {
	reg := buildRegistry(t, map[string][]string{"a": nil})

	_, err := Resolve(reg, []string{"ghost"})
	var missing *MissingDependencyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "", missing.Item)
	assert.Equal(t, "ghost", missing.Dependency)
}

func TestResolveMissingTransitiveDependency(t *testing.T) {
	reg := buildRegistry(t, map[string][]string{
		"app": {"lib"},
	})

	_, err := Resolve(reg, []string{"app"})
	var missing *MissingDependencyError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "app", missing.Item)
	assert.Equal(t, "lib", missing.Dependency)
}

func TestResolveReportsFullCycle(t *testing.T) {
	reg := buildRegistry(t, map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	})

	_, err := Resolve(reg, []string{"a"})
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"a", "b", "c", "a"}, cycle.Cycle)
}

func TestResolveSelfCycle(t *testing.T) {
	reg := buildRegistry(t, map[string][]string{"loop": {"loop"}})

	_, err := Resolve(reg, []string{"loop"})
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"loop", "loop"}, cycle.Cycle)
}

func TestResolveCycleNotReachableFromRequestIsIgnored(t *testing.T) {
	reg := buildRegistry(t, map[string][]string{
		"solo": nil,
		"a":    {"b"},
		"b":    {"a"},
	})

	sel, err := Resolve(reg, []string{"solo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"solo"}, sel.Names())
}
