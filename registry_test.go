package tsargp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsogari/tsargp"
)

func TestBuildRegistryLookup(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"verbose": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--verbose"), tsargp.N("-v")}, Cluster: []rune{'v'}},
	}
	reg := tsargp.BuildRegistry(schema)

	key, opt, ok := reg.Lookup("--verbose")
	require.True(t, ok)
	assert.Equal(t, "verbose", key)
	assert.Same(t, schema["verbose"], opt)

	key, opt, ok = reg.Lookup("-v")
	require.True(t, ok)
	assert.Equal(t, "verbose", key)
	assert.Same(t, schema["verbose"], opt)

	_, _, ok = reg.Lookup("--bogus")
	assert.False(t, ok)
}

func TestBuildRegistryLookupLetter(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"verbose": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--verbose")}, Cluster: []rune{'v'}},
	}
	reg := tsargp.BuildRegistry(schema)

	key, _, ok := reg.LookupLetter('v')
	require.True(t, ok)
	assert.Equal(t, "verbose", key)

	_, _, ok = reg.LookupLetter('z')
	assert.False(t, ok)
}

func TestBuildRegistryPreferredNameDefaultsToFirstName(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"verbose": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.NamesSkip, tsargp.N("--verbose"), tsargp.N("-v")}},
	}
	tsargp.BuildRegistry(schema)
	assert.Equal(t, "--verbose", schema["verbose"].PreferredName)
}

func TestBuildRegistryPositional(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"file": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--file")}, Positional: true},
	}
	reg := tsargp.BuildRegistry(schema)
	require.NotNil(t, reg.Positional)
	assert.Equal(t, "file", reg.Positional.Key)
}

func TestBuildRegistryNames(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"verbose": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--verbose"), tsargp.N("-v")}},
	}
	reg := tsargp.BuildRegistry(schema)
	assert.ElementsMatch(t, []string{"--verbose", "-v"}, reg.Names())
}

func TestBuildRegistryTrailingMarker(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"args": {Type: tsargp.KindArray, Names: []tsargp.Name{tsargp.N("--args")}, TrailingMarker: "--"},
	}
	reg := tsargp.BuildRegistry(schema)
	key, _, ok := reg.Lookup("--")
	require.True(t, ok)
	assert.Equal(t, "args", key)
}
