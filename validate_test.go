package tsargp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsogari/tsargp"
)

func TestValidateDuplicateName(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"a": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--verbose")}},
		"b": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--verbose")}},
	}

	_, err := tsargp.Validate(schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrDuplicateName)
}

func TestValidateSelfRequirement(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"a": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--a")}, Requires: tsargp.Require("a")},
	}

	_, err := tsargp.Validate(schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrSelfRequirement)
}

func TestValidateUnknownRequiredOption(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"a": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--a")}, Requires: tsargp.Require("missing")},
	}

	_, err := tsargp.Validate(schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrUnknownRequiredOption)
}

func TestValidateDuplicatePositional(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"a": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--a")}, Positional: true},
		"b": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--b")}, Positional: true},
	}

	_, err := tsargp.Validate(schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrDuplicatePositional)
}

func TestValidateSimilarNamesWarns(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"a": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--verbose")}},
		"b": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--verbse")}},
	}

	warnings, err := tsargp.Validate(schema, tsargp.WithSimilarityThreshold(0.5))
	require.NoError(t, err)

	found := false
	for _, w := range warnings {
		if w.Kind == tsargp.WarnSimilarNames {
			found = true
		}
	}
	assert.True(t, found, "expected a too-similar-names warning, got %v", warnings)
}

func TestValidateOK(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"verbose": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--verbose"), tsargp.N("-v")}, Cluster: []rune{'v'}},
	}

	warnings, err := tsargp.Validate(schema)
	require.NoError(t, err)
	assert.Empty(t, warnings)
}

func TestValidateRequiredExcludesDefault(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"a": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--a")}, Required: true, Default: "x"},
	}

	_, err := tsargp.Validate(schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrInvalidRequiredOption)
}

func TestValidateRequiredExcludesRequiredIf(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"a": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--a")}, Required: true, RequiredIf: tsargp.Require("b")},
		"b": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--b")}},
	}

	_, err := tsargp.Validate(schema)
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrInvalidRequiredOption)
}

func TestValidateNestedCommand(t *testing.T) {
	t.Parallel()

	nested := tsargp.Schema{
		"a": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--a")}, Requires: tsargp.Require("missing")},
	}
	schema := tsargp.Schema{
		"cmd": {Type: tsargp.KindCommand, Names: []tsargp.Name{tsargp.N("sub")}, Options: nested},
	}

	_, err := tsargp.Validate(schema)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tsargp.ErrUnknownRequiredOption))
}
