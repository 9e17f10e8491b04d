package tsargp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsogari/tsargp"
)

func flagAndSingleSchema() tsargp.Schema {
	return tsargp.Schema{
		"verbose": {
			Type:    tsargp.KindFlag,
			Names:   []tsargp.Name{tsargp.N("--verbose"), tsargp.N("-v")},
			Cluster: []rune{'v'},
		},
		"name": {
			Type:    tsargp.KindSingle,
			Names:   []tsargp.Name{tsargp.N("--name"), tsargp.N("-n")},
			Cluster: []rune{'n'},
			Default: "world",
		},
	}
}

func TestParseFlagAndSingle(t *testing.T) {
	t.Parallel()

	res, err := tsargp.Parse(flagAndSingleSchema(), []string{"-v", "--name", "Alice"})
	require.NoError(t, err)
	assert.Equal(t, true, res.Values["verbose"])
	assert.Equal(t, "Alice", res.Values["name"])
}

func TestParseSingleDefault(t *testing.T) {
	t.Parallel()

	res, err := tsargp.Parse(flagAndSingleSchema(), []string{})
	require.NoError(t, err)
	assert.Equal(t, "world", res.Values["name"])
	assert.Nil(t, res.Values["verbose"])
}

func TestParseCluster(t *testing.T) {
	t.Parallel()

	res, err := tsargp.Parse(flagAndSingleSchema(), []string{"-vn", "Bob"})
	require.NoError(t, err)
	assert.Equal(t, true, res.Values["verbose"])
	assert.Equal(t, "Bob", res.Values["name"])
}

func TestParseArraySeparator(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"tags": {
			Type:      tsargp.KindArray,
			Names:     []tsargp.Name{tsargp.N("--tag")},
			Separator: ",",
		},
	}

	res, err := tsargp.Parse(schema, []string{"--tag", "a,b,c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, res.Values.Strings("tags"))
}

func TestParseArrayAppendAcrossOccurrences(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"tags": {
			Type:   tsargp.KindArray,
			Names:  []tsargp.Name{tsargp.N("--tag")},
			Append: true,
		},
	}

	res, err := tsargp.Parse(schema, []string{"--tag", "a", "--tag", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Values.Strings("tags"))
}

func TestParsePositional(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"file": {
			Type:       tsargp.KindSingle,
			Names:      []tsargp.Name{tsargp.N("--file")},
			Positional: true,
		},
	}

	res, err := tsargp.Parse(schema, []string{"hello.txt"})
	require.NoError(t, err)
	assert.Equal(t, "hello.txt", res.Values["file"])
}

func TestParseRequiredMissing(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"name": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--name")}, Required: true},
	}

	_, err := tsargp.Parse(schema, []string{})
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrMissingRequiredOption)
}

func TestParseRequiresUnsatisfied(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"a": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--a")}, Requires: tsargp.Require("b")},
		"b": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--b")}},
	}

	_, err := tsargp.Parse(schema, []string{"--a"})
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrUnsatisfiedRequirement)
}

func TestParseRequiresSatisfied(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"a": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--a")}, Requires: tsargp.Require("b")},
		"b": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--b")}},
	}

	res, err := tsargp.Parse(schema, []string{"--a", "--b"})
	require.NoError(t, err)
	assert.Equal(t, true, res.Values["a"])
	assert.Equal(t, true, res.Values["b"])
}

func TestParseUnknownOption(t *testing.T) {
	t.Parallel()

	res, err := tsargp.Parse(flagAndSingleSchema(), []string{"--bogus"})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrUnknownOption)
}

func TestParseCommand(t *testing.T) {
	t.Parallel()

	nested := tsargp.Schema{
		"x": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--x")}},
	}
	schema := tsargp.Schema{
		"run": {Type: tsargp.KindCommand, Names: []tsargp.Name{tsargp.N("run")}, Options: nested},
	}

	res, err := tsargp.Parse(schema, []string{"run", "--x", "5"})
	require.NoError(t, err)

	inner, ok := res.Values["run"].(tsargp.Values)
	require.True(t, ok, "expected nested Values, got %T", res.Values["run"])
	assert.Equal(t, "5", inner["x"])
}

func TestParseHelpMessage(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"help": {Type: tsargp.KindHelp, Names: []tsargp.Name{tsargp.N("--help")}, Synopsis: "Show help."},
	}

	_, err := tsargp.Parse(schema, []string{"--help"}, tsargp.WithProgramName("demo"))
	require.Error(t, err)
	msg, ok := err.(*tsargp.Message)
	require.True(t, ok)
	assert.Equal(t, tsargp.MessageHelp, msg.Kind)
	assert.Contains(t, msg.Text, "demo")
}

func TestParseBreakStopsLoopAndRunsFallbacks(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"stop": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--stop")}, Break: true},
		"name": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--name")}, Default: "fallback"},
	}

	res, err := tsargp.Parse(schema, []string{"--stop", "--name", "ignored"})
	require.NoError(t, err)
	assert.Equal(t, true, res.Values["stop"])
	assert.Equal(t, "fallback", res.Values["name"])
}

func TestParseBreakThenMissingRequired(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"stop": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--stop")}, Break: true},
		"name": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--name")}, Required: true},
	}

	_, err := tsargp.Parse(schema, []string{"--stop"})
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrMissingRequiredOption)
}

func TestParseTrailingMarkerRoutesToOwnOption(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"verbose": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--verbose")}},
		"extra":   {Type: tsargp.KindArray, Names: []tsargp.Name{tsargp.N("--extra")}, TrailingMarker: "--"},
	}

	res, err := tsargp.Parse(schema, []string{"--verbose", "--", "--not-an-option", "plain"})
	require.NoError(t, err)
	assert.Equal(t, true, res.Values["verbose"])
	assert.Equal(t, []string{"--not-an-option", "plain"}, res.Values.Strings("extra"))
}

func TestParseDistinctTrailingMarkersFirstWins(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"files": {Type: tsargp.KindArray, Names: []tsargp.Name{tsargp.N("--files")}, TrailingMarker: "--files--"},
		"opts":  {Type: tsargp.KindArray, Names: []tsargp.Name{tsargp.N("--opts")}, TrailingMarker: "--opts--"},
	}

	res, err := tsargp.Parse(schema, []string{"--opts--", "a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Values.Strings("opts"))
	assert.Nil(t, res.Values["files"])
}

func TestParseFunctionSkipCount(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"sum": {
			Type:       tsargp.KindFunction,
			Names:      []tsargp.Name{tsargp.N("--sum")},
			ParamCount: tsargp.ParamCount{Min: 1, Max: 1},
			Parse: func(params []string, info tsargp.ParamInfo) (any, error) {
				*info.SkipCount = 2
				return params[0], nil
			},
		},
		"rest": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--rest")}},
	}

	res, err := tsargp.Parse(schema, []string{"--sum", "a", "skip1", "skip2", "--rest", "tail"})
	require.NoError(t, err)
	assert.Equal(t, "a", res.Values["sum"])
	assert.Equal(t, "tail", res.Values["rest"])
}

func TestParseUnknownOptionSuggestsSimilarName(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"verbose": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--verbose")}},
	}

	_, err := tsargp.Parse(schema, []string{"--verboose"}, tsargp.WithParseSimilarityThreshold(0.5))
	require.Error(t, err)
	var perr *tsargp.ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Suggestions, "--verbose")
}

func TestParseVersionMessage(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"version": {Type: tsargp.KindVersion, Names: []tsargp.Name{tsargp.N("--version")}, Version: "1.2.3"},
	}

	_, err := tsargp.Parse(schema, []string{"--version"})
	require.Error(t, err)
	msg, ok := err.(*tsargp.Message)
	require.True(t, ok)
	assert.Equal(t, tsargp.MessageVersion, msg.Kind)
	assert.Equal(t, "1.2.3", msg.Text)
}
