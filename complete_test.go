package tsargp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsogari/tsargp"
)

func completeTestSchema() tsargp.Schema {
	return tsargp.Schema{
		"verbose": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--verbose")}},
		"version": {Type: tsargp.KindFlag, Names: []tsargp.Name{tsargp.N("--version")}},
		"color": {
			Type:    tsargp.KindSingle,
			Names:   []tsargp.Name{tsargp.N("--color")},
			Choices: []string{"red", "green", "blue"},
		},
	}
}

func TestCompleteOptionNamePrefix(t *testing.T) {
	t.Parallel()

	candidates, err := tsargp.Complete(completeTestSchema(), []string{"--ver"}, 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"--verbose", "--version"}, candidates)
}

func TestCompleteChoiceCandidates(t *testing.T) {
	t.Parallel()

	candidates, err := tsargp.Complete(completeTestSchema(), []string{"--color", "gr"}, len("--color gr"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"green"}, candidates)
}

func TestCompleteAllChoicesWithNoPrefix(t *testing.T) {
	t.Parallel()

	candidates, err := tsargp.Complete(completeTestSchema(), []string{"--color", ""}, len("--color "))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"red", "green", "blue"}, candidates)
}

func TestCompleteCustomCallback(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"file": {
			Type:  tsargp.KindSingle,
			Names: []tsargp.Name{tsargp.N("--file")},
			Complete: func(prefix string, info tsargp.ParamInfo) ([]string, error) {
				return []string{prefix + "-a", prefix + "-b"}, nil
			},
		},
	}
	candidates, err := tsargp.Complete(schema, []string{"--file", "x"}, len("--file x"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"x-a", "x-b"}, candidates)
}
