package tsargp_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dsogari/tsargp"
)

func TestFallbackEnvSource(t *testing.T) {
	t.Setenv("TSARGP_TEST_NAME", "from-env")

	schema := tsargp.Schema{
		"name": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--name")}, Sources: []string{"TSARGP_TEST_NAME"}, Default: "from-default"},
	}
	res, err := tsargp.Parse(schema, []string{})
	require.NoError(t, err)
	assert.Equal(t, "from-env", res.Values["name"])
}

func TestFallbackUnsetSourceFallsThroughToDefault(t *testing.T) {
	schema := tsargp.Schema{
		"name": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--name")}, Sources: []string{"TSARGP_TEST_UNSET"}, Default: "from-default"},
	}
	res, err := tsargp.Parse(schema, []string{})
	require.NoError(t, err)
	assert.Equal(t, "from-default", res.Values["name"])
}

func TestFallbackDefaultFuncSeesOtherValues(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"base": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--base")}, Default: "root"},
		"derived": {
			Type:  tsargp.KindSingle,
			Names: []tsargp.Name{tsargp.N("--derived")},
			Default: tsargp.DefaultFunc(func(values tsargp.Values) (any, error) {
				base, _ := values["base"].(string)
				return base + "/child", nil
			}),
		},
	}
	res, err := tsargp.Parse(schema, []string{"--base", "root"})
	require.NoError(t, err)
	assert.Equal(t, "root", res.Values["base"])
	assert.Equal(t, "root/child", res.Values["derived"])
}

func TestFallbackSkipsAlreadySpecified(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"name": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--name")}, Default: "from-default"},
	}
	res, err := tsargp.Parse(schema, []string{"--name", "explicit"})
	require.NoError(t, err)
	assert.Equal(t, "explicit", res.Values["name"])
}

func TestFallbackEnvSourceAppliesConstraintPipeline(t *testing.T) {
	t.Setenv("TSARGP_TEST_COLOR", "purple")

	schema := tsargp.Schema{
		"color": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--color")}, Sources: []string{"TSARGP_TEST_COLOR"}, Choices: []string{"red", "blue"}},
	}
	_, err := tsargp.Parse(schema, []string{})
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrChoiceConstraintViolation)
}

func TestFallbackEnvSourceAppliesMapping(t *testing.T) {
	t.Setenv("TSARGP_TEST_LEVEL", "hi")

	schema := tsargp.Schema{
		"level": {
			Type:    tsargp.KindSingle,
			Names:   []tsargp.Name{tsargp.N("--level")},
			Sources: []string{"TSARGP_TEST_LEVEL"},
			Mapping: map[string]any{"hi": 3},
		},
	}
	res, err := tsargp.Parse(schema, []string{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Values["level"])
}

func TestFallbackStdinAppliesConstraintPipeline(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdin
	os.Stdin = r
	defer func() { os.Stdin = orig }()

	_, err = w.WriteString("bogus")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	schema := tsargp.Schema{
		"color": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--color")}, Stdin: true, Choices: []string{"red", "blue"}},
	}
	_, err = tsargp.Parse(schema, []string{})
	require.Error(t, err)
	assert.ErrorIs(t, err, tsargp.ErrChoiceConstraintViolation)
}

func TestFallbackArrayDefaultFuncDedupes(t *testing.T) {
	t.Parallel()

	schema := tsargp.Schema{
		"tags": {
			Type:   tsargp.KindArray,
			Names:  []tsargp.Name{tsargp.N("--tag")},
			Unique: true,
			Default: tsargp.DefaultFunc(func(values tsargp.Values) (any, error) {
				return []string{"a", "a", "b"}, nil
			}),
		},
	}
	res, err := tsargp.Parse(schema, []string{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, res.Values.Strings("tags"))
}

func TestFallbackFileSource(t *testing.T) {
	t.Parallel()

	resolver := fakeResolver{files: map[string][]byte{
		"secret.txt": []byte("token-value"),
	}}
	schema := tsargp.Schema{
		"token": {Type: tsargp.KindSingle, Names: []tsargp.Name{tsargp.N("--token")}, Sources: []string{"file://secret.txt"}},
	}
	res, err := tsargp.Parse(schema, []string{}, tsargp.WithParseResolver(resolver))
	require.NoError(t, err)
	assert.Equal(t, "token-value", res.Values["token"])
}
