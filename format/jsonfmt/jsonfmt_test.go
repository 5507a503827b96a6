package jsonfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/fmtls/errors"
	"github.com/teranos/fmtls/format"
)

func TestFormat_Canonicalizes(t *testing.T) {
	f := New("  ", false)

	out, err := f.Format(`{"name":"fmtls","ok":true}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"fmtls\",\n  \"ok\": true\n}\n", out)
}

func TestFormat_Idempotent(t *testing.T) {
	f := New("  ", true)

	inputs := []string{
		`{"b":1,"a":[1,2,3]}`,
		`[]`,
		`{"nested":{"deep":{"x":null}}}`,
		`"just a string"`,
		`42`,
	}

	for _, src := range inputs {
		first, err := f.Format(src)
		require.NoError(t, err, "input %q", src)
		second, err := f.Format(first)
		require.NoError(t, err, "reformat of %q", src)
		assert.Equal(t, first, second, "formatter must be idempotent for %q", src)
	}
}

func TestFormat_SortKeys(t *testing.T) {
	f := New("  ", true)

	out, err := f.Format(`{"b":2,"a":1}`)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1,\n  \"b\": 2\n}\n", out)
}

func TestFormat_ParseFailure(t *testing.T) {
	f := New("  ", false)

	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"whitespace only", "   \n"},
		{"truncated object", `{"a":`},
		{"bare word", "nonsense"},
		{"trailing garbage", `{"a":1} extra`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.Format(tt.input)
			require.Error(t, err)
			assert.True(t, errors.IsParseFailure(err))
		})
	}
}

func TestFormat_ThroughDocumentEdits(t *testing.T) {
	f := New("  ", false)

	// Non-canonical input: one whole-document edit
	edits, err := format.DocumentEdits(f, `{"a":1}`)
	require.NoError(t, err)
	require.Len(t, edits, 1)

	// Canonical input: explicit no-op
	edits, err = format.DocumentEdits(f, edits[0].NewText)
	require.NoError(t, err)
	assert.Empty(t, edits)
}
