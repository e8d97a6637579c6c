package keypath

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "empty path", input: "", expected: nil},
		{name: "single key", input: "key", expected: []string{"key"}},
		{name: "nested path", input: "a.b.c", expected: []string{"a", "b", "c"}},
		{name: "escaped separator", input: `a\.b`, expected: []string{"a.b"}},
		{name: "escaped escape", input: `a\\.b`, expected: []string{`a\`, "b"}},
		{name: "escaped separator mid path", input: `x.a\.b.y`, expected: []string{"x", "a.b", "y"}},
		{name: "empty segment", input: "a..b", expected: []string{"a", "", "b"}},
		{name: "trailing separator", input: "a.", expected: []string{"a", ""}},
		{name: "dangling escape", input: `a\`, expected: []string{`a\`}},
		{name: "escaped plain character", input: `\a`, expected: []string{"a"}},
		{name: "unicode key", input: "héllo.wörld", expected: []string{"héllo", "wörld"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Tokenize(tt.input))
		})
	}
}

func TestUntokenize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    []string
		expected string
	}{
		{name: "no keys", input: nil, expected: ""},
		{name: "single key", input: []string{"key"}, expected: "key"},
		{name: "nested keys", input: []string{"a", "b"}, expected: "a.b"},
		{name: "key with separator", input: []string{"a.b"}, expected: `a\.b`},
		{name: "key with escape", input: []string{`a\b`}, expected: `a\\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Untokenize(tt.input))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := [][]string{
		{"a"},
		{"a", "b", "c"},
		{"a.b", "c"},
		{`a\`, ".", "b\\.c"},
		{"", "x"},
	}

	for _, keys := range inputs {
		assert.Equal(t, keys, Tokenize(Untokenize(keys)))
	}
}

func TestCodec_CustomSeparator(t *testing.T) {
	t.Parallel()

	codec := Codec{Separator: ':', Escape: '\\'}

	assert.Equal(t, []string{"api", "a.b"}, codec.Tokenize("api:a.b"))
	assert.Equal(t, `api:x\:y`, codec.Untokenize([]string{"api", "x:y"}))
}
