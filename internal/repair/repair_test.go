package repair

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractStripsMarkdownFences(t *testing.T) {
	out, err := Extract("Here is your quiz:\n```json\n{\"questions\": []}\n```\nEnjoy!")
	require.NoError(t, err)
	assert.Equal(t, `{"questions": []}`, out)
}

func TestExtractTakesOutermostObject(t *testing.T) {
	out, err := Extract(`prefix {"a": {"b": 1}} suffix`)
	require.NoError(t, err)
	assert.Equal(t, `{"a": {"b": 1}}`, out)
}

func TestExtractFailsWithoutObject(t *testing.T) {
	_, err := Extract("I could not generate a quiz this time, sorry.")
	assert.ErrorIs(t, err, ErrMalformedResponse)

	_, err = Extract("} backwards {")
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestSanitizeReplacesRawControlCharacters(t *testing.T) {
	// A raw 0x01 inside a string value breaks strict JSON parsing.
	out, err := Extract("{\"text\": \"line\x01break\"}")
	require.NoError(t, err)
	assert.Equal(t, "{\"text\": \"line break\"}", out)
}

func TestSanitizeKeepsWhitespaceAndEscapes(t *testing.T) {
	in := "{\"text\": \"a\\nb\",\n\t\"k\": 1}"
	out, err := Extract(in)
	require.NoError(t, err)
	// The escaped \n and the structural tab/newline survive untouched.
	assert.Equal(t, in, out)
}
