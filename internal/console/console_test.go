package console

import (
	"io"
	"strings"
	"testing"

	"bedtime/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var menu = []session.Option{
	{Key: "1", Label: "Accept"},
	{Key: "2", Label: "Suggest"},
}

func TestChoose_AcceptsValidKey(t *testing.T) {
	var out strings.Builder
	term := New(strings.NewReader("2\n"), &out)

	key, err := term.Choose("Pick one:", menu)
	require.NoError(t, err)
	assert.Equal(t, "2", key)
	assert.Contains(t, out.String(), "1. Accept")
	assert.Contains(t, out.String(), "2. Suggest")
}

func TestChoose_ResolicitsOnInvalidInput(t *testing.T) {
	var out strings.Builder
	term := New(strings.NewReader("7\nbanana\n1\n"), &out)

	key, err := term.Choose("Pick one:", menu)
	require.NoError(t, err)
	assert.Equal(t, "1", key)
	assert.Equal(t, 2, strings.Count(out.String(), "Please enter a valid option"))
}

func TestChoose_TrimsWhitespace(t *testing.T) {
	term := New(strings.NewReader("  1  \n"), io.Discard)

	key, err := term.Choose("Pick one:", menu)
	require.NoError(t, err)
	assert.Equal(t, "1", key)
}

func TestFreeText_EmptyLineIsValid(t *testing.T) {
	term := New(strings.NewReader("\n"), io.Discard)

	text, err := term.FreeText("Say something: ")
	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestYesNo(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"no\n", false},
		{"maybe\nY\n", true},
	}
	for _, tc := range cases {
		term := New(strings.NewReader(tc.input), io.Discard)
		got, err := term.YesNo("Sure? (y/n)")
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestChoose_EOFReturnsError(t *testing.T) {
	term := New(strings.NewReader(""), io.Discard)

	_, err := term.Choose("Pick one:", menu)
	require.ErrorIs(t, err, io.EOF)
}
