package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleTextTrimsLine(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("  hello world  \n"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Say something", &out)

	require.NoError(t, err)
	assert.Equal(t, "hello world", got)
	assert.Contains(t, out.String(), "Say something")
}

func TestGetSimpleTextPartialLineOnEOF(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("no newline"))
	var out bytes.Buffer

	got, err := GetSimpleText(reader, "Prompt", &out)

	require.NoError(t, err)
	assert.Equal(t, "no newline", got)
}

func TestGetSimpleTextEOF(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader(""))
	var out bytes.Buffer

	_, err := GetSimpleText(reader, "Prompt", &out)

	assert.Error(t, err)
}

func TestGetMultilinePreservesBlankLines(t *testing.T) {
	input := "First paragraph.\n\nSecond paragraph.\n.\nignored\n"
	reader := bufio.NewReader(strings.NewReader(input))
	var out bytes.Buffer

	got, err := GetMultiline(reader, "Write your post", &out)

	require.NoError(t, err)
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", got)
}

func TestGetMultilineStopsAtEOFWithoutTerminator(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("only line"))
	var out bytes.Buffer

	got, err := GetMultiline(reader, "Write your post", &out)

	require.NoError(t, err)
	assert.Equal(t, "only line", got)
}

func TestGetPasswordUsesTerminalReader(t *testing.T) {
	orig := readPassword
	defer func() { readPassword = orig }()
	readPassword = func(fd int) ([]byte, error) {
		return []byte("s3cret"), nil
	}

	var out bytes.Buffer
	got, err := GetPassword("Password", &out)

	require.NoError(t, err)
	assert.Equal(t, "s3cret", got)
	assert.Contains(t, out.String(), "Password: ")
}
