package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromptLine(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("  /data/input  \n"))

	got, err := promptLine(r, &out, "Input folder: ")
	require.NoError(t, err)
	assert.Equal(t, "/data/input", got)
	assert.Equal(t, "Input folder: ", out.String())
}

func TestPromptLineEOF(t *testing.T) {
	r := bufio.NewReader(strings.NewReader(""))
	_, err := promptLine(r, &bytes.Buffer{}, "Input folder: ")
	assert.Error(t, err)
}

func TestPromptLineEOFWithoutNewline(t *testing.T) {
	// A final line lacking its newline still counts.
	r := bufio.NewReader(strings.NewReader("final.docx"))
	got, err := promptLine(r, &bytes.Buffer{}, "Output name: ")
	require.NoError(t, err)
	assert.Equal(t, "final.docx", got)
}

func TestPromptWords(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("urgent\n  critical  \n\nignored\n"))

	words, err := promptWords(r, &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent", "critical"}, words)
	assert.Contains(t, out.String(), "Added search word: urgent")
	assert.Contains(t, out.String(), "Added search word: critical")
	assert.NotContains(t, out.String(), "ignored")
}

func TestPromptWordsWarnsOnUnmatchableWord(t *testing.T) {
	var out bytes.Buffer
	r := bufio.NewReader(strings.NewReader("e-mail\nurgent\n\n"))

	words, err := promptWords(r, &out)
	require.NoError(t, err)
	// The word is kept, but the user is told it cannot match.
	assert.Equal(t, []string{"e-mail", "urgent"}, words)
	assert.Contains(t, out.String(), `"e-mail" can never match`)
	assert.NotContains(t, out.String(), `"urgent" can never match`)
}

func TestMatchable(t *testing.T) {
	tests := []struct {
		word string
		want bool
	}{
		{"urgent", true},
		{"café", true},
		{"2024", true},
		{"e-mail", false},
		{"two words", false},
		{"done!", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, matchable(tt.word), "matchable(%q)", tt.word)
	}
}

func TestPromptWordsEOFTerminates(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("urgent\ncritical"))
	words, err := promptWords(r, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, []string{"urgent", "critical"}, words)
}

func TestPromptWordsEmpty(t *testing.T) {
	r := bufio.NewReader(strings.NewReader("\n"))
	words, err := promptWords(r, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, words)
}

func TestPrintBanner(t *testing.T) {
	var out bytes.Buffer
	printBanner(&out)
	assert.Contains(t, out.String(), "docmerge")
	assert.Contains(t, out.String(), "Merge all PDFs")
}
