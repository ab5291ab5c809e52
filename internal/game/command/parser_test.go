package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestParse_Empty(t *testing.T) {
	result := Parse("")
	assert.Equal(t, "", result.Command)
	assert.Nil(t, result.Args)
}

func TestParse_SingleWord(t *testing.T) {
	result := Parse("status")
	assert.Equal(t, "status", result.Command)
	assert.Nil(t, result.Args)
	assert.Equal(t, "", result.RawArgs)
}

func TestParse_Lowercase(t *testing.T) {
	result := Parse("FIRE")
	assert.Equal(t, "fire", result.Command)
}

func TestParse_WithArgs(t *testing.T) {
	result := Parse("fire all")
	assert.Equal(t, "fire", result.Command)
	assert.Equal(t, []string{"all"}, result.Args)
	assert.Equal(t, "all", result.RawArgs)
}

func TestParse_ExtraWhitespace(t *testing.T) {
	result := Parse("  fire   single   now  ")
	assert.Equal(t, "fire", result.Command)
	assert.Equal(t, []string{"single", "now"}, result.Args)
	assert.Equal(t, "single   now", result.RawArgs)
}

func TestParseResult_Arg(t *testing.T) {
	result := Parse("fire ALL")
	assert.Equal(t, "all", result.Arg(0))
	assert.Equal(t, "", result.Arg(1))
	assert.Equal(t, "", result.Arg(-1))
}

func TestPropertyParseAlwaysLowercasesCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z]{1,20}`).Draw(t, "word")
		result := Parse(word)
		for _, c := range result.Command {
			if c >= 'A' && c <= 'Z' {
				t.Fatalf("command %q contains uppercase char in Parse result %q", word, result.Command)
			}
		}
	})
}

func TestPropertyParseNonEmptyInputHasCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "word")
		result := Parse(word)
		if result.Command == "" {
			t.Fatalf("non-empty input %q produced empty command", word)
		}
	})
}
