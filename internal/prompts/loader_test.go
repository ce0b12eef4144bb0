package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ValidPrompt(t *testing.T) {
	ClearCache()

	prompt, err := Get("interview.json", "generate_question")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "voice interview")
}

func TestGet_InvalidFile(t *testing.T) {
	ClearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	ClearCache()

	_, err := Get("interview.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestMustGet_Panics(t *testing.T) {
	ClearCache()

	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	ClearCache()

	assert.NotPanics(t, func() {
		prompt := MustGet("interview.json", "evaluate_answer")
		assert.NotEmpty(t, prompt)
	})
}

func TestFormat(t *testing.T) {
	template := "This is question #{{.TurnNumber}} for the {{.Domain}} interview."
	data := map[string]string{
		"TurnNumber": "3",
		"Domain":     "Data Science",
	}

	result := Format(template, data)
	assert.Equal(t, "This is question #3 for the Data Science interview.", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	data := map[string]string{}

	result := Format(template, data)
	assert.Equal(t, template, result) // Placeholder remains
}

func TestList(t *testing.T) {
	ClearCache()

	keys, err := List("interview.json")
	require.NoError(t, err)
	assert.Contains(t, keys, "generate_question")
	assert.Contains(t, keys, "evaluate_answer")
	assert.Contains(t, keys, "summarize_interview")
}

func TestCaching(t *testing.T) {
	ClearCache()

	// First call loads from file
	prompt1, err := Get("interview.json", "summarize_interview")
	require.NoError(t, err)

	// Second call should use cache
	prompt2, err := Get("interview.json", "summarize_interview")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
