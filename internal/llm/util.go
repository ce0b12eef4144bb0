// Package llm - util.go provides shared utilities for LLM response processing.
package llm

import "strings"

// CleanJSONBlock removes markdown code block wrappers and conversational
// preamble from JSON responses. LLMs often wrap JSON in ```json ... ```
// blocks or prepend prose even when instructed not to.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Strip any prose preamble before the first JSON object or array
	objIdx := strings.Index(text, "{")
	arrIdx := strings.Index(text, "[")
	start := objIdx
	if start < 0 || (arrIdx >= 0 && arrIdx < start) {
		start = arrIdx
	}
	if start > 0 {
		text = text[start:]
	}

	return strings.TrimSpace(text)
}
