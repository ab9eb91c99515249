package textnorm

import "strings"

// DefaultSnippetLen is the preview length used when a raw item
// supplies no snippet of its own.
const DefaultSnippetLen = 200

// Snippet returns a short preview of text: the first sentence, capped
// at maxLen without cutting a word mid-token. The input is cleaned
// first so previews never carry markup or newlines.
func Snippet(text string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultSnippetLen
	}
	s := Clean(text)
	if s == "" {
		return ""
	}

	end := len(s)
	for i := 0; i < end-1; i++ {
		if s[i] == '.' && s[i+1] == ' ' {
			end = i + 1 // include the period
			break
		}
	}

	if end > maxLen {
		// Truncate at the last space before maxLen to avoid cutting words.
		if idx := strings.LastIndexByte(s[:maxLen], ' '); idx > 0 {
			return s[:idx] + "..."
		}
		return s[:maxLen] + "..."
	}
	return strings.TrimSpace(s[:end])
}
