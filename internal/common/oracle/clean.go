package oracle

import "strings"

// CleanResponse strips the decoration models wrap around JSON answers:
// reasoning preambles terminated by a </think> tag, and markdown code
// fences with an optional language marker.
func CleanResponse(raw string) string {
	text := strings.TrimSpace(raw)

	if idx := strings.LastIndex(text, "</think>"); idx != -1 {
		text = text[idx+len("</think>"):]
		text = strings.TrimSpace(text)
	}

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimPrefix(text, "```")
		if idx := strings.LastIndex(text, "```"); idx != -1 {
			text = text[:idx]
		}
		text = strings.TrimSpace(text)
	}

	return text
}
