// Package repair extracts and decodes JSON payloads embedded in free-form
// text produced by the generation model. The model promises nothing beyond
// "likely contains one JSON object": output may be wrapped in markdown code
// fences, surrounded by prose, or poisoned with raw control characters that
// break strict JSON parsing. Everything here is pure; a payload either fully
// decodes into typed records or the whole call fails with a typed error.
package repair

import "strings"

// Extract locates the JSON object inside text and returns a cleaned slice
// ready for strict parsing. Returns ErrMalformedResponse when no object
// delimiters are present.
func Extract(text string) (string, error) {
	text = stripFences(text)

	start := strings.IndexByte(text, '{')
	end := strings.LastIndexByte(text, '}')
	if start == -1 || end == -1 || end < start {
		return "", ErrMalformedResponse
	}

	return sanitize(text[start : end+1]), nil
}

func stripFences(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	return strings.ReplaceAll(text, "```", "")
}

// sanitize replaces raw control characters with spaces so that
// structurally-valid JSON with unescaped control bytes inside string values
// still parses. Tab, LF and CR stay untouched, and escaped sequences pass
// through as-is so a legitimate `\n` or `\"` is never mangled.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if escaped {
			b.WriteByte(c)
			escaped = false
			continue
		}
		if c == '\\' {
			b.WriteByte(c)
			escaped = true
			continue
		}
		if c < 0x20 && c != '\t' && c != '\n' && c != '\r' {
			b.WriteByte(' ')
			continue
		}
		b.WriteByte(c)
	}

	return b.String()
}
