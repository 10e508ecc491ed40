package planner

import (
	"encoding/json"
	"strings"
)

// Extract pulls the first balanced JSON object out of raw model text.
// Markdown fences are dropped and trailing commas before a closing bracket
// are repaired before parsing.
func Extract(raw string) (map[string]any, error) {
	text := stripFences(strings.TrimSpace(raw))

	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil, &ExtractionError{Reason: "no JSON object found"}
	}
	end := findMatchingBrace(text, start)
	if end < 0 {
		return nil, &ExtractionError{Reason: "unbalanced JSON"}
	}

	candidate := stripTrailingCommas(text[start : end+1])

	var obj map[string]any
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, &ExtractionError{Reason: "invalid JSON", Err: err}
	}
	return obj, nil
}

func stripFences(s string) string {
	if strings.HasPrefix(s, "```") {
		s = s[3:]
		// optional language tag up to the first newline
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			tag := strings.TrimSpace(s[:nl])
			if !strings.ContainsAny(tag, "{[") {
				s = s[nl+1:]
			}
		}
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// findMatchingBrace returns the index of the brace closing the one at start,
// or -1. Braces inside string literals are ignored.
func findMatchingBrace(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			b.WriteByte(c)
			continue
		}
		if c == '"' {
			inString = true
			b.WriteByte(c)
			continue
		}
		if c == ',' {
			j := i + 1
			for j < len(s) && isJSONSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == '}' || s[j] == ']') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
