package llm

import "strings"

// ExtractJSON pulls a JSON payload out of a free-text completion. Models
// wrap JSON in markdown fences, prepend prose, or trail explanations; this
// returns the first fenced block if present, otherwise the outermost balanced
// object or array found in the text. When nothing JSON-like is found the
// input is returned as-is and left to the caller's decoder to reject.
func ExtractJSON(response string) string {
	response = strings.TrimSpace(response)
	if response == "" {
		return ""
	}

	if fenced, ok := extractFenced(response); ok {
		return fenced
	}

	if strings.HasPrefix(response, "{") || strings.HasPrefix(response, "[") {
		return response
	}

	// Scan from whichever bracket appears first so an array of objects is
	// not mistaken for its first element.
	objStart := strings.IndexByte(response, '{')
	arrStart := strings.IndexByte(response, '[')
	if arrStart >= 0 && (objStart < 0 || arrStart < objStart) {
		if arr, ok := extractBalanced(response, '[', ']'); ok {
			return arr
		}
	}
	if obj, ok := extractBalanced(response, '{', '}'); ok {
		return obj
	}

	return response
}

// extractFenced returns the contents of the first ``` or ```json code fence.
func extractFenced(s string) (string, bool) {
	start := strings.Index(s, "```")
	if start < 0 {
		return "", false
	}
	rest := s[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		// Drop a language tag like "json" on the fence line.
		first := strings.TrimSpace(rest[:nl])
		if first == "" || !strings.ContainsAny(first, "{[") {
			rest = rest[nl+1:]
		}
	}
	end := strings.Index(rest, "```")
	if end < 0 {
		return "", false
	}
	content := strings.TrimSpace(rest[:end])
	if content == "" {
		return "", false
	}
	return content, true
}

// extractBalanced scans for the outermost balanced open/close pair starting
// at the first occurrence of open. Nested pairs are tolerated.
func extractBalanced(s string, open, close byte) (string, bool) {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
