package utils

import "strings"

// ExtractJSONBlock recovers the payload from a model response that may wrap
// its JSON in a markdown code fence (``` or ```json). When no fence is
// present the input is returned unchanged; absence of a fence is not an error.
func ExtractJSONBlock(raw string) string {
	s := strings.TrimSpace(raw)

	start := strings.Index(s, "```")
	if start == -1 {
		return raw
	}
	rest := s[start+3:]
	if nl := strings.IndexByte(rest, '\n'); nl != -1 {
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || strings.EqualFold(tag, "json") {
			rest = rest[nl+1:]
		} else {
			// Fence tagged with something else entirely; leave input alone.
			return raw
		}
	} else {
		return raw
	}
	end := strings.Index(rest, "```")
	if end == -1 {
		return raw
	}
	return strings.TrimSpace(rest[:end])
}
