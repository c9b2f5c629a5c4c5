package frame

import "strings"

// MatchColumns returns the frame's columns matching any of the provided
// patterns, in declaration order. Supports wildcard patterns:
//   - "prefix*" matches columns starting with "prefix"
//   - "*suffix" matches columns ending with "suffix"
//   - "*contains*" matches columns containing "contains"
//   - "exact" matches a column exactly
func (f *Frame) MatchColumns(patterns ...string) []string {
	var matched []string

	for _, name := range f.names {
		for _, pattern := range patterns {
			if matchesPattern(name, pattern) {
				matched = append(matched, name)
				break
			}
		}
	}

	return matched
}

// matchesPattern checks if a column name matches a wildcard pattern.
func matchesPattern(name, pattern string) bool {
	// No wildcard - exact match
	if !strings.Contains(pattern, "*") {
		return name == pattern
	}

	// *contains* - contains match
	if strings.HasPrefix(pattern, "*") && strings.HasSuffix(pattern, "*") {
		substr := strings.Trim(pattern, "*")
		return strings.Contains(name, substr)
	}

	// *suffix - ends with match
	if strings.HasPrefix(pattern, "*") {
		suffix := strings.TrimPrefix(pattern, "*")
		return strings.HasSuffix(name, suffix)
	}

	// prefix* - starts with match
	if strings.HasSuffix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		return strings.HasPrefix(name, prefix)
	}

	return false
}
