package util

import "strconv"

// ParseLeadingFloat parses the longest numeric prefix of s, so "2.1/2"
// yields 2.1 and "1/2" yields 1. Returns false when s has no numeric
// prefix at all.
func ParseLeadingFloat(s string) (float64, bool) {
	end := 0
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !seenDot {
			seenDot = true
			end++
			continue
		}
		break
	}
	// A bare trailing dot parses fine, but a lone dot is not a number.
	if end == 0 || (end == 1 && s[0] == '.') {
		return 0, false
	}
	parsed, err := strconv.ParseFloat(trimTrailingDot(s[:end]), 64)
	if err != nil {
		return 0, false
	}
	return parsed, true
}

func trimTrailingDot(s string) string {
	if len(s) > 1 && s[len(s)-1] == '.' {
		return s[:len(s)-1]
	}
	return s
}
