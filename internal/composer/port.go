package composer

import (
	"strconv"
	"strings"
	"unicode"
)

// ParsePort converts the port field to the wire value. A blank field means
// "let the backend choose" and yields nil. Otherwise the leading integer is
// used ("3000", " 42", "8080abc", "12.7" parse; "abc" does not) and input
// without one yields nil.
func ParsePort(s string) *int {
	if s == "" {
		return nil
	}
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return nil
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return nil
	}
	return &n
}
