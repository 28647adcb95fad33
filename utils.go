package fret

import "strings"

// toTok normalizes a free-form string into a lowercased token.
func toTok(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// trimV strips a single leading 'v'/'V' when present.
func trimV(s string) string {
	if hasLeadingV(s) {
		return s[1:]
	}

	return s
}

func hasLeadingV(s string) bool {
	return len(s) > 0 && (s[0] == 'v' || s[0] == 'V')
}

// numericIdent parses a SemVer numeric prerelease identifier:
// digits only, no leading zeros (except "0" itself).
func numericIdent(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}

		n = n*10 + int(c-'0')
	}

	return n, true
}
