package export

import "strings"

// FileStem reduces name to letters, digits, '-', '_' and '.', turning spaces
// into '-'. Path separators are dropped, so the result never leaves its
// directory. An empty or dots-only result gives fallback.
func FileStem(name, fallback string) string {
	stem := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, strings.TrimSpace(name))
	if stem == "" || strings.Trim(stem, ".") == "" {
		return fallback
	}
	return stem
}
