package profile

import "strings"

// NormalizePhone keeps the digits of raw and prefixes a single "+".
// ok is false when raw holds no digit at all.
func NormalizePhone(raw string) (phone string, ok bool) {
	var b strings.Builder
	b.Grow(len(raw) + 1)
	b.WriteByte('+')
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 1 {
		return "", false
	}
	return b.String(), true
}
