// internal/cipher/rot13.go
//
// ROT13 letter substitution used to keep the solution word out of plain
// sight in shared links. The transform is its own inverse, so Encode and
// Decode are the same function under two names.

package cipher

import "strings"

// Encode rotates every ASCII letter 13 places, keeping its case.
// Anything that is not an ASCII letter passes through unchanged.
func Encode(s string) string {
	return strings.Map(rot13, s)
}

// Decode reverses Encode.
func Decode(s string) string {
	return strings.Map(rot13, s)
}

func rot13(r rune) rune {
	switch {
	case r >= 'A' && r <= 'Z':
		return 'A' + (r-'A'+13)%26
	case r >= 'a' && r <= 'z':
		return 'a' + (r-'a'+13)%26
	}
	return r
}
