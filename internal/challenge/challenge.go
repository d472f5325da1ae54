// internal/challenge/challenge.go
//
// Challenge words and the links that carry them.
//
// Responsibilities:
//   - Validate author-entered words (uppercase A–Z only).
//   - Filter live author input, keeping the last valid value.
//   - Build shareable links with the encoded word in the "c" parameter.
//   - Recover the solution word from a link, a query string, or a bare code.
//
// The word is only obscured (ROT13), not protected; anyone holding the link
// can read it back.

package challenge

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/robalobadob/byoww/internal/cipher"
)

// Param is the query parameter that carries the encoded solution.
const Param = "c"

// ErrInvalidWord is returned when a word is not one or more letters A–Z.
var ErrInvalidWord = errors.New("challenge: word must be uppercase letters A-Z")

// Valid reports whether word is non-empty and consists only of A–Z.
func Valid(word string) bool {
	return word != "" && isUpperAlpha(word)
}

// Filter applies author-side validation to live input.
// The input is upper-cased; if the result is empty or valid it replaces
// prev, otherwise prev is kept.
func Filter(prev, in string) string {
	up := strings.ToUpper(in)
	if up == "" || Valid(up) {
		return up
	}
	return prev
}

// Code returns the encoded form of word as it appears in a link.
func Code(word string) string {
	return cipher.Encode(word)
}

// Link builds a shareable URL for word on top of base.
// Any query and fragment already on base are discarded.
func Link(base, word string) (string, error) {
	if !Valid(word) {
		return "", ErrInvalidWord
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}
	u.RawQuery = url.Values{Param: {Code(word)}}.Encode()
	u.Fragment = ""
	u.RawFragment = ""
	return u.String(), nil
}

// FromQuery extracts the solution from parsed query values.
// ok is false when the parameter is missing or does not decode to letters.
func FromQuery(q url.Values) (solution string, ok bool) {
	return FromCode(q.Get(Param))
}

// FromCode decodes an encoded solution and upper-cases it.
func FromCode(code string) (solution string, ok bool) {
	if code == "" {
		return "", false
	}
	solution = strings.ToUpper(cipher.Decode(code))
	if !Valid(solution) {
		return "", false
	}
	return solution, true
}

// Parse accepts either a full link or a bare code and returns the solution.
func Parse(raw string) (solution string, ok bool) {
	raw = strings.TrimSpace(raw)
	if !strings.ContainsAny(raw, "?/=") {
		return FromCode(raw)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	return FromQuery(u.Query())
}

// isUpperAlpha reports whether s is all uppercase ASCII letters.
func isUpperAlpha(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}
