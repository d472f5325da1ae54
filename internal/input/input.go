// internal/input/input.go
//
// Maps raw input (browser key names, terminal keys, on-screen keyboard
// controls) onto the three buffer transitions. Every input surface goes
// through Parse so they all agree on what a key means.

package input

import (
	"strings"
	"unicode/utf8"
)

// Kind is the buffer transition an Action asks for.
type Kind int

const (
	None Kind = iota
	AddLetter
	Backspace
	Submit
)

func (k Kind) String() string {
	switch k {
	case AddLetter:
		return "add_letter"
	case Backspace:
		return "backspace"
	case Submit:
		return "submit"
	}
	return "none"
}

// Action is one parsed input event. Letter is set (uppercase) only for AddLetter.
type Action struct {
	Kind   Kind
	Letter rune
}

// Glyphs used by the on-screen keyboard controls.
const (
	BackspaceGlyph = "␡"
	SubmitGlyph    = "⏎"
)

// Rows is the on-screen keyboard layout. The backspace control goes above
// the first row and the submit control below the last.
var Rows = []string{
	"QWERTYUIOP",
	"ASDFGHJKL",
	"ZXCVBNM",
}

// Letter returns an AddLetter action for r, or a None action if r is not
// an ASCII letter.
func Letter(r rune) Action {
	switch {
	case r >= 'a' && r <= 'z':
		return Action{Kind: AddLetter, Letter: r - 'a' + 'A'}
	case r >= 'A' && r <= 'Z':
		return Action{Kind: AddLetter, Letter: r}
	}
	return Action{}
}

// Parse maps a key name to an Action.
//
// Accepted: "Backspace" and "Enter" (any case), the on-screen glyphs, and
// any single ASCII letter. Everything else yields Kind None.
func Parse(key string) Action {
	switch {
	case strings.EqualFold(key, "Backspace"), key == BackspaceGlyph:
		return Action{Kind: Backspace}
	case strings.EqualFold(key, "Enter"), key == SubmitGlyph:
		return Action{Kind: Submit}
	}
	if utf8.RuneCountInString(key) != 1 {
		return Action{}
	}
	r, _ := utf8.DecodeRuneInString(key)
	return Letter(r)
}
