// internal/game/engine.go
//
// Guess evaluation.
// Responsibilities:
//   - Count letter occurrences in a solution.
//   - Score a full-length guess with the two-pass apportioning algorithm,
//     so repeated letters only earn as many clues as the solution has.

package game

import "fmt"

// Evaluate compares guess against solution and returns one clue per position.
//
// Both strings must be uppercase and the same length; a length mismatch is a
// programming error and panics.
//
// Pass 1:
//   - Mark exact matches Correct and count them per letter.
//
// Pass 2, left to right over the remaining positions:
//   - A letter is Present while (Present clues already given for it) +
//     (Correct matches for it) is below its count in the solution.
//   - Otherwise it is Absent.
func Evaluate(solution, guess string) []Clue {
	return evaluate(solution, letterCount(solution), guess)
}

func evaluate(solution string, needed [26]int, guess string) []Clue {
	n := len(solution)
	if len(guess) != n {
		panic(fmt.Sprintf("game: evaluate %d-letter guess against %d-letter solution", len(guess), n))
	}
	out := make([]Clue, n)
	var correct, clued [26]int

	// First pass: exact matches.
	for i := 0; i < n; i++ {
		if guess[i] == solution[i] {
			out[i] = Correct
			if j := idx(guess[i]); j >= 0 {
				correct[j]++
			}
		}
	}

	// Second pass: apportion the leftover occurrences.
	for i := 0; i < n; i++ {
		if out[i] == Correct {
			continue
		}
		j := idx(guess[i])
		if j >= 0 && clued[j]+correct[j] < needed[j] {
			out[i] = Present
			clued[j]++
		} else {
			out[i] = Absent
		}
	}
	return out
}

// letterCount tallies A–Z occurrences in s.
func letterCount(s string) [26]int {
	var counts [26]int
	for i := 0; i < len(s); i++ {
		if j := idx(s[i]); j >= 0 {
			counts[j]++
		}
	}
	return counts
}

// idx maps an uppercase ASCII letter to 0..25, anything else to -1.
func idx(b byte) int {
	if b < 'A' || b > 'Z' {
		return -1
	}
	return int(b - 'A')
}
