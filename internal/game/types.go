// internal/game/types.go
//
// Core type definitions for the guessing engine.
// Defines:
//   - Clue: per-letter result of a submitted guess.
//   - Attempt: one evaluated guess in a game's history.
//   - Frame: what a presentation adapter needs after every transition.
//   - Game: state for a single puzzle, from first key to solved.

package game

// Clue represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "correct": letter is in the solution at this position.
//   - "present": letter is in the solution elsewhere, and not all of its
//     occurrences are already accounted for.
//   - "absent":  neither.
type Clue string

const (
	Absent  Clue = "absent"
	Present Clue = "present"
	Correct Clue = "correct"
)

// rank orders clues by how much they reveal; used for keyboard hints.
func (c Clue) rank() int {
	switch c {
	case Correct:
		return 3
	case Present:
		return 2
	case Absent:
		return 1
	}
	return 0
}

// Attempt is a submitted guess and its clues, positionally aligned.
type Attempt struct {
	Guess string `json:"guess"`
	Clues []Clue `json:"clues"`
}

// Frame is the render contract handed to presentation adapters.
//
// Slots always has one entry per solution letter; unfilled slots hold " ".
// Attempt is non-nil only for the transition that evaluated a guess.
// Solved is true once the game has ended; adapters stop forwarding input.
type Frame struct {
	Slots   []string `json:"slots"`
	Attempt *Attempt `json:"attempt,omitempty"`
	Solved  bool     `json:"solved"`
}

// Snapshot is a full read-only view of a game, used by the JSON API.
type Snapshot struct {
	Length   int       `json:"length"`
	Slots    []string  `json:"slots"`
	Attempts []Attempt `json:"attempts"`
	Solved   bool      `json:"solved"`
}

// Game holds the state of a single puzzle.
// A Game is not safe for concurrent use; callers serialize transitions.
type Game struct {
	solution string    // uppercase A–Z, fixed at New
	counts   [26]int   // occurrences of each letter in solution
	buffer   []byte    // letters typed so far, len <= len(solution)
	attempts []Attempt // append-only history
	solved   bool      // terminal flag
}
