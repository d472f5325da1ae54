// internal/game/buffer.go
//
// The guess buffer state machine for a single game.
// States: active (0..N letters typed) and solved (terminal).
// Transitions:
//   - AddLetter: append while the buffer is short of N letters.
//   - Backspace: drop the last letter, if any.
//   - Submit:    evaluate a full buffer, record the attempt, and either
//                end the game or clear the buffer for the next guess.
// Invalid transitions are silent no-ops; every transition returns the Frame
// the presentation layer should draw.

package game

import (
	"errors"
	"strings"

	"github.com/robalobadob/byoww/internal/input"
)

// ErrInvalidSolution is returned by New for an empty or non-alphabetic solution.
var ErrInvalidSolution = errors.New("game: solution must be one or more letters A-Z")

// New constructs a game for solution. The solution is upper-cased first.
func New(solution string) (*Game, error) {
	solution = strings.ToUpper(strings.TrimSpace(solution))
	if solution == "" {
		return nil, ErrInvalidSolution
	}
	for i := 0; i < len(solution); i++ {
		if idx(solution[i]) < 0 {
			return nil, ErrInvalidSolution
		}
	}
	return &Game{
		solution: solution,
		counts:   letterCount(solution),
		buffer:   make([]byte, 0, len(solution)),
	}, nil
}

// Apply routes a parsed input action to the matching transition.
// Actions of kind None leave the game untouched.
func (g *Game) Apply(a input.Action) Frame {
	switch a.Kind {
	case input.AddLetter:
		return g.AddLetter(a.Letter)
	case input.Backspace:
		return g.Backspace()
	case input.Submit:
		return g.Submit()
	}
	return g.Frame()
}

// AddLetter appends r (upper-cased) if the buffer has room.
// Non-letters are ignored.
func (g *Game) AddLetter(r rune) Frame {
	a := input.Letter(r)
	if g.solved || a.Kind != input.AddLetter || len(g.buffer) >= len(g.solution) {
		return g.Frame()
	}
	g.buffer = append(g.buffer, byte(a.Letter))
	return g.Frame()
}

// Backspace removes the last typed letter.
func (g *Game) Backspace() Frame {
	if g.solved || len(g.buffer) == 0 {
		return g.Frame()
	}
	g.buffer = g.buffer[:len(g.buffer)-1]
	return g.Frame()
}

// Submit evaluates the buffer once it holds exactly N letters.
// The returned Frame carries the new attempt; Frame.Solved reports whether
// this guess ended the game.
func (g *Game) Submit() Frame {
	if g.solved || len(g.buffer) != len(g.solution) {
		return g.Frame()
	}
	guess := string(g.buffer)
	att := Attempt{Guess: guess, Clues: evaluate(g.solution, g.counts, guess)}
	g.attempts = append(g.attempts, att)
	g.buffer = g.buffer[:0]
	if guess == g.solution {
		g.solved = true
	}

	f := g.Frame()
	f.Attempt = &Attempt{Guess: att.Guess, Clues: append([]Clue(nil), att.Clues...)}
	return f
}

// Frame reports the current buffer padded to the solution length.
func (g *Game) Frame() Frame {
	slots := make([]string, len(g.solution))
	for i := range slots {
		if i < len(g.buffer) {
			slots[i] = string(g.buffer[i])
		} else {
			slots[i] = " "
		}
	}
	return Frame{Slots: slots, Solved: g.solved}
}

// Snapshot returns a copy of everything a client needs to redraw the game.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Length:   len(g.solution),
		Slots:    g.Frame().Slots,
		Attempts: g.Attempts(),
		Solved:   g.solved,
	}
}

// Solution returns the uppercase solution word.
func (g *Game) Solution() string { return g.solution }

// Len is the solution length N.
func (g *Game) Len() int { return len(g.solution) }

// Buffer returns the letters typed so far.
func (g *Game) Buffer() string { return string(g.buffer) }

// Solved reports whether the game has ended.
func (g *Game) Solved() bool { return g.solved }

// Attempts returns a copy of the attempt history, oldest first.
func (g *Game) Attempts() []Attempt {
	out := make([]Attempt, len(g.attempts))
	for i, a := range g.attempts {
		out[i] = Attempt{Guess: a.Guess, Clues: append([]Clue(nil), a.Clues...)}
	}
	return out
}

// KeyHints returns the most informative clue seen so far for every guessed
// letter, for colouring an on-screen keyboard.
func (g *Game) KeyHints() map[rune]Clue {
	hints := make(map[rune]Clue)
	for _, a := range g.attempts {
		for i, c := range a.Clues {
			r := rune(a.Guess[i])
			if c.rank() > hints[r].rank() {
				hints[r] = c
			}
		}
	}
	return hints
}
