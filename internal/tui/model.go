// internal/tui/model.go
//
// Terminal presentation for a single puzzle.
//
// The model draws the attempt history, the current guess padded to the
// solution length, and an on-screen keyboard coloured by the clues seen so
// far. Keyboard input and mouse clicks on the on-screen keys both become
// input.Actions applied to the game. Once the game reports Solved, the
// model stops forwarding input and shows the solved message; only quit
// keys still work.

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/robalobadob/byoww/internal/game"
	"github.com/robalobadob/byoww/internal/input"
)

// SolvedMessage replaces the guess row and keyboard once solved.
const SolvedMessage = "Solved :)"

// Lines above the first attempt row: title and a blank line.
const headerLines = 2

// Model is the bubbletea model for one game.
type Model struct {
	game   *game.Game
	keys   keyMap
	help   help.Model
	styles Styles
	solved bool
}

// New builds a model around g.
func New(g *game.Game) Model {
	return Model{
		game:   g,
		keys:   defaultKeyMap(),
		help:   help.New(),
		styles: DefaultStyles(),
		solved: g.Solved(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Solved reports whether the game has ended.
func (m Model) Solved() bool { return m.solved }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		if m.solved {
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Delete):
			return m.apply(input.Action{Kind: input.Backspace}), nil
		case key.Matches(msg, m.keys.Submit):
			return m.apply(input.Action{Kind: input.Submit}), nil
		}
		return m.apply(input.Parse(msg.String())), nil

	case tea.MouseMsg:
		if m.solved || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if k, ok := m.keyAt(msg.X, msg.Y); ok {
			return m.apply(input.Parse(k)), nil
		}
	}
	return m, nil
}

func (m Model) apply(a input.Action) Model {
	if a.Kind == input.None {
		return m
	}
	f := m.game.Apply(a)
	m.solved = f.Solved
	return m
}

// View implements tea.Model.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render(fmt.Sprintf("Guess the %d-letter word", m.game.Len())))
	sb.WriteString("\n\n")

	for _, a := range m.game.Attempts() {
		cells := make([]string, len(a.Clues))
		for i, c := range a.Clues {
			cells[i] = m.styles.ForClue(c).Render(string(a.Guess[i]))
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}

	if m.solved {
		sb.WriteString("\n")
		sb.WriteString(m.styles.Divider.Render(strings.Repeat("─", m.rowWidth())))
		sb.WriteString("\n")
		sb.WriteString(m.styles.Message.Render(SolvedMessage))
		sb.WriteString("\n\n")
		sb.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.Quit}))
		return sb.String()
	}

	slots := m.game.Frame().Slots
	cells := make([]string, len(slots))
	for i, s := range slots {
		cells[i] = m.styles.Tile.Render(s)
	}
	sb.WriteString(strings.Join(cells, " "))
	sb.WriteString("\n")
	sb.WriteString(m.styles.Divider.Render(strings.Repeat("─", m.rowWidth())))
	sb.WriteString("\n\n")

	hints := m.game.KeyHints()
	for _, row := range keyboard() {
		sb.WriteString(strings.Repeat(" ", row.indent))
		cells := make([]string, len(row.keys))
		for i, k := range row.keys {
			var clue game.Clue
			if r := []rune(k); len(r) == 1 {
				clue = hints[r[0]]
			}
			cells[i] = m.styles.ForClue(clue).Render(k)
		}
		sb.WriteString(strings.Join(cells, " "))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// rowWidth is the printed width of one guess row.
func (m Model) rowWidth() int {
	return m.game.Len()*(keyWidth+1) - 1
}

// keyboardTop is the screen line of the first on-screen keyboard row.
// It must agree with the layout written by View.
func (m Model) keyboardTop() int {
	return headerLines + len(m.game.Attempts()) + 1 /* guess */ + 1 /* divider */ + 1 /* blank */
}

// keyAt maps a click position to the on-screen key under it.
func (m Model) keyAt(x, y int) (string, bool) {
	rows := keyboard()
	i := y - m.keyboardTop()
	if i < 0 || i >= len(rows) {
		return "", false
	}
	row := rows[i]
	col := x - row.indent
	if col < 0 || col%keyPitch >= keyWidth {
		return "", false
	}
	k := col / keyPitch
	if k >= len(row.keys) {
		return "", false
	}
	return row.keys[k], true
}

// Each key renders as one glyph with one cell of padding either side, and
// keys are separated by one space.
const (
	keyWidth = 3
	keyPitch = keyWidth + 1
)

type keyRow struct {
	indent int
	keys   []string
}

// keyboard is the on-screen layout: backspace, three letter rows, submit.
func keyboard() []keyRow {
	rows := []keyRow{{indent: 0, keys: []string{input.BackspaceGlyph}}}
	for i, letters := range input.Rows {
		keys := make([]string, 0, len(letters))
		for _, r := range letters {
			keys = append(keys, string(r))
		}
		rows = append(rows, keyRow{indent: i * 2, keys: keys})
	}
	return append(rows, keyRow{indent: 0, keys: []string{input.SubmitGlyph}})
}
