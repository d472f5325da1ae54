package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/byoww/internal/game"
	"github.com/robalobadob/byoww/internal/input"
)

func newModel(t *testing.T, word string) (Model, *game.Game) {
	t.Helper()
	g, err := game.New(word)
	require.NoError(t, err)
	return New(g), g
}

func send(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) []tea.Msg {
	var out []tea.Msg
	for _, r := range s {
		out = append(out, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return out
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func TestTypingAndBackspace(t *testing.T) {
	m, g := newModel(t, "CODE")

	m, _ = send(m, runes("co1")...)
	assert.Equal(t, "CO", g.Buffer())

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyBackspace})
	assert.Equal(t, "C", g.Buffer())

	// short submit does nothing
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Empty(t, g.Attempts())
	assert.False(t, m.Solved())
}

func TestSolveStopsInput(t *testing.T) {
	m, g := newModel(t, "CODE")

	msgs := append(runes("code"), tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(m, msgs...)
	assert.True(t, m.Solved())
	require.Len(t, g.Attempts(), 1)

	m, cmd := send(m, runes("x")...)
	assert.Nil(t, cmd)
	assert.Equal(t, "", g.Buffer())

	view := m.View()
	assert.Contains(t, view, SolvedMessage)
	assert.NotContains(t, view, input.SubmitGlyph)

	_, cmd = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestQuit(t *testing.T) {
	m, _ := newModel(t, "CODE")
	_, cmd := send(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestKeyAt(t *testing.T) {
	m, _ := newModel(t, "CODE")
	top := m.keyboardTop()

	tests := []struct {
		x, y int
		want string
		ok   bool
	}{
		{x: 1, y: top, want: input.BackspaceGlyph, ok: true},
		{x: 0, y: top + 1, want: "Q", ok: true},
		{x: 2, y: top + 1, want: "Q", ok: true},
		{x: 3, y: top + 1, ok: false}, // gap between keys
		{x: 4, y: top + 1, want: "W", ok: true},
		{x: 36, y: top + 1, want: "P", ok: true},
		{x: 40, y: top + 1, ok: false},
		{x: 2, y: top + 2, want: "A", ok: true},
		{x: 4, y: top + 3, want: "Z", ok: true},
		{x: 0, y: top + 4, want: input.SubmitGlyph, ok: true},
		{x: 0, y: top - 1, ok: false},
		{x: 0, y: top + 5, ok: false},
	}
	for _, tt := range tests {
		got, ok := m.keyAt(tt.x, tt.y)
		assert.Equal(t, tt.ok, ok, "(%d,%d)", tt.x, tt.y)
		assert.Equal(t, tt.want, got, "(%d,%d)", tt.x, tt.y)
	}
}

func TestClickOnScreenKeyboard(t *testing.T) {
	m, g := newModel(t, "AZ")
	top := m.keyboardTop()

	m, _ = send(m, click(2, top+2), click(4, top+3)) // A, Z
	assert.Equal(t, "AZ", g.Buffer())

	m, _ = send(m, click(0, top)) // ␡
	assert.Equal(t, "A", g.Buffer())
	m, _ = send(m, click(4, top+3), click(0, top+4)) // Z, ⏎
	assert.True(t, m.Solved())

	// releases and right clicks are ignored
	m2, g2 := newModel(t, "AZ")
	release := click(2, m2.keyboardTop()+2)
	release.Action = tea.MouseActionRelease
	send(m2, release)
	assert.Equal(t, "", g2.Buffer())
}

func TestKeyboardTopTracksAttempts(t *testing.T) {
	m, _ := newModel(t, "AB")
	before := m.keyboardTop()
	m, _ = send(m, append(runes("ba"), tea.KeyMsg{Type: tea.KeyEnter})...)
	assert.Equal(t, before+1, m.keyboardTop())

	// the first keyboard row really is where keyAt looks
	lines := strings.Split(m.View(), "\n")
	require.Greater(t, len(lines), m.keyboardTop())
	assert.Contains(t, lines[m.keyboardTop()], input.BackspaceGlyph)
	assert.Contains(t, lines[m.keyboardTop()+1], "Q")
}

func TestViewShowsAttemptsAndGuess(t *testing.T) {
	m, _ := newModel(t, "CRANE")
	m, _ = send(m, append(runes("train"), tea.KeyMsg{Type: tea.KeyEnter})...)
	m, _ = send(m, runes("cr")...)

	view := m.View()
	assert.Contains(t, view, "Guess the 5-letter word")
	assert.Contains(t, view, "T")
	assert.Contains(t, view, "C")
	assert.Contains(t, view, input.BackspaceGlyph)
	assert.Contains(t, view, input.SubmitGlyph)
}
