package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/byoww/internal/game"
)

// Styles holds the lipgloss styles used to draw tiles and keys.
type Styles struct {
	Title   lipgloss.Style
	Tile    lipgloss.Style // typed or untyped letter, no clue yet
	Correct lipgloss.Style
	Present lipgloss.Style
	Absent  lipgloss.Style
	Message lipgloss.Style
	Divider lipgloss.Style
}

// DefaultStyles mirrors the usual green / yellow / grey tile colours.
func DefaultStyles() Styles {
	tile := lipgloss.NewStyle().Padding(0, 1).Bold(true)
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true),
		Tile:    tile.Background(lipgloss.AdaptiveColor{Light: "#e4e4e4", Dark: "#3a3a3c"}),
		Correct: tile.Background(lipgloss.Color("#6aaa64")).Foreground(lipgloss.Color("#ffffff")),
		Present: tile.Background(lipgloss.Color("#c9b458")).Foreground(lipgloss.Color("#ffffff")),
		Absent:  tile.Background(lipgloss.Color("#787c7e")).Foreground(lipgloss.Color("#ffffff")),
		Message: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6aaa64")),
		Divider: lipgloss.NewStyle().Faint(true),
	}
}

// ForClue picks the tile style for c; an empty clue means "not yet known".
func (s Styles) ForClue(c game.Clue) lipgloss.Style {
	switch c {
	case game.Correct:
		return s.Correct
	case game.Present:
		return s.Present
	case game.Absent:
		return s.Absent
	}
	return s.Tile
}
