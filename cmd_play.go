package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/byoww/internal/challenge"
	"github.com/robalobadob/byoww/internal/game"
	"github.com/robalobadob/byoww/internal/tui"
)

func newPlayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "play <link-or-code>",
		Short: "Play a shared puzzle in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := gameFromArg(args[0])
			if err != nil {
				return err
			}

			closeLog, err := redirectLog(a.cfg.LogFile)
			if err != nil {
				return err
			}
			defer closeLog()
			log.Debug().Str("solution", g.Solution()).Msg("setting up with solution")

			p := tea.NewProgram(tui.New(g),
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(cmd.Context()),
			)
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("run terminal ui: %w", err)
			}
			if m, ok := final.(tui.Model); ok && m.Solved() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s in %d guesses\n", tui.SolvedMessage, len(g.Attempts()))
			}
			return nil
		},
	}
}

// gameFromArg starts a game from a shared link or a bare code.
func gameFromArg(arg string) (*game.Game, error) {
	solution, ok := challenge.Parse(arg)
	if !ok {
		return nil, fmt.Errorf("no puzzle found in %q", arg)
	}
	return game.New(solution)
}

// redirectLog keeps log output off the terminal while the UI owns it.
func redirectLog(path string) (func(), error) {
	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}
