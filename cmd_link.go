package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/robalobadob/byoww/internal/challenge"
)

func newLinkCmd(a *app) *cobra.Command {
	var base string
	cmd := &cobra.Command{
		Use:   "link <WORD>",
		Short: "Print a shareable link for a word",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if base == "" {
				base = a.cfg.PublicURL
			}
			if base == "" {
				base = "http://localhost:" + a.cfg.Port + "/"
			}
			word := strings.ToUpper(strings.TrimSpace(args[0]))
			link, err := challenge.Link(base, word)
			if err != nil {
				return fmt.Errorf("%q: %w", args[0], err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), link)
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", "", "base URL for the link (default: public_url or localhost)")
	return cmd
}
