package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/byoww/internal/config"
	"github.com/robalobadob/byoww/internal/httpserver"
	"github.com/robalobadob/byoww/internal/results"
	"github.com/robalobadob/byoww/internal/store"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the browser game and the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var res httpserver.Results
			if cfg.DBPath != "" {
				rs, err := results.Open(ctx, cfg.DBPath)
				if err != nil {
					return err
				}
				defer rs.Close()
				res = rs
				log.Info().Str("path", cfg.DBPath).Msg("results log enabled")
			}

			if cfg.SessionSecret == config.DevSecret {
				log.Warn().Msg("SESSION_SECRET not set; using the development secret")
			}

			srv, err := httpserver.New(store.NewMemoryStore(), res, httpserver.Options{
				PublicURL:     cfg.PublicURL,
				ClientOrigin:  cfg.ClientOrigin,
				SessionSecret: cfg.SessionSecret,
				SessionTTL:    cfg.SessionTTL,
				Secure:        strings.HasPrefix(cfg.PublicURL, "https://"),
			})
			if err != nil {
				return fmt.Errorf("build server: %w", err)
			}

			log.Info().Str("addr", cfg.Addr()).Msg("starting byoww server")
			if err := srv.Run(ctx, cfg.Addr()); err != nil {
				return fmt.Errorf("server exited: %w", err)
			}
			log.Info().Msg("server stopped")
			return nil
		},
	}

	cmd.Flags().String("port", "", "port to listen on")
	cmd.Flags().String("db", "", "sqlite file for the results log (disabled if empty)")
	cmd.Flags().String("public-url", "", "base URL used in generated links")
	_ = a.v.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = a.v.BindPFlag("db_path", cmd.Flags().Lookup("db"))
	_ = a.v.BindPFlag("public_url", cmd.Flags().Lookup("public-url"))

	return cmd
}
