package main

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"energy_scheduler/internal/scenario"
	"energy_scheduler/internal/store"
	"energy_scheduler/internal/ws"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve optimizations over WebSocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, file, err := loadSetup()
			if err != nil {
				return err
			}

			runner := scenario.NewRunner(cfg, file, log.Logger)
			hub := ws.NewHub(log.Logger)
			runs := store.New()
			handler := ws.NewHandler(hub, runner, runs, cfg.CapKW, cfg.PanelCount, log.Logger)

			mux := http.NewServeMux()
			mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprintln(w, "ok")
			})
			mux.Handle("/ws", handler)

			log.Info().Str("addr", addr).Msg("starting server")
			return http.ListenAndServe(addr, mux)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}
