// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/openplates/platewatch/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lookup pipeline over HTTP",
	Long: `Serve exposes the pipeline at POST /api/v1/lookups, accepting the
canonical message shape {text, requester_id, source_channel} and returning
the chunked response. Transport layers (bots, schedulers) post messages
here instead of linking the pipeline directly.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	log := newLogger(cmd)
	p, store, err := newPipeline(log)
	if err != nil {
		return err
	}
	defer store.Close()

	cfg := loadConfig().Server
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.Addr = addr
	}

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	return server.NewHandler(p, log).Router(cfg).Run(cfg.Addr)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, :8080)")

	rootCmd.AddCommand(serveCmd)
}
