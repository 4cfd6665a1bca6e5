// ABOUTME: HTTP serve command
// ABOUTME: Starts the JSON readout API with graceful shutdown on SIGINT/SIGTERM

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/maxboss2005/item-radar/internal/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP readout API",
	Long: `Serve item and proximity readouts over HTTP.

Endpoints include item listings, per-item proximity evaluation,
GeoJSON tracks, and Prometheus metrics on /metrics.

Examples:
  itemradar serve
  itemradar serve --addr 127.0.0.1:9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		server := httpapi.New(repo)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			<-sigCh
			cancel()
		}()

		return server.ListenAndServe(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "listen address")

	rootCmd.AddCommand(serveCmd)
}
