package cmd

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bandwidth-cost/api"
	"bandwidth-cost/internal/config"
	"bandwidth-cost/internal/logging"
)

var serveAddr string

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the pricing API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		addr := cfg.Server.Addr
		if serveAddr != "" {
			addr = serveAddr
		}

		engine, err := newEngine()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		logging.Info("Starting server",
			zap.String("addr", addr),
			zap.Int("plans", engine.Catalog().Len()),
		)

		return api.NewServer(version, engine).ListenAndServe(ctx, addr,
			time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
			time.Duration(cfg.Server.WriteTimeoutSeconds)*time.Second,
		)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}
