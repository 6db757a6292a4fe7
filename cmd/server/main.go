// Package main - Entry point for the bandwidth-cost API server
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"bandwidth-cost/api"
	"bandwidth-cost/core/catalog"
	"bandwidth-cost/core/pricing"
	"bandwidth-cost/internal/config"
	"bandwidth-cost/internal/logging"
)

const version = "0.1.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", "", "Server address (default from config)")
	cfgPath := flag.String("config", config.DefaultPath(), "Config file")
	plans := flag.String("plans", "", "HCL plan catalog")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *plans != "" {
		cfg.Pricing.PlansFile = *plans
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		return err
	}
	defer logging.Sync()

	c := catalog.Default()
	if cfg.Pricing.PlansFile != "" {
		if c, err = catalog.LoadFile(cfg.Pricing.PlansFile); err != nil {
			return err
		}
	}

	apiServer := api.NewServer(version, pricing.NewEngine(c))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("Bandwidth cost server starting",
		zap.String("version", version),
		zap.String("api", "http://localhost"+cfg.Server.Addr+"/api"),
		zap.Int("plans", c.Len()),
	)

	return api.Serve(ctx, &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      apiServer.Mount("/api"),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	})
}
