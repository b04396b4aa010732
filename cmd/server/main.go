package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/billshare/bill-engine/internal/api"
	"github.com/billshare/bill-engine/internal/billtext"
	"github.com/billshare/bill-engine/internal/clock"
	"github.com/billshare/bill-engine/internal/config"
	"github.com/billshare/bill-engine/internal/obs"
	"github.com/billshare/bill-engine/internal/renderer"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := obs.NewLogger(cfg.LogFormat, cfg.LogLevel)
	clk := clock.SystemClock{}

	rend := renderer.New(renderer.Options{
		PayeeID:   cfg.UPIPayeeID,
		PayeeName: cfg.UPIPayeeName,
		Tagline:   cfg.BusinessTagline,
		Website:   cfg.BusinessWebsite,
	}, clk, log)

	formatter := billtext.New(clk)

	server := api.NewServer(rend, formatter, clk, log, cfg.PublicOrigin)

	addr := "0.0.0.0:" + cfg.Port
	log.Info().
		Str("version", Version).
		Str("addr", addr).
		Str("origin", cfg.PublicOrigin).
		Msg("bill engine starting")

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Run(addr)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatal().Err(err).Msg("server error")
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	}
}
