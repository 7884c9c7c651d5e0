package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-match-backend/config"
	"go-match-backend/internal/cli"
	"go-match-backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	// stdout carries the JSON results
	log := logger.New(os.Stderr, cfg.LogLevel)

	if err := cli.Execute(ctx, cfg, log, os.Args[1:]); err != nil {
		log.Error("matchctl failed", "error", err)
		os.Exit(1)
	}
}
