package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"MediaShelf/internal/cli/commands"
	"MediaShelf/internal/config"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

func main() {
	// общая конфигурация (env + флаги)
	cfg := config.NewConfig()

	if cfg.Version {
		printVersion(cfg)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(commands.Dispatch(ctx, cfg, flag.Args()))
}

func printVersion(cfg *config.Config) {
	fmt.Printf("MediaShelf CLI\nVersion: %s\nBuild date: %s\n", version, buildDate)
	fmt.Printf("Server: %s\nToken file: %s\n", cfg.ServerURL, cfg.TokenFile)
}
