package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ridloal/hidayah-backoffice/internal/cli"
	"github.com/ridloal/hidayah-backoffice/internal/platform/config"
	"github.com/ridloal/hidayah-backoffice/internal/platform/logger"
	"github.com/ridloal/hidayah-backoffice/internal/platform/notify"
)

func main() {
	verbose := flag.Bool("v", false, "write diagnostic logs to stderr")
	flag.Parse()

	// Tabel ke stdout, notifikasi dan log ke stderr
	if *verbose {
		logger.SetOutput(os.Stderr)
	} else {
		logger.SetOutput(io.Discard)
	}
	if config.LoadDotEnv() {
		logger.Info("Loaded configuration from .env")
	}
	cfg := config.LoadClientConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := cli.New(cfg, os.Stdout, notify.NewWriterNotifier(os.Stderr))
	if err := app.Run(ctx, flag.Args()); err != nil {
		logger.Error("Command failed", err)
		stop()
		os.Exit(1)
	}
}
