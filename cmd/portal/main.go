package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lesvieux/portal/internal/buildinfo"
	"github.com/lesvieux/portal/internal/cli"
	"github.com/lesvieux/portal/internal/config"
	"github.com/lesvieux/portal/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()

	level := slog.LevelWarn
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	log := logging.NewTextLogger(os.Stderr, level)

	app := cli.NewApp(cfg, log)
	app.Run(ctx)

}
