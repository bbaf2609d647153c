package main

import (
	"context"
	"github.com/14kear/qv-duplicate-report/internal/app"
	"github.com/14kear/qv-duplicate-report/internal/config"
	"github.com/14kear/qv-duplicate-report/utils"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := config.MustLoad()

	log := utils.New(cfg.Env)
	log.Info("starting report run", slog.String("env", cfg.Env), slog.String("data_dir", cfg.DataDir()))

	application := app.NewApp(log, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := application.Reports.Run(ctx)
	if err != nil {
		log.Error("report run finished with errors", slog.Int("files", len(results)), sl.Err(err))
		os.Exit(1)
	}

	log.Info("report run finished", slog.Int("files", len(results)))
}
