package main

import (
	"context"
	"github.com/14kear/qv-duplicate-report/internal/app"
	"github.com/14kear/qv-duplicate-report/internal/config"
	"github.com/14kear/qv-duplicate-report/internal/console"
	"github.com/14kear/qv-duplicate-report/utils"
	"github.com/14kear/sso-prettyslog/slogpretty/errors"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	cfg := config.MustLoad()

	log := utils.New(cfg.Env)

	application := app.NewApp(log, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	results, err := application.Reports.Scan(ctx)

	printer := console.NewPrinter(os.Stdout)
	for _, res := range results {
		printer.Duplicates(res.Source, res.Duplicates)
	}

	if err != nil {
		log.Error("check finished with errors", sl.Err(err))
		os.Exit(1)
	}
}
