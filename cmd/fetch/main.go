package main

import (
	"context"
	"flag"
	"github.com/14kear/qv-duplicate-report/internal/app"
	"github.com/14kear/qv-duplicate-report/internal/config"
	"github.com/14kear/qv-duplicate-report/internal/console"
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

	// election ids given on the command line replace the configured list
	ids := cfg.Elections
	if flag.NArg() > 0 {
		ids = flag.Args()
	}
	if len(ids) == 0 {
		log.Error("no elections to fetch")
		os.Exit(1)
	}

	log.Info("starting fetch", slog.String("env", cfg.Env), slog.Int("elections", len(ids)))

	application := app.NewApp(log, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcomes, err := application.Elections.FetchAll(ctx, ids)

	printer := console.NewPrinter(os.Stdout)
	for _, o := range outcomes {
		if o.Err != nil {
			printer.Skipped(o.ElectionID, o.Err)
			continue
		}
		printer.Election(o.Summary)
	}

	if err != nil {
		log.Error("fetch aborted", sl.Err(err))
		os.Exit(1)
	}

	log.Info("fetch finished")
}
