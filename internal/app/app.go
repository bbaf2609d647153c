package app

import (
	"github.com/14kear/qv-duplicate-report/internal/client/qv"
	"github.com/14kear/qv-duplicate-report/internal/config"
	"github.com/14kear/qv-duplicate-report/internal/services/election"
	"github.com/14kear/qv-duplicate-report/internal/services/report"
	"github.com/14kear/qv-duplicate-report/internal/storage/files"
	"log/slog"
	"time"
)

type App struct {
	Elections *election.Service
	Reports   *report.Service
}

func NewApp(log *slog.Logger, cfg *config.Config) *App {
	storage, err := files.New(cfg.DataDir(), cfg.ReportDir())
	if err != nil {
		panic(err)
	}

	client := qv.NewClient(cfg.API.BaseURL, cfg.API.Timeout, cfg.API.Retries, cfg.API.RetryInterval)

	electionService := election.NewService(log, client, storage, time.Now)
	reportService := report.NewService(log, storage, report.NewGenerator(time.Now), time.Now)

	return &App{
		Elections: electionService,
		Reports:   reportService,
	}
}
