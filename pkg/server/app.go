package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"EdgeLab/internal/domain/models"
	drepo "EdgeLab/internal/domain/repository"
	"EdgeLab/internal/handler/api"
	"EdgeLab/internal/saver"
	"EdgeLab/internal/service/chart"
	"EdgeLab/internal/usecase"
	"EdgeLab/pkg/config"
	xhttp "EdgeLab/pkg/http"
	applogger "EdgeLab/pkg/logger"
)

// App encapsulates one experiment: run the pipeline, write the report,
// chart and exports, archive the run, and optionally keep serving the
// results until interrupted.
type App struct {
	cfg      *config.Config
	l        *applogger.Logger
	pipeline *usecase.Pipeline
	store    drepo.RunStore // nil when archiving is disabled
	handler  *api.RunsEchoHandler
}

// New creates a new App instance with all dependencies.
func New(cfg *config.Config, l *applogger.Logger, pipeline *usecase.Pipeline, store drepo.RunStore, handler *api.RunsEchoHandler) *App {
	return &App{cfg: cfg, l: l, pipeline: pipeline, store: store, handler: handler}
}

// Run executes the pipeline once and publishes its outputs. With the
// results server enabled it then blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	run, ds, err := a.pipeline.Run(ctx)
	if err != nil {
		return err
	}

	// the textual report is a primary output, print it as-is
	fmt.Println(run.Report.Text)

	if err := a.writeOutputs(run, ds); err != nil {
		return err
	}

	if a.store != nil {
		if err := a.store.SaveRun(ctx, run); err != nil {
			a.l.Error("run archive failed", applogger.Error(err))
		}
	}

	if !a.cfg.Server.Enabled {
		return nil
	}
	return a.serve(ctx, run)
}

func (a *App) writeOutputs(run *models.RunResult, ds *models.Dataset) error {
	dir := a.cfg.Export.Dir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	chartPath := filepath.Join(dir, "equity.html")
	if err := chart.RenderFile(run, chartPath); err != nil {
		return err
	}
	a.l.Info("equity chart written", applogger.String("path", chartPath))

	dsRows := saver.DatasetRows(ds)
	eqRows := saver.EquityRows(run)
	for _, format := range a.cfg.Export.Formats {
		s, err := saver.ForFormat(format)
		if err != nil {
			return err
		}
		dsPath := filepath.Join(dir, "dataset."+s.Extension())
		if err := s.SaveDataset(dsRows, dsPath); err != nil {
			return fmt.Errorf("export dataset %s: %w", format, err)
		}
		eqPath := filepath.Join(dir, "equity."+s.Extension())
		if err := s.SaveEquity(eqRows, eqPath); err != nil {
			return fmt.Errorf("export equity %s: %w", format, err)
		}
		a.l.Info("dataset exported",
			applogger.String("format", format),
			applogger.String("dataset", dsPath),
			applogger.String("equity", eqPath),
		)
	}
	return nil
}

func (a *App) serve(ctx context.Context, run *models.RunResult) error {
	a.handler.SetRun(run)

	opts := []xhttp.ServerOption{
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	}
	if a.cfg.Metrics.Enabled {
		opts = append(opts, xhttp.WithMetricsPath(a.cfg.Metrics.Path))
	}
	srv := xhttp.NewServer(a.handler, opts...)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("start results server: %w", err)
	}
	a.l.Info("results server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sigCh:
		a.l.Info("shutting down", applogger.String("signal", s.String()))
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), srv.ShutdownTimeout())
	defer cancel()
	return srv.Stop(shutdownCtx)
}
