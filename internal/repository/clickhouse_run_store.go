package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"EdgeLab/internal/domain/models"
	domrepo "EdgeLab/internal/domain/repository"
	pkgch "EdgeLab/pkg/clickhouse"
	applogger "EdgeLab/pkg/logger"
)

// Schema statements for the run archive, applied idempotently at startup.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id String,
		ticker String,
		start_date String,
		end_date String,
		horizon Int32,
		threshold Float64,
		seed Int64,
		train_rows Int32,
		test_rows Int32,
		accuracy Float64,
		final_equity Float64,
		created_at DateTime
	) ENGINE=MergeTree ORDER BY (ticker, created_at)`,
	`CREATE TABLE IF NOT EXISTS equity_points (
		run_id String,
		ts DateTime,
		value Float64,
		signal Int8,
		period_return Float64
	) ENGINE=MergeTree ORDER BY (run_id, ts)`,
}

// CHRunStore implements RunStore backed by ClickHouse.
type CHRunStore struct {
	db *sql.DB
	l  *applogger.Logger
}

func NewCHRunStore(ch *pkgch.Client) *CHRunStore {
	return &CHRunStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHRunStore) SetLogger(l *applogger.Logger) { s.l = l }

// SaveRun archives a run summary plus its equity curve.
func (s *CHRunStore) SaveRun(ctx context.Context, run *models.RunResult) error {
	start := time.Now()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, ticker, start_date, end_date, horizon, threshold, seed,
			train_rows, test_rows, accuracy, final_equity, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Ticker, run.StartDate, run.EndDate, run.Horizon, run.Threshold, run.Seed,
		run.TrainRows, run.TestRows, run.Report.Accuracy, run.FinalEquity(), run.CreatedAt,
	)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse save_run insert error",
				applogger.String("run_id", run.ID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("save run: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin equity batch: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO equity_points (run_id, ts, value, signal, period_return) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("prepare equity batch: %w", err)
	}
	for i, p := range run.Equity {
		if _, err := stmt.ExecContext(ctx, run.ID, p.Timestamp, p.Value, int8(run.Signals[i]), run.PeriodReturns[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("append equity point: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit equity batch: %w", err)
	}

	if s.l != nil {
		s.l.Info("clickhouse save_run ok",
			applogger.String("run_id", run.ID),
			applogger.String("ticker", run.Ticker),
			applogger.Int("equity_points", len(run.Equity)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

var _ domrepo.RunStore = (*CHRunStore)(nil)
