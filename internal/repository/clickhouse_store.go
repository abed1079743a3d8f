package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	domrepo "github.com/yigiitcoskun/us-economic-insights/internal/domain/repository"
	pkgch "github.com/yigiitcoskun/us-economic-insights/pkg/clickhouse"
	applogger "github.com/yigiitcoskun/us-economic-insights/pkg/logger"
)

const observationChunk = 2000

// ClickHouseStore implements Storage and ReportSink for ClickHouse.
type ClickHouseStore struct {
	ch       *pkgch.Client
	db       *sql.DB
	database string
	l        *applogger.Logger
	now      func() time.Time
}

var (
	_ domrepo.Storage    = (*ClickHouseStore)(nil)
	_ domrepo.ReportSink = (*ClickHouseStore)(nil)
)

// NewClickHouseStore creates the store over an open client. An empty database
// name falls back to "econ".
func NewClickHouseStore(ch *pkgch.Client, database string) *ClickHouseStore {
	if database == "" {
		database = "econ"
	}
	return &ClickHouseStore{ch: ch, db: ch.DB(), database: database, now: time.Now}
}

// SetLogger injects a structured logger.
func (s *ClickHouseStore) SetLogger(l *applogger.Logger) { s.l = l }

// SchemaStatements returns the idempotent DDL for the store's tables.
func (s *ClickHouseStore) SchemaStatements() []string {
	return []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", s.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.analysis_runs (
    run_id String,
    generated_at DateTime64(3, 'UTC'),
    range_start Date,
    range_end Date,
    sentiment LowCardinality(String),
    risk LowCardinality(String),
    positive_votes UInt16,
    total_votes UInt16,
    signals UInt16,
    result String,
    report String
) ENGINE = ReplacingMergeTree
ORDER BY run_id`, s.database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.observations (
    code LowCardinality(String),
    date Date,
    value Float64,
    ingested_at DateTime64(3, 'UTC')
) ENGINE = ReplacingMergeTree(ingested_at)
ORDER BY (code, date)`, s.database),
	}
}

func (s *ClickHouseStore) Init(ctx context.Context) error {
	return s.ch.InitSchema(ctx, s.SchemaStatements())
}

func (s *ClickHouseStore) Name() string { return "clickhouse" }

// Save persists the run row and the observations it was computed from.
func (s *ClickHouseStore) Save(ctx context.Context, run *models.Run) error {
	if err := s.StoreRun(ctx, run); err != nil {
		return err
	}
	return s.StoreObservations(ctx, run.Snapshot)
}

func (s *ClickHouseStore) StoreRun(ctx context.Context, run *models.Run) error {
	if run == nil {
		return nil
	}
	payload, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("encode run %s: %w", run.ID, err)
	}
	q := fmt.Sprintf(`INSERT INTO %s.analysis_runs
    (run_id, generated_at, range_start, range_end, sentiment, risk, positive_votes, total_votes, signals, result, report)
    VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.database)
	res := run.Result
	_, err = s.db.ExecContext(ctx, q,
		run.ID,
		res.GeneratedAt.UTC(),
		run.RangeStart,
		run.RangeEnd,
		string(res.Sentiment.Label),
		string(res.Sentiment.Risk),
		res.Sentiment.PositiveVotes,
		res.Sentiment.TotalVotes,
		len(res.Signals),
		string(payload),
		run.Report,
	)
	if err != nil {
		if s.l != nil {
			s.l.Error("clickhouse store_run error",
				applogger.String("run_id", run.ID),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("store run: %w", err)
	}
	return nil
}

// StoreObservations inserts every observation of the snapshot in multi-row
// batches. Rows are written in code order.
func (s *ClickHouseStore) StoreObservations(ctx context.Context, snap models.Snapshot) error {
	codes := make([]string, 0, len(snap))
	for code := range snap {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	type row struct {
		code string
		obs  models.Observation
	}
	rows := make([]row, 0, 256)
	for _, code := range codes {
		for _, o := range snap[code].Observations {
			rows = append(rows, row{code: code, obs: o})
		}
	}
	if len(rows) == 0 {
		return nil
	}

	ingested := s.now().UTC()
	for start := 0; start < len(rows); start += observationChunk {
		end := start + observationChunk
		if end > len(rows) {
			end = len(rows)
		}
		values := make([]string, 0, end-start)
		args := make([]interface{}, 0, (end-start)*4)
		for _, r := range rows[start:end] {
			values = append(values, "(?, ?, ?, ?)")
			args = append(args, r.code, r.obs.Date, r.obs.Value, ingested)
		}
		q := fmt.Sprintf("INSERT INTO %s.observations (code, date, value, ingested_at) VALUES %s",
			s.database, strings.Join(values, ","))
		if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
			if s.l != nil {
				s.l.Error("clickhouse store_observations error",
					applogger.Int("rows", end-start),
					applogger.Error(err),
				)
			}
			return fmt.Errorf("store observations: %w", err)
		}
	}
	return nil
}

func (s *ClickHouseStore) Health(ctx context.Context) error {
	return s.ch.Health(ctx)
}

func (s *ClickHouseStore) Close() error {
	return nil // Managed by pkg
}
