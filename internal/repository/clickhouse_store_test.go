package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigiitcoskun/us-economic-insights/internal/domain/models"
	pkgch "github.com/yigiitcoskun/us-economic-insights/pkg/clickhouse"
)

func newMockStore(t *testing.T) (*ClickHouseStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	s := NewClickHouseStore(pkgch.NewClientFromDB(db), "")
	s.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	return s, mock
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func TestClickHouseStoreInit(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE DATABASE IF NOT EXISTS econ")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS econ.analysis_runs")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS econ.observations")).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Init(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClickHouseStoreInitFailure(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("CREATE DATABASE").WillReturnError(errors.New("denied"))

	err := s.Init(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "denied")
}

func TestStoreObservationsBatchesInCodeOrder(t *testing.T) {
	s, mock := newMockStore(t)
	ingested := s.now().UTC()
	snap := models.Snapshot{
		"UNRATE":   {Code: "UNRATE", Observations: []models.Observation{{Date: day(2024, 1, 1), Value: 3.7}}},
		"FEDFUNDS": {Code: "FEDFUNDS", Observations: []models.Observation{{Date: day(2024, 1, 1), Value: 5.33}, {Date: day(2024, 2, 1), Value: 5.33}}},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO econ.observations (code, date, value, ingested_at) VALUES (?, ?, ?, ?),(?, ?, ?, ?),(?, ?, ?, ?)")).
		WithArgs(
			"FEDFUNDS", day(2024, 1, 1), 5.33, ingested,
			"FEDFUNDS", day(2024, 2, 1), 5.33, ingested,
			"UNRATE", day(2024, 1, 1), 3.7, ingested,
		).
		WillReturnResult(sqlmock.NewResult(0, 3))

	require.NoError(t, s.StoreObservations(context.Background(), snap))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreObservationsEmptySnapshot(t *testing.T) {
	s, mock := newMockStore(t)
	require.NoError(t, s.StoreObservations(context.Background(), models.Snapshot{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveWritesRunThenObservations(t *testing.T) {
	s, mock := newMockStore(t)
	run := &models.Run{
		ID:         "20240601T120000Z",
		RangeStart: day(2023, 6, 1),
		RangeEnd:   day(2024, 6, 1),
		Result: models.AnalysisResult{
			GeneratedAt: s.now(),
			Sentiment:   models.SentimentResult{Label: models.SentimentPositive, Risk: models.RiskLow, PositiveVotes: 3, TotalVotes: 4},
			Signals:     []models.Signal{{Action: models.ActionBuy, Text: "x", Rule: "policy_rate"}},
		},
		Report:   "report",
		Snapshot: models.Snapshot{"UNRATE": {Code: "UNRATE", Observations: []models.Observation{{Date: day(2024, 5, 1), Value: 4.0}}}},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO econ.analysis_runs")).
		WithArgs(run.ID, s.now(), run.RangeStart, run.RangeEnd, string(models.SentimentPositive), string(models.RiskLow), 3, 4, 1, sqlmock.AnyArg(), "report").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO econ.observations")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, s.Save(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
	assert.Equal(t, "clickhouse", s.Name())
}

func TestSaveStopsOnRunError(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO econ.analysis_runs").WillReturnError(errors.New("boom"))

	err := s.Save(context.Background(), &models.Run{ID: "r1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store run")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClickHouseStoreHealth(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectPing()
	assert.NoError(t, s.Health(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
