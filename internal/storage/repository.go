package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"nestegg/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const instrumentColumns = `name, kind, principal, annual_rate, start_date, maturity_date,
	compounding_frequency, monthly_contribution, has_payout, payout_frequency,
	total_contributions, maturity_value, interest_earned`

// Save inserts a new instrument or updates an existing one by ID, returning
// the stored ID.
func (r *SQLiteRepository) Save(ctx context.Context, in core.Instrument) (int64, error) {
	args := []any{
		in.Name, string(in.Kind), in.Principal, in.AnnualRate,
		in.StartDate.String(), in.MaturityDate.String(),
		in.CompoundingFrequency, in.MonthlyContribution,
		boolToInt(in.HasPayout), in.PayoutFrequency,
		in.TotalContributions, in.MaturityValue, in.InterestEarned,
	}

	if in.ID == 0 {
		res, err := r.db.ExecContext(ctx,
			`INSERT INTO instruments (`+instrumentColumns+`)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, args...)
		if err != nil {
			return 0, fmt.Errorf("insert instrument: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return 0, fmt.Errorf("instrument id: %w", err)
		}
		slog.InfoContext(ctx, "Instrument saved", "id", id, "name", in.Name, "kind", in.Kind)
		return id, nil
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE instruments SET
			name = ?, kind = ?, principal = ?, annual_rate = ?,
			start_date = ?, maturity_date = ?,
			compounding_frequency = ?, monthly_contribution = ?,
			has_payout = ?, payout_frequency = ?,
			total_contributions = ?, maturity_value = ?, interest_earned = ?,
			updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`, append(args, in.ID)...)
	if err != nil {
		return 0, fmt.Errorf("update instrument: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("update instrument: %w", err)
	}
	if affected == 0 {
		return 0, fmt.Errorf("update instrument %d: %w", in.ID, ErrNotFound)
	}
	slog.InfoContext(ctx, "Instrument updated", "id", in.ID, "name", in.Name)
	return in.ID, nil
}

// LoadAll returns every stored instrument. A row with an unparseable date is
// a data error and fails the whole load rather than being coerced or skipped.
func (r *SQLiteRepository) LoadAll(ctx context.Context) ([]core.Instrument, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, `+instrumentColumns+` FROM instruments ORDER BY maturity_date, id`)
	if err != nil {
		return nil, fmt.Errorf("query instruments: %w", err)
	}
	defer rows.Close()

	var out []core.Instrument
	for rows.Next() {
		in, err := scanInstrument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate instruments: %w", err)
	}
	return out, nil
}

// Get returns a single instrument by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Instrument, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, `+instrumentColumns+` FROM instruments WHERE id = ?`, id)
	in, err := scanInstrument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Instrument{}, fmt.Errorf("instrument %d: %w", id, ErrNotFound)
	}
	return in, err
}

// Delete removes an instrument by ID.
func (r *SQLiteRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM instruments WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete instrument: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete instrument: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete instrument %d: %w", id, ErrNotFound)
	}
	slog.InfoContext(ctx, "Instrument deleted", "id", id)
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInstrument(s scanner) (core.Instrument, error) {
	var (
		in                 core.Instrument
		kind               string
		startStr, matStr   string
		hasPayout          int
	)
	err := s.Scan(&in.ID, &in.Name, &kind, &in.Principal, &in.AnnualRate,
		&startStr, &matStr, &in.CompoundingFrequency, &in.MonthlyContribution,
		&hasPayout, &in.PayoutFrequency,
		&in.TotalContributions, &in.MaturityValue, &in.InterestEarned)
	if err != nil {
		return core.Instrument{}, err
	}

	in.Kind = core.Kind(kind)
	in.HasPayout = hasPayout != 0
	if in.StartDate, err = core.ParseDate(startStr); err != nil {
		return core.Instrument{}, fmt.Errorf("instrument %d start date: %w", in.ID, err)
	}
	if in.MaturityDate, err = core.ParseDate(matStr); err != nil {
		return core.Instrument{}, fmt.Errorf("instrument %d maturity date: %w", in.ID, err)
	}
	return in, nil
}

// SaveSnapshot upserts the latest projection timeline for a scenario key so
// the API can serve a warm copy after restart.
func (r *SQLiteRepository) SaveSnapshot(ctx context.Context, key string, points []core.ProjectionPoint) error {
	raw, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO projection_snapshots (scenario_key, points_json, generated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(scenario_key) DO UPDATE SET
			points_json = excluded.points_json,
			generated_at = CURRENT_TIMESTAMP`, key, string(raw))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	slog.InfoContext(ctx, "Projection snapshot saved", "scenario_key", key, "points", len(points))
	return nil
}

// LoadSnapshot returns the stored timeline for a scenario key.
func (r *SQLiteRepository) LoadSnapshot(ctx context.Context, key string) ([]core.ProjectionPoint, time.Time, error) {
	var (
		raw         string
		generatedAt time.Time
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT points_json, generated_at FROM projection_snapshots WHERE scenario_key = ?`, key).
		Scan(&raw, &generatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, fmt.Errorf("snapshot %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("load snapshot: %w", err)
	}

	var points []core.ProjectionPoint
	if err := json.Unmarshal([]byte(raw), &points); err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: decode snapshot %q: %v", core.ErrData, key, err)
	}
	return points, generatedAt, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
