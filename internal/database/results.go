package database

import (
	"database/sql"
	"fmt"

	"turbocycle/internal/models"
)

// ResultRepository stores and retrieves sweep results
type ResultRepository interface {
	InsertBatch(results []*models.SweepResult) error
	LatestBatch(sweep string) (int64, error)
	ListBySweep(sweep string, batch int64) ([]*models.SweepResult, error)
}

type resultRepository struct {
	db *sql.DB
}

func NewResultRepository(db *sql.DB) ResultRepository {
	return &resultRepository{db: db}
}

// InsertBatch inserts one or more sweep results in a single transaction.
// Batching is preferred over individual inserts; the collector commits
// whole sweep segments at once.
func (r *resultRepository) InsertBatch(results []*models.SweepResult) error {
	if len(results) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR IGNORE INTO sweep_results (
		batch, sweep, parameter, value,
		ambient_temp_k, ambient_pressure_pa,
		thrust_n, isp_s, fuel_flow_kg_s, v_exit_ms, m_exit,
		t2_k, p2_pa, t3_k, p3_pa, t4_k, p4_pa, t5_k, p5_pa,
		created_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, res := range results {
		cr := res.Result
		if _, err := stmt.Exec(
			res.Batch, res.Sweep, res.Parameter, res.Value,
			res.Point.AmbientTemperature, res.Point.AmbientPressure,
			cr.Thrust, cr.SpecificImpulse, cr.FuelFlow, cr.ExitVelocity, cr.ExitMach,
			cr.T2, cr.P2, cr.T3, cr.P3, cr.T4, cr.P4, cr.T5, cr.P5,
			res.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to insert sweep result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// LatestBatch returns the most recent batch id stored for the given sweep.
// Returns ErrNoResults when the sweep has never been run.
func (r *resultRepository) LatestBatch(sweep string) (int64, error) {
	var batch sql.NullInt64
	err := r.db.QueryRow("SELECT MAX(batch) FROM sweep_results WHERE sweep = ?", sweep).Scan(&batch)
	if err != nil {
		return 0, fmt.Errorf("failed to query latest batch: %w", err)
	}
	if !batch.Valid {
		return 0, fmt.Errorf("sweep %q: %w", sweep, ErrNoResults)
	}
	return batch.Int64, nil
}

// ListBySweep returns all results of one sweep batch ordered by the swept
// parameter value.
func (r *resultRepository) ListBySweep(sweep string, batch int64) ([]*models.SweepResult, error) {
	rows, err := r.db.Query(`SELECT
		batch, sweep, parameter, value,
		ambient_temp_k, ambient_pressure_pa,
		thrust_n, isp_s, fuel_flow_kg_s, v_exit_ms, m_exit,
		t2_k, p2_pa, t3_k, p3_pa, t4_k, p4_pa, t5_k, p5_pa,
		created_at
	FROM sweep_results WHERE sweep = ? AND batch = ? ORDER BY value`, sweep, batch)
	if err != nil {
		return nil, fmt.Errorf("failed to query sweep results: %w", err)
	}
	defer rows.Close()

	var results []*models.SweepResult
	for rows.Next() {
		res := &models.SweepResult{}
		cr := &res.Result
		if err := rows.Scan(
			&res.Batch, &res.Sweep, &res.Parameter, &res.Value,
			&res.Point.AmbientTemperature, &res.Point.AmbientPressure,
			&cr.Thrust, &cr.SpecificImpulse, &cr.FuelFlow, &cr.ExitVelocity, &cr.ExitMach,
			&cr.T2, &cr.P2, &cr.T3, &cr.P3, &cr.T4, &cr.P4, &cr.T5, &cr.P5,
			&res.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sweep result: %w", err)
		}
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sweep results: %w", err)
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("sweep %q batch %d: %w", sweep, batch, ErrNoResults)
	}

	return results, nil
}
