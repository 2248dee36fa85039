package database

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// ErrNoResults is returned when a query targets a sweep with no stored
// results.
var ErrNoResults = errors.New("no stored results")

// DB wraps the SQLite connection and hands out repositories
type DB struct {
	db *sql.DB
}

// New creates and initializes a new database connection
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := tuneSQLite(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to tune database: %w", err)
	}

	database := &DB{db: db}

	if err := database.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return database, nil
}

// tuneSQLite applies pragmas suited to burst writes from sweep batches
func tuneSQLite(db *sql.DB) error {
	// WAL mode allows concurrent reads while the collector writes
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// 64MB page cache; RAM only, safe to raise from the 2MB default
	if _, err := db.Exec("PRAGMA cache_size=-64000"); err != nil {
		return fmt.Errorf("failed to set cache size: %w", err)
	}

	// NORMAL is safe under WAL and much faster than FULL
	if _, err := db.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA temp_store=MEMORY"); err != nil {
		return fmt.Errorf("failed to set temp_store: %w", err)
	}

	if _, err := db.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	return nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// Results returns the sweep result repository
func (d *DB) Results() ResultRepository {
	return NewResultRepository(d.db)
}

// Conditions returns the flight condition repository
func (d *DB) Conditions() ConditionRepository {
	return NewConditionRepository(d.db)
}

// initSchema creates the database schema if it doesn't exist
func (d *DB) initSchema() error {
	resultsSchema := `CREATE TABLE IF NOT EXISTS sweep_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		batch INTEGER NOT NULL,
		sweep TEXT NOT NULL,
		parameter TEXT NOT NULL,
		value REAL NOT NULL,
		ambient_temp_k REAL NOT NULL,
		ambient_pressure_pa REAL NOT NULL,
		thrust_n REAL NOT NULL,
		isp_s REAL NOT NULL,
		fuel_flow_kg_s REAL NOT NULL,
		v_exit_ms REAL NOT NULL,
		m_exit REAL NOT NULL,
		t2_k REAL, p2_pa REAL,
		t3_k REAL, p3_pa REAL,
		t4_k REAL, p4_pa REAL,
		t5_k REAL, p5_pa REAL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(sweep, batch, value)
	);`

	conditionsSchema := `CREATE TABLE IF NOT EXISTS flight_conditions (
		name TEXT PRIMARY KEY,
		altitude_m REAL,
		temperature_k REAL NOT NULL,
		pressure_pa REAL NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);`

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_sweep_results_sweep_batch ON sweep_results(sweep, batch)`,
		`CREATE INDEX IF NOT EXISTS idx_sweep_results_created_at ON sweep_results(created_at)`,
	}

	if _, err := d.db.Exec(resultsSchema); err != nil {
		return fmt.Errorf("failed to create sweep_results table: %w", err)
	}

	if _, err := d.db.Exec(conditionsSchema); err != nil {
		return fmt.Errorf("failed to create flight_conditions table: %w", err)
	}

	for _, idx := range indexes {
		if _, err := d.db.Exec(idx); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}
