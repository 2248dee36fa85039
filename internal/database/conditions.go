package database

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"turbocycle/internal/cycle"
	"turbocycle/internal/models"
)

// ConditionRepository stores named flight conditions
type ConditionRepository interface {
	InsertBatch(conditions []*models.FlightCondition) error
	Get(name string) (*models.FlightCondition, error)
	IsTablePopulated() (bool, error)
	LoadFromCSV(csvPaths []string, batchSize int) error
}

type conditionRepository struct {
	db *sql.DB
}

func NewConditionRepository(db *sql.DB) ConditionRepository {
	return &conditionRepository{db: db}
}

// InsertBatch inserts one or more flight conditions in a single transaction
func (r *conditionRepository) InsertBatch(conditions []*models.FlightCondition) error {
	if len(conditions) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT OR REPLACE INTO flight_conditions (
		name, altitude_m, temperature_k, pressure_pa
	) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, fc := range conditions {
		if _, err := stmt.Exec(fc.Name, fc.Altitude, fc.Temperature, fc.Pressure); err != nil {
			return fmt.Errorf("failed to insert flight condition: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// Get returns the named flight condition
func (r *conditionRepository) Get(name string) (*models.FlightCondition, error) {
	fc := &models.FlightCondition{}
	err := r.db.QueryRow(`SELECT name, altitude_m, temperature_k, pressure_pa
		FROM flight_conditions WHERE name = ?`, name).
		Scan(&fc.Name, &fc.Altitude, &fc.Temperature, &fc.Pressure)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("flight condition %q not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query flight condition: %w", err)
	}
	return fc, nil
}

func (r *conditionRepository) IsTablePopulated() (bool, error) {
	var ignored int
	err := r.db.QueryRow("SELECT 1 FROM flight_conditions LIMIT 1").Scan(&ignored)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check flight_conditions table: %w", err)
	}
	return true, nil
}

// LoadFromCSV loads flight conditions from one or more CSV files.
// Expected header columns: name, altitude_m, temperature_k, pressure_pa.
// Rows may give altitude only; temperature and pressure are then derived
// from the ISA atmosphere.
func (r *conditionRepository) LoadFromCSV(csvPaths []string, batchSize int) error {
	batch := make([]*models.FlightCondition, 0, batchSize)

	for _, csvPath := range csvPaths {
		file, err := os.Open(csvPath)
		if err != nil {
			return fmt.Errorf("failed to open CSV file %s: %w", csvPath, err)
		}

		reader := csv.NewReader(file)
		reader.TrimLeadingSpace = true

		header, err := reader.Read()
		if err != nil {
			file.Close()
			return fmt.Errorf("failed to read CSV header from %s: %w", csvPath, err)
		}

		headerMap := make(map[string]int, len(header))
		for i, col := range header {
			headerMap[strings.ToLower(strings.TrimSpace(col))] = i
		}
		if _, ok := headerMap["name"]; !ok {
			file.Close()
			return fmt.Errorf("CSV file %s missing required column %q", csvPath, "name")
		}

		line := 1
		for {
			record, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				file.Close()
				return fmt.Errorf("failed to read CSV record from %s: %w", csvPath, err)
			}
			line++

			fc, err := conditionFromRecord(record, headerMap)
			if err != nil {
				file.Close()
				return fmt.Errorf("%s line %d: %w", csvPath, line, err)
			}

			batch = append(batch, fc)
			if len(batch) >= batchSize {
				if err := r.InsertBatch(batch); err != nil {
					file.Close()
					return err
				}
				batch = batch[:0]
			}
		}

		file.Close()
	}

	return r.InsertBatch(batch)
}

// conditionFromRecord builds a flight condition from a header-mapped CSV row
func conditionFromRecord(record []string, headerMap map[string]int) (*models.FlightCondition, error) {
	field := func(name string) string {
		idx, ok := headerMap[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	name := field("name")
	if name == "" {
		return nil, fmt.Errorf("empty condition name")
	}

	fc := &models.FlightCondition{Name: name}

	if s := field("altitude_m"); s != "" {
		alt, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid altitude_m %q: %w", s, err)
		}
		fc.Altitude = alt
	}

	tempGiven := field("temperature_k")
	pressGiven := field("pressure_pa")

	if tempGiven == "" || pressGiven == "" {
		// Derive the missing state from the ISA atmosphere at the row's
		// altitude.
		temp, press, err := cycle.Atmosphere(fc.Altitude)
		if err != nil {
			return nil, fmt.Errorf("condition %q: %w", name, err)
		}
		fc.Temperature = temp
		fc.Pressure = press
	}

	if tempGiven != "" {
		temp, err := strconv.ParseFloat(tempGiven, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid temperature_k %q: %w", tempGiven, err)
		}
		fc.Temperature = temp
	}
	if pressGiven != "" {
		press, err := strconv.ParseFloat(pressGiven, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid pressure_pa %q: %w", pressGiven, err)
		}
		fc.Pressure = press
	}

	if fc.Temperature <= 0 || fc.Pressure <= 0 {
		return nil, fmt.Errorf("condition %q has non-positive ambient state", name)
	}

	return fc, nil
}
