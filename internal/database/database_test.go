package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turbocycle/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	dbPath := filepath.Join(t.TempDir(), "test_turbocycle.db")

	db, err := New(dbPath)
	require.NoError(t, err)
	require.NotNil(t, db)

	t.Cleanup(func() {
		assert.NoError(t, db.Close())
	})

	return db
}

func sampleResult(sweep string, batch int64, value float64) *models.SweepResult {
	return &models.SweepResult{
		Sweep:     sweep,
		Batch:     batch,
		Parameter: "ambient_temperature",
		Value:     value,
		Point: models.OperatingPoint{
			AmbientTemperature: value,
			AmbientPressure:    101325.0,
		},
		Result: models.CycleResult{
			T2: 708.5, P2: 1.82e6,
			T3: 1555.7, P3: 1.77e6,
			T4: 1088.6, P4: 4.20e5,
			T5: 907.2, P5: 2.22e5,
			ExitVelocity:    603.7,
			ExitMach:        1.0,
			Thrust:          30187.0,
			SpecificImpulse: 3077.2,
			FuelFlow:        1.0,
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestNew(t *testing.T) {
	db := setupTestDB(t)
	assert.NotNil(t, db)
}

func TestResultRepository_InsertAndList(t *testing.T) {
	db := setupTestDB(t)
	repo := db.Results()

	batch := time.Now().UnixNano()
	results := []*models.SweepResult{
		sampleResult("temperature", batch, 288.15),
		sampleResult("temperature", batch, 230.0),
		sampleResult("temperature", batch, 310.0),
	}

	require.NoError(t, repo.InsertBatch(results))

	stored, err := repo.ListBySweep("temperature", batch)
	require.NoError(t, err)
	require.Len(t, stored, 3)

	// Ordered by swept value regardless of insertion order.
	assert.Equal(t, 230.0, stored[0].Value)
	assert.Equal(t, 288.15, stored[1].Value)
	assert.Equal(t, 310.0, stored[2].Value)

	assert.Equal(t, "ambient_temperature", stored[0].Parameter)
	assert.InDelta(t, 30187.0, stored[0].Result.Thrust, 1e-6)
	assert.InDelta(t, 101325.0, stored[0].Point.AmbientPressure, 1e-6)
}

func TestResultRepository_InsertBatch_Empty(t *testing.T) {
	db := setupTestDB(t)

	// Empty batch should not error
	assert.NoError(t, db.Results().InsertBatch(nil))
}

func TestResultRepository_LatestBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := db.Results()

	_, err := repo.LatestBatch("temperature")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoResults)

	require.NoError(t, repo.InsertBatch([]*models.SweepResult{sampleResult("temperature", 100, 230.0)}))
	require.NoError(t, repo.InsertBatch([]*models.SweepResult{sampleResult("temperature", 200, 230.0)}))

	batch, err := repo.LatestBatch("temperature")
	require.NoError(t, err)
	assert.Equal(t, int64(200), batch)

	// Other sweeps don't leak into the lookup.
	_, err = repo.LatestBatch("pressure_ratio")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestResultRepository_ListBySweep_NoRows(t *testing.T) {
	db := setupTestDB(t)

	_, err := db.Results().ListBySweep("temperature", 42)
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestConditionRepository_InsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := db.Conditions()

	populated, err := repo.IsTablePopulated()
	require.NoError(t, err)
	assert.False(t, populated)

	conditions := []*models.FlightCondition{
		{Name: "sea_level_static", Temperature: 288.15, Pressure: 101325.0},
		{Name: "cruise", Altitude: 11000, Temperature: 216.65, Pressure: 22632.0},
	}
	require.NoError(t, repo.InsertBatch(conditions))

	populated, err = repo.IsTablePopulated()
	require.NoError(t, err)
	assert.True(t, populated)

	fc, err := repo.Get("cruise")
	require.NoError(t, err)
	assert.Equal(t, 11000.0, fc.Altitude)
	assert.InDelta(t, 216.65, fc.Temperature, 1e-6)

	_, err = repo.Get("orbit")
	assert.Error(t, err)
}

func TestConditionRepository_LoadFromCSV(t *testing.T) {
	db := setupTestDB(t)
	repo := db.Conditions()

	csvPath := filepath.Join(t.TempDir(), "conditions.csv")
	content := "name,altitude_m,temperature_k,pressure_pa\n" +
		"sea_level_static,0,288.15,101325\n" +
		"hot_day,0,310.0,101325\n" +
		"cruise,11000,,\n" // derived from ISA
	require.NoError(t, os.WriteFile(csvPath, []byte(content), 0o644))

	require.NoError(t, repo.LoadFromCSV([]string{csvPath}, 2))

	hot, err := repo.Get("hot_day")
	require.NoError(t, err)
	assert.InDelta(t, 310.0, hot.Temperature, 1e-6)

	cruise, err := repo.Get("cruise")
	require.NoError(t, err)
	assert.InDelta(t, 216.65, cruise.Temperature, 0.01)
	assert.InDelta(t, 22631.7, cruise.Pressure, 5.0)
}

func TestConditionRepository_LoadFromCSV_BadRows(t *testing.T) {
	db := setupTestDB(t)
	repo := db.Conditions()

	dir := t.TempDir()

	missingName := filepath.Join(dir, "missing_name.csv")
	require.NoError(t, os.WriteFile(missingName,
		[]byte("altitude_m,temperature_k,pressure_pa\n0,288.15,101325\n"), 0o644))
	assert.Error(t, repo.LoadFromCSV([]string{missingName}, 10))

	badValue := filepath.Join(dir, "bad_value.csv")
	require.NoError(t, os.WriteFile(badValue,
		[]byte("name,temperature_k,pressure_pa\nbogus,not_a_number,101325\n"), 0o644))
	assert.Error(t, repo.LoadFromCSV([]string{badValue}, 10))
}
