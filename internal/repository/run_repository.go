package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/travelrecap/timeline-backend-go/internal/models"
)

// ErrRunNotFound is returned when an analysis run ID does not exist
var ErrRunNotFound = errors.New("analysis run not found")

// RunRepository handles database operations for persisted analysis runs
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create inserts a run summary
func (r *RunRepository) Create(run *models.AnalysisRun) error {
	query := `
		INSERT INTO analysis_runs (
			id, created_at, year,
			visit_count, movement_count, place_count, country_count,
			skipped_segments, total_distance_meters, carbon_kg_co2, stats_json
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		run.ID, run.CreatedAt, run.Year,
		run.VisitCount, run.MovementCount, run.PlaceCount, run.CountryCount,
		run.SkippedSegments, run.TotalDistanceMeters, run.CarbonKgCO2, run.StatsJSON,
	)
	if err != nil {
		return fmt.Errorf("failed to insert analysis run: %w", err)
	}
	return nil
}

// GetByID retrieves a run summary by ID
func (r *RunRepository) GetByID(id string) (*models.AnalysisRun, error) {
	query := `
		SELECT id, created_at, year,
			visit_count, movement_count, place_count, country_count,
			skipped_segments, total_distance_meters, carbon_kg_co2, stats_json
		FROM analysis_runs
		WHERE id = ?
	`

	var run models.AnalysisRun
	err := r.db.QueryRow(query, id).Scan(
		&run.ID, &run.CreatedAt, &run.Year,
		&run.VisitCount, &run.MovementCount, &run.PlaceCount, &run.CountryCount,
		&run.SkippedSegments, &run.TotalDistanceMeters, &run.CarbonKgCO2, &run.StatsJSON,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	return &run, nil
}

// List retrieves the most recent run summaries
func (r *RunRepository) List(limit int) ([]models.AnalysisRun, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	query := `
		SELECT id, created_at, year,
			visit_count, movement_count, place_count, country_count,
			skipped_segments, total_distance_meters, carbon_kg_co2, stats_json
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer rows.Close()

	var runs []models.AnalysisRun
	for rows.Next() {
		var run models.AnalysisRun
		if err := rows.Scan(
			&run.ID, &run.CreatedAt, &run.Year,
			&run.VisitCount, &run.MovementCount, &run.PlaceCount, &run.CountryCount,
			&run.SkippedSegments, &run.TotalDistanceMeters, &run.CarbonKgCO2, &run.StatsJSON,
		); err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// Delete removes a run summary
func (r *RunRepository) Delete(id string) error {
	result, err := r.db.Exec("DELETE FROM analysis_runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete analysis run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrRunNotFound
	}
	return nil
}
