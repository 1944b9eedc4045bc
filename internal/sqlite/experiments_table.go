// This file implements the experiments table accessor for the SQLite
// backend: hydration between rows and *types.Experiment, CRUD, and
// filtered fetch.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/labrec/pkg/types"
)

// Compile-time interface check: recordTable must implement RecordTable.
var _ types.RecordTable = (*recordTable)(nil)

// recordTable implements the RecordTable interface over the experiments
// table. Each operation hydrates/dehydrates between SQLite rows and
// *types.Experiment structs.
type recordTable struct {
	backend *Backend
}

// experimentColumns is the column list shared by every SELECT.
const experimentColumns = `record_id, label, recorded_at, mode, voltage_v, current_a,
    electrolyte, duration_min, anode_initial_g, anode_final_g, anode_delta_g,
    cathode_initial_g, cathode_final_g, cathode_delta_g, notes, created_at, updated_at`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateExperiment scans one row into an Experiment.
func hydrateExperiment(row rowScanner) (*types.Experiment, error) {
	var (
		e                            types.Experiment
		recordedAt, created, updated string
		voltage, current, duration   sql.NullFloat64
	)
	err := row.Scan(
		&e.RecordID, &e.Label, &recordedAt, &e.Mode, &voltage, &current,
		&e.Electrolyte, &duration, &e.AnodeInitialG, &e.AnodeFinalG, &e.AnodeDeltaG,
		&e.CathodeInitialG, &e.CathodeFinalG, &e.CathodeDeltaG, &e.Notes,
		&created, &updated,
	)
	if err != nil {
		return nil, err
	}

	if e.RecordedAt, err = time.Parse(time.RFC3339, recordedAt); err != nil {
		return nil, fmt.Errorf("parsing recorded_at: %w", err)
	}
	if e.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if e.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}

	if voltage.Valid {
		e.VoltageV = &voltage.Float64
	}
	if current.Valid {
		e.CurrentA = &current.Float64
	}
	if duration.Valid {
		e.DurationMin = &duration.Float64
	}
	return &e, nil
}

// nullableFloat converts an optional field to a driver value.
func nullableFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

// Get retrieves a record by ID.
func (rt *recordTable) Get(id string) (*types.Experiment, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}

	row := rt.backend.db.QueryRow(
		"SELECT "+experimentColumns+" FROM experiments WHERE record_id = ?", id)
	record, err := hydrateExperiment(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting record %s: %w", id, err)
	}
	return record, nil
}

// Set persists a record. An empty id creates a new record with a
// generated UUID v7; a non-empty id replaces the existing record.
// Mass deltas are recalculated and the record validated first.
func (rt *recordTable) Set(id string, record *types.Experiment) (string, error) {
	if record == nil {
		return "", types.ErrInvalidData
	}

	record.Recalculate()
	if err := record.Validate(); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	isCreate := id == ""

	if isCreate {
		newID, err := uuid.NewV7()
		if err != nil {
			return "", fmt.Errorf("generating UUID v7: %w", err)
		}
		record.RecordID = newID.String()
		if record.RecordedAt.IsZero() {
			record.RecordedAt = now
		}
		record.CreatedAt = now
		id = record.RecordID
	} else {
		var createdAt string
		err := rt.backend.db.QueryRow(
			"SELECT created_at FROM experiments WHERE record_id = ?", id,
		).Scan(&createdAt)
		if err != nil {
			if err == sql.ErrNoRows {
				return "", types.ErrNotFound
			}
			return "", fmt.Errorf("checking record existence: %w", err)
		}
		record.RecordID = id
		if record.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return "", fmt.Errorf("parsing created_at: %w", err)
		}
	}
	record.UpdatedAt = now

	args := []any{
		record.Label,
		record.RecordedAt.UTC().Format(time.RFC3339),
		record.Mode,
		nullableFloat(record.VoltageV),
		nullableFloat(record.CurrentA),
		record.Electrolyte,
		nullableFloat(record.DurationMin),
		record.AnodeInitialG, record.AnodeFinalG, record.AnodeDeltaG,
		record.CathodeInitialG, record.CathodeFinalG, record.CathodeDeltaG,
		record.Notes,
		record.CreatedAt.Format(time.RFC3339),
		record.UpdatedAt.Format(time.RFC3339),
	}

	var err error
	if isCreate {
		_, err = rt.backend.db.Exec(
			`INSERT INTO experiments (label, recorded_at, mode, voltage_v, current_a,
			    electrolyte, duration_min, anode_initial_g, anode_final_g, anode_delta_g,
			    cathode_initial_g, cathode_final_g, cathode_delta_g, notes,
			    created_at, updated_at, record_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			append(args, id)...)
	} else {
		_, err = rt.backend.db.Exec(
			`UPDATE experiments SET label = ?, recorded_at = ?, mode = ?, voltage_v = ?,
			    current_a = ?, electrolyte = ?, duration_min = ?, anode_initial_g = ?,
			    anode_final_g = ?, anode_delta_g = ?, cathode_initial_g = ?,
			    cathode_final_g = ?, cathode_delta_g = ?, notes = ?, created_at = ?,
			    updated_at = ? WHERE record_id = ?`,
			append(args, id)...)
	}
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: experiments.label") {
			return "", types.ErrDuplicateLabel
		}
		return "", fmt.Errorf("persisting record: %w", err)
	}

	return id, nil
}

// Delete removes a record by ID.
func (rt *recordTable) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	result, err := rt.backend.db.Exec("DELETE FROM experiments WHERE record_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record %s: %w", id, err)
	}
	if affected == 0 {
		return types.ErrNotFound
	}
	return nil
}

// Fetch queries records matching the filter, most recent first.
func (rt *recordTable) Fetch(filter types.Filter) ([]*types.Experiment, error) {
	return rt.fetch(filter, false)
}

// fetch builds and runs the filtered query. ascending selects the sort
// direction on recorded_at (exports want chronological order, listings
// want most recent first).
func (rt *recordTable) fetch(filter types.Filter, ascending bool) ([]*types.Experiment, error) {
	query := "SELECT " + experimentColumns + " FROM experiments"
	var conditions []string
	var args []any

	if filter.Since != nil {
		conditions = append(conditions, "recorded_at >= ?")
		args = append(args, filter.Since.UTC().Format(time.RFC3339))
	}
	if filter.Until != nil {
		conditions = append(conditions, "recorded_at <= ?")
		args = append(args, filter.Until.UTC().Format(time.RFC3339))
	}
	if filter.Mode != "" {
		conditions = append(conditions, "mode = ?")
		args = append(args, filter.Mode)
	}
	if filter.Electrolyte != "" {
		conditions = append(conditions, "electrolyte = ?")
		args = append(args, filter.Electrolyte)
	}
	if filter.Search != "" {
		conditions = append(conditions, "(label LIKE ? OR notes LIKE ?)")
		pattern := "%" + filter.Search + "%"
		args = append(args, pattern, pattern)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	if ascending {
		query += " ORDER BY recorded_at ASC"
	} else {
		query += " ORDER BY recorded_at DESC"
	}

	rows, err := rt.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching records: %w", err)
	}
	defer rows.Close()

	var records []*types.Experiment
	for rows.Next() {
		record, err := hydrateExperiment(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}
