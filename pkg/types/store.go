package types

import (
	"errors"
	"io"
	"time"
)

// Store defines the storage backend lifecycle. Callers attach to a
// backend, operate on the record table, and detach when done.
type Store interface {
	// Records returns the experiment record table.
	// Returns ErrStoreDetached if the store is not attached.
	Records() (RecordTable, error)

	// Attach connects the store to the backend described by config.
	// Creates the DataDir if it does not exist.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, table operations return ErrStoreDetached.
	Detach() error
}

// Filter narrows a Fetch. Zero-value fields are ignored.
type Filter struct {
	Since       *time.Time // Only records with RecordedAt >= Since.
	Until       *time.Time // Only records with RecordedAt <= Until.
	Mode        string     // Exact mode match.
	Electrolyte string     // Exact electrolyte match.
	Search      string     // Case-insensitive substring match on label or notes.
}

// RecordTable provides CRUD and export operations over experiment records.
type RecordTable interface {
	// Get retrieves the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Get(id string) (*Experiment, error)

	// Set creates or updates a record. When id is empty a new UUID v7 is
	// generated and the record is created; otherwise the existing record
	// is replaced. Mass deltas are recalculated and the record validated
	// before it is persisted. Returns the actual ID used.
	Set(id string, record *Experiment) (string, error)

	// Delete removes the record with the given ID.
	// Returns ErrNotFound if no record exists with that ID.
	Delete(id string) error

	// Fetch returns all records matching the filter, most recent first.
	Fetch(filter Filter) ([]*Experiment, error)

	// ExportCSV writes every record as CSV to w, oldest first, prefixed
	// with a UTF-8 byte order mark.
	ExportCSV(w io.Writer) error

	// ExportCSVFile atomically writes the CSV export to path.
	ExportCSVFile(path string) error
}

// Store lifecycle errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
)

// Table operation errors.
var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidID      = errors.New("invalid record ID")
	ErrInvalidData    = errors.New("invalid record data")
	ErrDuplicateLabel = errors.New("label already exists")
)
