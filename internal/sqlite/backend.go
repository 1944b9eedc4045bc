// Package sqlite implements the SQLite storage backend for labrec.
// Experiment records live in a single experiments.db file under the
// configured data directory and survive across attach cycles.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/labrec/pkg/types"
)

// Backend implements the Store interface using a SQLite database file.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	records  *recordTable
	log      *zap.Logger
}

// NewBackend creates a new SQLite backend instance. The backend is not
// attached; call Attach with a Config to initialize. A nil logger is
// replaced with a no-op logger.
func NewBackend(log *zap.Logger) *Backend {
	if log == nil {
		log = zap.NewNop()
	}
	return &Backend{log: log}
}

// Records returns the experiment record table.
// Returns ErrStoreDetached if the backend is not attached.
func (b *Backend) Records() (types.RecordTable, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.records, nil
}

// Attach initializes the backend with the given configuration. Creates
// DataDir if it does not exist, opens the database, and applies the
// schema. Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}

	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "experiments.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("applying schema: %w", err)
	}

	b.db = db
	b.config = config
	b.records = &recordTable{backend: b}
	b.attached = true

	b.log.Info("store attached",
		zap.String("backend", config.Backend),
		zap.String("db_path", dbPath))
	return nil
}

// Detach closes the database and releases resources.
// Idempotent: detaching a detached backend succeeds.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	err := b.db.Close()
	b.db = nil
	b.records = nil
	b.attached = false

	if err != nil {
		return fmt.Errorf("closing database: %w", err)
	}
	b.log.Info("store detached")
	return nil
}

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)
