package sqlite

// Schema DDL for the experiments table. Unlike a scratch cache, the
// database is the system of record, so tables are created IF NOT EXISTS
// and never dropped on attach.
const createExperiments = `CREATE TABLE IF NOT EXISTS experiments (
    record_id TEXT PRIMARY KEY,
    label TEXT NOT NULL UNIQUE,
    recorded_at TEXT NOT NULL,
    mode TEXT NOT NULL,
    voltage_v REAL,
    current_a REAL,
    electrolyte TEXT NOT NULL,
    duration_min REAL,
    anode_initial_g REAL NOT NULL,
    anode_final_g REAL NOT NULL,
    anode_delta_g REAL NOT NULL,
    cathode_initial_g REAL NOT NULL,
    cathode_final_g REAL NOT NULL,
    cathode_delta_g REAL NOT NULL,
    notes TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

const createRecordedAtIndex = `CREATE INDEX IF NOT EXISTS idx_experiments_recorded_at
    ON experiments (recorded_at);`

// schemaSQL is executed on every Attach.
var schemaSQL = createExperiments + "\n" + createRecordedAtIndex
