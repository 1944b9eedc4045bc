package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labrec/pkg/types"
)

// setupBackend creates an attached Backend over a temp data directory.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend(nil)
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

// sampleExperiment returns a valid record for tests.
func sampleExperiment(label string) *types.Experiment {
	voltage := 10.0
	return &types.Experiment{
		Label:           label,
		Mode:            types.ModeCV,
		VoltageV:        &voltage,
		Electrolyte:     "0.1M K2CO3",
		AnodeInitialG:   5.1234,
		AnodeFinalG:     4.9876,
		CathodeInitialG: 5.0000,
		CathodeFinalG:   5.0100,
		Notes:           "baseline run",
	}
}

func TestBackendLifecycle(t *testing.T) {
	t.Run("attach and detach", func(t *testing.T) {
		b := NewBackend(nil)
		config := types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}

		require.NoError(t, b.Attach(config))
		_, err := b.Records()
		require.NoError(t, err)
		require.NoError(t, b.Detach())
	})

	t.Run("double attach fails", func(t *testing.T) {
		b := setupBackend(t)
		err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()})
		assert.ErrorIs(t, err, types.ErrAlreadyAttached)
	})

	t.Run("detach is idempotent", func(t *testing.T) {
		b := NewBackend(nil)
		require.NoError(t, b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}))
		require.NoError(t, b.Detach())
		require.NoError(t, b.Detach())
	})

	t.Run("records on detached backend", func(t *testing.T) {
		b := NewBackend(nil)
		_, err := b.Records()
		assert.ErrorIs(t, err, types.ErrStoreDetached)
	})

	t.Run("invalid config rejected", func(t *testing.T) {
		b := NewBackend(nil)
		err := b.Attach(types.Config{Backend: "postgres"})
		assert.ErrorIs(t, err, types.ErrBackendUnknown)
	})
}

func TestBackendPersistsAcrossAttachCycles(t *testing.T) {
	dataDir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dataDir}

	b := NewBackend(nil)
	require.NoError(t, b.Attach(config))
	table, err := b.Records()
	require.NoError(t, err)
	id, err := table.Set("", sampleExperiment("EXP-001"))
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	// A fresh backend over the same data dir sees the record.
	b2 := NewBackend(nil)
	require.NoError(t, b2.Attach(config))
	t.Cleanup(func() { b2.Detach() })

	table2, err := b2.Records()
	require.NoError(t, err)
	record, err := table2.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "EXP-001", record.Label)

	assert.FileExists(t, filepath.Join(dataDir, "experiments.db"))
}
