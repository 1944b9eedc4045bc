package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labrec/pkg/types"
)

// records returns the record table of an attached test backend.
func records(t *testing.T, b *Backend) types.RecordTable {
	t.Helper()
	table, err := b.Records()
	require.NoError(t, err)
	return table
}

func TestRecordCreate(t *testing.T) {
	b := setupBackend(t)
	table := records(t, b)

	record := sampleExperiment("EXP-001")
	id, err := table.Set("", record)
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, record.RecordID)

	got, err := table.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "EXP-001", got.Label)
	assert.Equal(t, types.ModeCV, got.Mode)
	require.NotNil(t, got.VoltageV)
	assert.InDelta(t, 10.0, *got.VoltageV, 1e-9)
	assert.Nil(t, got.CurrentA)
	assert.Nil(t, got.DurationMin)
	assert.InDelta(t, 4.9876-5.1234, got.AnodeDeltaG, 1e-9, "delta computed on create")
	assert.InDelta(t, 0.0100, got.CathodeDeltaG, 1e-9)
	assert.False(t, got.RecordedAt.IsZero())
	assert.False(t, got.CreatedAt.IsZero())
}

func TestRecordCreateValidation(t *testing.T) {
	b := setupBackend(t)
	table := records(t, b)

	tests := []struct {
		name    string
		mutate  func(*types.Experiment)
		wantErr error
	}{
		{
			name:    "empty label",
			mutate:  func(e *types.Experiment) { e.Label = "" },
			wantErr: types.ErrInvalidLabel,
		},
		{
			name:    "bad mode",
			mutate:  func(e *types.Experiment) { e.Mode = "AC" },
			wantErr: types.ErrInvalidMode,
		},
		{
			name:    "empty electrolyte",
			mutate:  func(e *types.Experiment) { e.Electrolyte = "" },
			wantErr: types.ErrInvalidElectrolyte,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			record := sampleExperiment("EXP-BAD")
			tt.mutate(record)
			_, err := table.Set("", record)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("nil record", func(t *testing.T) {
		_, err := table.Set("", nil)
		assert.ErrorIs(t, err, types.ErrInvalidData)
	})
}

func TestRecordDuplicateLabel(t *testing.T) {
	b := setupBackend(t)
	table := records(t, b)

	_, err := table.Set("", sampleExperiment("EXP-001"))
	require.NoError(t, err)

	_, err = table.Set("", sampleExperiment("EXP-001"))
	assert.ErrorIs(t, err, types.ErrDuplicateLabel)
}

func TestRecordUpdate(t *testing.T) {
	b := setupBackend(t)
	table := records(t, b)

	id, err := table.Set("", sampleExperiment("EXP-001"))
	require.NoError(t, err)

	record, err := table.Get(id)
	require.NoError(t, err)
	createdAt := record.CreatedAt

	record.AnodeFinalG = 4.5000
	record.Notes = "rerun after electrode swap"
	gotID, err := table.Set(id, record)
	require.NoError(t, err)
	assert.Equal(t, id, gotID)

	updated, err := table.Get(id)
	require.NoError(t, err)
	assert.InDelta(t, 4.5000-5.1234, updated.AnodeDeltaG, 1e-9, "delta recomputed on update")
	assert.Equal(t, "rerun after electrode swap", updated.Notes)
	assert.Equal(t, createdAt, updated.CreatedAt, "creation time preserved")

	t.Run("unknown id", func(t *testing.T) {
		_, err := table.Set("no-such-id", sampleExperiment("EXP-MISSING"))
		assert.ErrorIs(t, err, types.ErrNotFound)
	})
}

func TestRecordDelete(t *testing.T) {
	b := setupBackend(t)
	table := records(t, b)

	id, err := table.Set("", sampleExperiment("EXP-001"))
	require.NoError(t, err)

	require.NoError(t, table.Delete(id))

	_, err = table.Get(id)
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, table.Delete(id), types.ErrNotFound)
	assert.ErrorIs(t, table.Delete(""), types.ErrInvalidID)
}

func TestRecordGetErrors(t *testing.T) {
	b := setupBackend(t)
	table := records(t, b)

	_, err := table.Get("")
	assert.ErrorIs(t, err, types.ErrInvalidID)

	_, err = table.Get("no-such-id")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

// seedFetchRecords inserts a small spread of records with distinct
// recorded_at values, modes, and electrolytes.
func seedFetchRecords(t *testing.T, table types.RecordTable) {
	t.Helper()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	seeds := []struct {
		label       string
		offset      time.Duration
		mode        string
		electrolyte string
		notes       string
	}{
		{"EXP-001", 0, types.ModeCV, "0.1M K2CO3", "baseline"},
		{"EXP-002", 24 * time.Hour, types.ModeCC, "0.1M K2CO3", "higher current"},
		{"EXP-003", 48 * time.Hour, types.ModeCV, "0.1M Na2SO4", "sulfate trial"},
		{"EXP-004", 72 * time.Hour, types.ModeCC, "0.1M Na2SO4", "repeat of sulfate trial"},
	}
	for _, s := range seeds {
		record := sampleExperiment(s.label)
		record.RecordedAt = base.Add(s.offset)
		record.Mode = s.mode
		record.Electrolyte = s.electrolyte
		record.Notes = s.notes
		_, err := table.Set("", record)
		require.NoError(t, err)
	}
}

func TestRecordFetch(t *testing.T) {
	b := setupBackend(t)
	table := records(t, b)
	seedFetchRecords(t, table)

	labels := func(recs []*types.Experiment) []string {
		out := make([]string, len(recs))
		for i, r := range recs {
			out[i] = r.Label
		}
		return out
	}

	t.Run("empty filter returns all, most recent first", func(t *testing.T) {
		recs, err := table.Fetch(types.Filter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"EXP-004", "EXP-003", "EXP-002", "EXP-001"}, labels(recs))
	})

	t.Run("filter by mode", func(t *testing.T) {
		recs, err := table.Fetch(types.Filter{Mode: types.ModeCC})
		require.NoError(t, err)
		assert.Equal(t, []string{"EXP-004", "EXP-002"}, labels(recs))
	})

	t.Run("filter by electrolyte", func(t *testing.T) {
		recs, err := table.Fetch(types.Filter{Electrolyte: "0.1M Na2SO4"})
		require.NoError(t, err)
		assert.Equal(t, []string{"EXP-004", "EXP-003"}, labels(recs))
	})

	t.Run("filter by date range", func(t *testing.T) {
		since := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
		until := time.Date(2024, 3, 3, 23, 0, 0, 0, time.UTC)
		recs, err := table.Fetch(types.Filter{Since: &since, Until: &until})
		require.NoError(t, err)
		assert.Equal(t, []string{"EXP-003", "EXP-002"}, labels(recs))
	})

	t.Run("search matches label", func(t *testing.T) {
		recs, err := table.Fetch(types.Filter{Search: "exp-002"})
		require.NoError(t, err)
		assert.Equal(t, []string{"EXP-002"}, labels(recs))
	})

	t.Run("search matches notes", func(t *testing.T) {
		recs, err := table.Fetch(types.Filter{Search: "sulfate"})
		require.NoError(t, err)
		assert.Equal(t, []string{"EXP-004", "EXP-003"}, labels(recs))
	})

	t.Run("combined filters", func(t *testing.T) {
		recs, err := table.Fetch(types.Filter{Mode: types.ModeCV, Electrolyte: "0.1M K2CO3"})
		require.NoError(t, err)
		assert.Equal(t, []string{"EXP-001"}, labels(recs))
	})

	t.Run("no matches", func(t *testing.T) {
		recs, err := table.Fetch(types.Filter{Electrolyte: "0.1M KNO3"})
		require.NoError(t, err)
		assert.Empty(t, recs)
	})
}
