package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/labrec/pkg/types"
)

// rec builds a record with the given deltas baked into the mass fields.
func rec(label, electrolyte, mode string, anodeDelta, cathodeDelta float64) *types.Experiment {
	e := &types.Experiment{
		Label:           label,
		Mode:            mode,
		Electrolyte:     electrolyte,
		AnodeInitialG:   5.0,
		AnodeFinalG:     5.0 + anodeDelta,
		CathodeInitialG: 5.0,
		CathodeFinalG:   5.0 + cathodeDelta,
	}
	e.Recalculate()
	return e
}

func TestSummarize(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		s := Summarize(nil)
		assert.Zero(t, s.Count)
		assert.Zero(t, s.Anode)
		assert.Zero(t, s.CathodeAnodeRatio)
	})

	t.Run("single record", func(t *testing.T) {
		s := Summarize([]*types.Experiment{
			rec("EXP-001", "0.1M K2CO3", types.ModeCV, -0.2, 0.05),
		})
		assert.Equal(t, 1, s.Count)
		assert.InDelta(t, -0.2, s.Anode.Mean, 1e-9)
		assert.InDelta(t, 0, s.Anode.Std, 1e-9)
		assert.InDelta(t, -0.2, s.Anode.Min, 1e-9)
		assert.InDelta(t, -0.2, s.Anode.Max, 1e-9)
		assert.InDelta(t, 0.05/0.2, s.CathodeAnodeRatio, 1e-9)
	})

	t.Run("multiple records", func(t *testing.T) {
		s := Summarize([]*types.Experiment{
			rec("EXP-001", "0.1M K2CO3", types.ModeCV, -0.1, 0.01),
			rec("EXP-002", "0.1M K2CO3", types.ModeCV, -0.3, 0.03),
		})
		assert.Equal(t, 2, s.Count)
		assert.InDelta(t, -0.2, s.Anode.Mean, 1e-9)
		// Population std of {-0.1, -0.3} is 0.1.
		assert.InDelta(t, 0.1, s.Anode.Std, 1e-9)
		assert.InDelta(t, -0.3, s.Anode.Min, 1e-9)
		assert.InDelta(t, -0.1, s.Anode.Max, 1e-9)
		assert.InDelta(t, 0.1, s.CathodeAnodeRatio, 1e-9)
	})

	t.Run("zero anode delta excluded from ratio", func(t *testing.T) {
		s := Summarize([]*types.Experiment{
			rec("EXP-001", "0.1M K2CO3", types.ModeCV, 0, 0.05),
			rec("EXP-002", "0.1M K2CO3", types.ModeCV, -0.1, 0.01),
		})
		assert.InDelta(t, 0.1, s.CathodeAnodeRatio, 1e-9)
	})
}

func TestGroupedSummaries(t *testing.T) {
	records := []*types.Experiment{
		rec("EXP-001", "0.1M K2CO3", types.ModeCV, -0.1, 0.01),
		rec("EXP-002", "0.1M K2CO3", types.ModeCV, -0.2, 0.02),
		rec("EXP-003", "0.1M K2CO3", types.ModeCC, -0.4, 0.01),
		rec("EXP-004", "0.1M Na2SO4", types.ModeCV, -0.05, 0.01),
	}

	grouped := GroupedSummaries(records)
	require.Len(t, grouped, 3)

	cv := grouped[GroupKey{Electrolyte: "0.1M K2CO3", Mode: types.ModeCV}]
	assert.Equal(t, 2, cv.Count)
	assert.InDelta(t, -0.15, cv.Anode.Mean, 1e-9)

	cc := grouped[GroupKey{Electrolyte: "0.1M K2CO3", Mode: types.ModeCC}]
	assert.Equal(t, 1, cc.Count)

	sulfate := grouped[GroupKey{Electrolyte: "0.1M Na2SO4", Mode: types.ModeCV}]
	assert.Equal(t, 1, sulfate.Count)
}

func TestDetectAnomalies(t *testing.T) {
	th := DefaultThresholds()

	findTypes := func(anomalies []Anomaly, label string) []string {
		var out []string
		for _, a := range anomalies {
			if a.Label == label {
				out = append(out, a.Type)
			}
		}
		return out
	}

	t.Run("no records no anomalies", func(t *testing.T) {
		assert.Empty(t, DetectAnomalies(nil, th))
	})

	t.Run("quiet records pass", func(t *testing.T) {
		anomalies := DetectAnomalies([]*types.Experiment{
			rec("EXP-001", "0.1M K2CO3", types.ModeCV, -0.2, 0.01),
			rec("EXP-002", "0.1M K2CO3", types.ModeCV, -0.21, 0.01),
		}, th)
		assert.Empty(t, anomalies)
	})

	t.Run("high cathode loss ratio", func(t *testing.T) {
		anomalies := DetectAnomalies([]*types.Experiment{
			rec("EXP-001", "0.1M K2CO3", types.ModeCV, -0.1, -0.08),
		}, th)
		assert.Contains(t, findTypes(anomalies, "EXP-001"), AnomalyHighCathodeLoss)
	})

	t.Run("high anode gain", func(t *testing.T) {
		anomalies := DetectAnomalies([]*types.Experiment{
			rec("EXP-001", "0.1M K2CO3", types.ModeCV, 0.15, 0.01),
		}, th)
		assert.Contains(t, findTypes(anomalies, "EXP-001"), AnomalyHighAnodeLoss)
	})

	t.Run("unstable group", func(t *testing.T) {
		// Anode deltas {-0.1, -0.3}: population std 0.1 >= 0.05.
		anomalies := DetectAnomalies([]*types.Experiment{
			rec("EXP-001", "0.1M K2CO3", types.ModeCV, -0.1, 0.01),
			rec("EXP-002", "0.1M K2CO3", types.ModeCV, -0.3, 0.01),
		}, th)
		assert.Contains(t,
			findTypes(anomalies, "GROUP-0.1M K2CO3-CV"),
			AnomalyUnstableResults)
	})

	t.Run("custom thresholds", func(t *testing.T) {
		strict := Thresholds{CathodeLossRatio: 0.01, AnodeLossG: 1000, InstabilityStdG: 1000}
		anomalies := DetectAnomalies([]*types.Experiment{
			rec("EXP-001", "0.1M K2CO3", types.ModeCV, -0.1, 0.01),
		}, strict)
		require.Len(t, anomalies, 1)
		assert.Equal(t, AnomalyHighCathodeLoss, anomalies[0].Type)
	})

	t.Run("zero anode delta skips ratio check", func(t *testing.T) {
		anomalies := DetectAnomalies([]*types.Experiment{
			rec("EXP-001", "0.1M K2CO3", types.ModeCV, 0, 0.5),
		}, th)
		assert.Empty(t, findTypes(anomalies, "EXP-001"))
	})
}
