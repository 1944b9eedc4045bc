package reagent

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreset(t *testing.T) {
	t.Run("solid preset", func(t *testing.T) {
		spec, err := Preset("K2CO3")
		require.NoError(t, err)
		assert.Equal(t, KindSolid, spec.Kind)
		assert.InDelta(t, 138.205, spec.MolarMass, 1e-9)
		assert.Zero(t, spec.Density)
		assert.Zero(t, spec.Purity)
	})

	t.Run("hydrate preset", func(t *testing.T) {
		spec, err := Preset("Na2SO4·10H2O")
		require.NoError(t, err)
		assert.Equal(t, KindSolid, spec.Kind)
		assert.InDelta(t, 322.20, spec.MolarMass, 1e-9)
	})

	t.Run("liquid preset carries density and purity", func(t *testing.T) {
		spec, err := Preset("H2SO4")
		require.NoError(t, err)
		assert.Equal(t, KindLiquid, spec.Kind)
		assert.InDelta(t, 98.079, spec.MolarMass, 1e-9)
		assert.InDelta(t, 1.84, spec.Density, 1e-9)
		assert.InDelta(t, 0.98, spec.Purity, 1e-9)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := Preset("unobtainium")
		assert.ErrorIs(t, err, ErrUnknownChemical)
	})
}

func TestPresetNames(t *testing.T) {
	names := PresetNames()
	assert.Len(t, names, 10)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "H2SO4")
	assert.Contains(t, names, "Mg(NO3)2·6H2O")
}

func TestEveryPresetPrepares(t *testing.T) {
	// Each catalog entry must be directly usable in a request.
	for _, name := range PresetNames() {
		spec, err := Preset(name)
		require.NoError(t, err)

		result, err := Prepare(PreparationRequest{VolumeML: 500, Molarity: 0.10, Chemical: spec})
		require.NoError(t, err, "preset %s", name)
		assert.Equal(t, spec.Kind, result.Kind)
	}
}
