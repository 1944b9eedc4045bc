package reagent

import (
	"errors"
	"sort"
)

// ErrUnknownChemical is returned by Preset for names not in the catalog.
var ErrUnknownChemical = errors.New("unknown chemical")

// presets is the built-in catalog of common electrolytes. Molar masses are
// in g/mol. H2SO4 is stocked as a concentrate (98% by mass, 1.84 g/mL);
// everything else is weighed out as a solid.
var presets = map[string]ChemicalSpec{
	"K2CO3":          {MolarMass: 138.205, Kind: KindSolid},
	"Na2CO3":         {MolarMass: 105.9888, Kind: KindSolid},
	"Na2CO3·10H2O":   {MolarMass: 286.141, Kind: KindSolid},
	"KNO3":           {MolarMass: 101.1032, Kind: KindSolid},
	"Sr(NO3)2":       {MolarMass: 211.629, Kind: KindSolid},
	"Mg(NO3)2":       {MolarMass: 148.313, Kind: KindSolid},
	"Mg(NO3)2·6H2O":  {MolarMass: 256.41, Kind: KindSolid},
	"Na2SO4":         {MolarMass: 142.04, Kind: KindSolid},
	"Na2SO4·10H2O":   {MolarMass: 322.20, Kind: KindSolid},
	"H2SO4":          {MolarMass: 98.079, Kind: KindLiquid, Density: 1.84, Purity: 0.98},
}

// Preset returns the ChemicalSpec for a catalog name.
// Returns ErrUnknownChemical if the name is not in the catalog.
func Preset(name string) (ChemicalSpec, error) {
	spec, ok := presets[name]
	if !ok {
		return ChemicalSpec{}, ErrUnknownChemical
	}
	return spec, nil
}

// PresetNames returns the catalog names in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
