package reagent

import (
	"errors"
	"fmt"
	"math"
)

// Chemical kinds. A solid reagent is weighed out directly; a liquid
// reagent is supplied as a concentrate characterized by density and purity.
const (
	KindSolid  = "solid"
	KindLiquid = "liquid"
)

// validKinds is the set of recognized chemical kind values.
var validKinds = map[string]bool{
	KindSolid:  true,
	KindLiquid: true,
}

// ErrInvalidInput is the sentinel all validation failures unwrap to.
// Use errors.As with *InvalidInputError to learn which field failed.
var ErrInvalidInput = errors.New("invalid input")

// InvalidInputError reports the request field that failed validation
// and why. It unwraps to ErrInvalidInput.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// invalid builds an InvalidInputError for the given field.
func invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// ChemicalSpec describes the physical properties of a reagent.
// Density and Purity are meaningful only when Kind is KindLiquid.
type ChemicalSpec struct {
	MolarMass float64 `json:"molar_mass"`        // g/mol
	Kind      string  `json:"kind"`              // KindSolid or KindLiquid
	Density   float64 `json:"density,omitempty"` // g/mL of the concentrate
	Purity    float64 `json:"purity,omitempty"`  // solute mass fraction in (0, 1]
}

// PreparationRequest asks for the quantities needed to prepare VolumeML
// milliliters of solution at Molarity mol/L from the given chemical.
type PreparationRequest struct {
	VolumeML float64      `json:"volume_ml"`
	Molarity float64      `json:"molarity"`
	Chemical ChemicalSpec `json:"chemical"`
}

// PreparationResult carries the computed quantities. Kind discriminates
// the variant: for KindSolid only MassG is set; for KindLiquid the
// PureMassG, ConcentrateMassG, and ConcentrateVolumeML fields are set.
type PreparationResult struct {
	Kind                string  `json:"kind"`
	MassG               float64 `json:"mass_g,omitempty"`
	PureMassG           float64 `json:"pure_mass_g,omitempty"`
	ConcentrateMassG    float64 `json:"concentrate_mass_g,omitempty"`
	ConcentrateVolumeML float64 `json:"concentrate_volume_ml,omitempty"`
}

// positiveFinite reports whether v is a positive, finite number.
func positiveFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// validate checks every precondition before any computation happens.
func (r PreparationRequest) validate() error {
	if !positiveFinite(r.VolumeML) {
		return invalid("volume_ml", "must be a positive finite number")
	}
	if !positiveFinite(r.Molarity) {
		return invalid("molarity", "must be a positive finite number")
	}
	if !positiveFinite(r.Chemical.MolarMass) {
		return invalid("chemical.molar_mass", "must be a positive finite number")
	}
	if !validKinds[r.Chemical.Kind] {
		return invalid("chemical.kind", fmt.Sprintf("must be %q or %q", KindSolid, KindLiquid))
	}
	if r.Chemical.Kind == KindLiquid {
		if !positiveFinite(r.Chemical.Density) {
			return invalid("chemical.density", "must be a positive finite number")
		}
		p := r.Chemical.Purity
		if math.IsNaN(p) || p <= 0 || p > 1 {
			return invalid("chemical.purity", "must be in (0, 1]")
		}
	}
	return nil
}

// Prepare computes the reagent quantities for the request.
//
// For a solid, the required mass is moles * molar mass. For a liquid
// concentrate, dividing the pure solute mass by purity gives the mass of
// the as-supplied solution, and dividing that by density gives its volume.
// Returns an *InvalidInputError when a precondition is violated; no
// partial result is produced in that case.
func Prepare(req PreparationRequest) (PreparationResult, error) {
	if err := req.validate(); err != nil {
		return PreparationResult{}, err
	}

	moles := req.VolumeML / 1000.0 * req.Molarity
	pureMass := moles * req.Chemical.MolarMass

	if req.Chemical.Kind == KindSolid {
		return PreparationResult{
			Kind:  KindSolid,
			MassG: pureMass,
		}, nil
	}

	concentrateMass := pureMass / req.Chemical.Purity
	return PreparationResult{
		Kind:                KindLiquid,
		PureMassG:           pureMass,
		ConcentrateMassG:    concentrateMass,
		ConcentrateVolumeML: concentrateMass / req.Chemical.Density,
	}, nil
}
