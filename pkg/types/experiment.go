package types

import (
	"errors"
	"time"
)

// Electrolysis modes.
const (
	ModeCV = "CV" // constant voltage
	ModeCC = "CC" // constant current
)

// validModes is the set of recognized mode values.
var validModes = map[string]bool{
	ModeCV: true,
	ModeCC: true,
}

// Entity validation errors.
var (
	ErrInvalidLabel       = errors.New("label must not be empty")
	ErrInvalidMode        = errors.New("mode must be CV or CC")
	ErrInvalidElectrolyte = errors.New("electrolyte must not be empty")
	ErrMissingMass        = errors.New("electrode masses must be positive")
)

// Experiment represents one carbon rod exfoliation run. The anode and
// cathode mass deltas are derived fields: final minus initial, refreshed
// by Recalculate whenever the masses change.
type Experiment struct {
	RecordID        string     `json:"record_id"`              // UUID v7, generated on creation.
	Label           string     `json:"label"`                  // User-facing experiment identifier (unique).
	RecordedAt      time.Time  `json:"recorded_at"`            // When the experiment was run.
	Mode            string     `json:"mode"`                   // ModeCV or ModeCC.
	VoltageV        *float64   `json:"voltage_v,omitempty"`    // Set voltage, CV runs.
	CurrentA        *float64   `json:"current_a,omitempty"`    // Set current, CC runs.
	Electrolyte     string     `json:"electrolyte"`            // Electrolyte description, e.g. "0.1M K2CO3".
	DurationMin     *float64   `json:"duration_min,omitempty"` // Electrolysis duration in minutes.
	AnodeInitialG   float64    `json:"anode_initial_g"`
	AnodeFinalG     float64    `json:"anode_final_g"`
	AnodeDeltaG     float64    `json:"anode_delta_g"` // Derived: final - initial.
	CathodeInitialG float64    `json:"cathode_initial_g"`
	CathodeFinalG   float64    `json:"cathode_final_g"`
	CathodeDeltaG   float64    `json:"cathode_delta_g"` // Derived: final - initial.
	Notes           string     `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Recalculate refreshes the derived mass deltas from the initial and
// final electrode masses.
func (e *Experiment) Recalculate() {
	e.AnodeDeltaG = e.AnodeFinalG - e.AnodeInitialG
	e.CathodeDeltaG = e.CathodeFinalG - e.CathodeInitialG
}

// Validate checks the required fields. Returns a sentinel error from
// this package on the first violation found.
func (e *Experiment) Validate() error {
	if e.Label == "" {
		return ErrInvalidLabel
	}
	if !validModes[e.Mode] {
		return ErrInvalidMode
	}
	if e.Electrolyte == "" {
		return ErrInvalidElectrolyte
	}
	for _, mass := range []float64{
		e.AnodeInitialG, e.AnodeFinalG, e.CathodeInitialG, e.CathodeFinalG,
	} {
		if mass <= 0 {
			return ErrMissingMass
		}
	}
	return nil
}
