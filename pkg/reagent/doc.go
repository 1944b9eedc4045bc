// Package reagent computes solution preparation quantities for common
// electrolytes. Given a target volume and molarity plus a chemical's
// physical properties, Prepare returns the solid mass to weigh out or,
// for a liquid concentrate, the concentrate mass and volume to measure.
//
// All functions are pure and safe for concurrent use. No rounding is
// performed; formatting for display is the caller's concern.
package reagent
