// Package analysis computes summary statistics and anomaly findings over
// experiment records: per-electrode mass delta statistics, the same
// statistics grouped by electrolyte and mode, and threshold-based anomaly
// detection.
package analysis

import (
	"fmt"
	"math"

	"github.com/mesh-intelligence/labrec/pkg/types"
)

// Stats holds summary statistics for one series of mass deltas.
// Std is the population standard deviation.
type Stats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Summary aggregates the statistics of a set of records.
// CathodeAnodeRatio is the mean of |Δm-|/|Δm+| over records with a
// non-zero anode delta; zero when no record qualifies.
type Summary struct {
	Count             int     `json:"count"`
	Anode             Stats   `json:"anode"`
	Cathode           Stats   `json:"cathode"`
	CathodeAnodeRatio float64 `json:"cathode_anode_ratio"`
}

// GroupKey identifies an electrolyte/mode combination.
type GroupKey struct {
	Electrolyte string `json:"electrolyte"`
	Mode        string `json:"mode"`
}

// seriesStats computes Stats over values. Returns the zero value for an
// empty series.
func seriesStats(values []float64) Stats {
	if len(values) == 0 {
		return Stats{}
	}

	s := Stats{Min: values[0], Max: values[0]}
	var sum float64
	for _, v := range values {
		sum += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean = sum / float64(len(values))

	var sqSum float64
	for _, v := range values {
		d := v - s.Mean
		sqSum += d * d
	}
	s.Std = math.Sqrt(sqSum / float64(len(values)))
	return s
}

// Summarize computes the Summary over records.
func Summarize(records []*types.Experiment) Summary {
	summary := Summary{Count: len(records)}
	if len(records) == 0 {
		return summary
	}

	anode := make([]float64, len(records))
	cathode := make([]float64, len(records))
	var ratioSum float64
	var ratioCount int
	for i, r := range records {
		anode[i] = r.AnodeDeltaG
		cathode[i] = r.CathodeDeltaG
		if r.AnodeDeltaG != 0 {
			ratioSum += math.Abs(r.CathodeDeltaG) / math.Abs(r.AnodeDeltaG)
			ratioCount++
		}
	}

	summary.Anode = seriesStats(anode)
	summary.Cathode = seriesStats(cathode)
	if ratioCount > 0 {
		summary.CathodeAnodeRatio = ratioSum / float64(ratioCount)
	}
	return summary
}

// groupRecords buckets records by electrolyte and mode.
func groupRecords(records []*types.Experiment) map[GroupKey][]*types.Experiment {
	groups := make(map[GroupKey][]*types.Experiment)
	for _, r := range records {
		key := GroupKey{Electrolyte: r.Electrolyte, Mode: r.Mode}
		groups[key] = append(groups[key], r)
	}
	return groups
}

// GroupedSummaries computes a Summary per electrolyte/mode combination.
func GroupedSummaries(records []*types.Experiment) map[GroupKey]Summary {
	result := make(map[GroupKey]Summary)
	for key, group := range groupRecords(records) {
		result[key] = Summarize(group)
	}
	return result
}

// Thresholds configures anomaly detection limits.
type Thresholds struct {
	CathodeLossRatio float64 // |Δm-|/|Δm+| at or above this flags a record.
	AnodeLossG       float64 // Δm+ at or above this flags a record.
	InstabilityStdG  float64 // per-group anode Δm std at or above this flags the group.
}

// DefaultThresholds returns the stock detection limits.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CathodeLossRatio: 0.5,
		AnodeLossG:       0.1,
		InstabilityStdG:  0.05,
	}
}

// Anomaly types.
const (
	AnomalyHighCathodeLoss = "HIGH_CATHODE_LOSS"
	AnomalyHighAnodeLoss   = "HIGH_ANODE_LOSS"
	AnomalyUnstableResults = "UNSTABLE_RESULTS"
)

// Anomaly describes one detected anomaly. Label names the record, or a
// synthetic GROUP-<electrolyte>-<mode> identifier for group findings.
type Anomaly struct {
	Label   string `json:"label"`
	Type    string `json:"type"`
	Message string `json:"message"`
}

// DetectAnomalies evaluates every record and every electrolyte/mode group
// against the thresholds.
func DetectAnomalies(records []*types.Experiment, th Thresholds) []Anomaly {
	var anomalies []Anomaly
	if len(records) == 0 {
		return anomalies
	}

	for _, r := range records {
		if r.AnodeDeltaG != 0 {
			ratio := math.Abs(r.CathodeDeltaG) / math.Abs(r.AnodeDeltaG)
			if ratio >= th.CathodeLossRatio {
				anomalies = append(anomalies, Anomaly{
					Label: r.Label,
					Type:  AnomalyHighCathodeLoss,
					Message: fmt.Sprintf(
						"cathode mass change is large: |Δm-|/|Δm+| = %.2f exceeds threshold %.2f",
						ratio, th.CathodeLossRatio),
				})
			}
		}
		if r.AnodeDeltaG >= th.AnodeLossG {
			anomalies = append(anomalies, Anomaly{
				Label: r.Label,
				Type:  AnomalyHighAnodeLoss,
				Message: fmt.Sprintf(
					"anode mass change %.3f g exceeds threshold %.3f g",
					r.AnodeDeltaG, th.AnodeLossG),
			})
		}
	}

	for key, group := range groupRecords(records) {
		std := Summarize(group).Anode.Std
		if std >= th.InstabilityStdG {
			anomalies = append(anomalies, Anomaly{
				Label: fmt.Sprintf("GROUP-%s-%s", key.Electrolyte, key.Mode),
				Type:  AnomalyUnstableResults,
				Message: fmt.Sprintf(
					"anode Δm std %.3f g under (%s, %s) exceeds threshold %.3f g",
					std, key.Electrolyte, key.Mode, th.InstabilityStdG),
			})
		}
	}
	return anomalies
}
