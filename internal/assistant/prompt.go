// Prompt builders and reply parsing. These are pure functions so the
// prompt content can be tested without network access.
package assistant

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/labrec/internal/analysis"
	"github.com/mesh-intelligence/labrec/pkg/types"
)

// recordsDigest renders one line per record for inclusion in prompts.
func recordsDigest(records []*types.Experiment) string {
	var sb strings.Builder
	for _, r := range records {
		fmt.Fprintf(&sb, "%s | %s | %s | %s | Δm+ %.4f g | Δm- %.4f g",
			r.Label, r.RecordedAt.Format("2006-01-02 15:04"), r.Mode,
			r.Electrolyte, r.AnodeDeltaG, r.CathodeDeltaG)
		if r.Notes != "" {
			fmt.Fprintf(&sb, " | %s", r.Notes)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// summaryPrompt builds the experiment summary prompt: a numeric digest of
// the overall and per-group means, followed by the question.
func summaryPrompt(records []*types.Experiment) string {
	summary := analysis.Summarize(records)
	grouped := analysis.GroupedSummaries(records)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d records; anode Δm mean %.4f g, cathode Δm mean %.4f g, "+
		"mean |Δm-|/|Δm+| ratio %.2f.\n",
		summary.Count, summary.Anode.Mean, summary.Cathode.Mean, summary.CathodeAnodeRatio)
	for key, group := range grouped {
		fmt.Fprintf(&sb, "Condition %s - %s: anode Δm mean %.4f g, cathode Δm mean %.4f g.\n",
			key.Electrolyte, key.Mode, group.Anode.Mean, group.Cathode.Mean)
	}
	sb.WriteString("\nSummarize the key findings as bullet points and assess " +
		"whether the results match the expectation that exfoliation happens " +
		"mainly at the anode.")
	return sb.String()
}

// anomalyPrompt builds the anomaly explanation prompt.
func anomalyPrompt(anomalies []analysis.Anomaly, records []*types.Experiment) string {
	var sb strings.Builder
	sb.WriteString("The following anomalies were detected. Analyze likely causes " +
		"and suggest improvements.\n\n")
	for _, a := range anomalies {
		fmt.Fprintf(&sb, "%s: %s\n", a.Label, a.Message)
	}
	if len(records) > 0 {
		sb.WriteString("\nRecord data for reference:\n")
		sb.WriteString(recordsDigest(records))
	}
	return sb.String()
}

// reportPrompt builds the report draft prompt.
func reportPrompt(records []*types.Experiment, summary analysis.Summary, anomalies []analysis.Anomaly) string {
	var sb strings.Builder
	sb.WriteString("Write a results-and-discussion draft from the data below. " +
		"Cover the experimental goal, main trends, anode/cathode differences, " +
		"anomaly causes, and suggested improvements.\n\n")
	fmt.Fprintf(&sb, "Statistics: %d records, anode Δm mean %.4f g (std %.4f), "+
		"cathode Δm mean %.4f g (std %.4f).\n\n",
		summary.Count, summary.Anode.Mean, summary.Anode.Std,
		summary.Cathode.Mean, summary.Cathode.Std)
	sb.WriteString("Records:\n")
	sb.WriteString(recordsDigest(records))
	if len(anomalies) > 0 {
		sb.WriteString("\nAnomalies:\n")
		for _, a := range anomalies {
			fmt.Fprintf(&sb, "%s: %s\n", a.Label, a.Message)
		}
	}
	return sb.String()
}

// lookupPrompt builds the molar mass question.
func lookupPrompt(formula string) string {
	return fmt.Sprintf("What is the molar mass of %s in g/mol? "+
		"Reply with only the number.", formula)
}

// parseMolarMass extracts a positive molar mass from a model reply.
// Accepts replies like "98.079", "98.079 g/mol", or "molar mass: 98.079".
func parseMolarMass(reply string) (float64, error) {
	for _, field := range strings.Fields(reply) {
		token := strings.Trim(field, ",;:()")
		token = strings.TrimSuffix(token, "g/mol")
		v, err := strconv.ParseFloat(token, 64)
		if err != nil {
			continue
		}
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("reply contains non-positive molar mass %q", reply)
		}
		return v, nil
	}
	return 0, fmt.Errorf("no molar mass found in reply %q", reply)
}
