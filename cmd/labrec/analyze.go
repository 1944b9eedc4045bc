// Analyze command summarizes experiment records and flags anomalies.
package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labrec/internal/analysis"
)

var (
	analyzeSince       string
	analyzeUntil       string
	analyzeMode        string
	analyzeElectrolyte string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Show mass-change statistics and anomaly warnings",
	Args:  cobra.NoArgs,
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeSince, "since", "", "only records on or after this date (YYYY-MM-DD or RFC3339)")
	analyzeCmd.Flags().StringVar(&analyzeUntil, "until", "", "only records on or before this date (YYYY-MM-DD or RFC3339)")
	analyzeCmd.Flags().StringVar(&analyzeMode, "mode", "", "filter by electrolysis mode (CV or CC)")
	analyzeCmd.Flags().StringVar(&analyzeElectrolyte, "electrolyte", "", "filter by electrolyte")
}

// analysisReport is the JSON shape of an analyze run.
type analysisReport struct {
	Summary   analysis.Summary   `json:"summary"`
	Groups    []groupReport      `json:"groups"`
	Anomalies []analysis.Anomaly `json:"anomalies"`
}

type groupReport struct {
	Electrolyte string           `json:"electrolyte"`
	Mode        string           `json:"mode"`
	Summary     analysis.Summary `json:"summary"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter(analyzeSince, analyzeUntil, analyzeMode, analyzeElectrolyte, "")
	if err != nil {
		return err
	}

	backend, table, err := attachRecords()
	if err != nil {
		return err
	}
	defer backend.Detach()

	records, err := table.Fetch(filter)
	if err != nil {
		return fmt.Errorf("fetch records: %w", err)
	}
	if len(records) == 0 {
		fmt.Println("No records to analyze.")
		return nil
	}

	thresholds := thresholdsFromConfig(appConfig)
	summary := analysis.Summarize(records)
	grouped := analysis.GroupedSummaries(records)
	anomalies := analysis.DetectAnomalies(records, thresholds)

	keys := make([]analysis.GroupKey, 0, len(grouped))
	for k := range grouped {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Electrolyte != keys[j].Electrolyte {
			return keys[i].Electrolyte < keys[j].Electrolyte
		}
		return keys[i].Mode < keys[j].Mode
	})

	if flagJSON {
		report := analysisReport{Summary: summary, Groups: []groupReport{}, Anomalies: anomalies}
		for _, k := range keys {
			report.Groups = append(report.Groups, groupReport{
				Electrolyte: k.Electrolyte,
				Mode:        k.Mode,
				Summary:     grouped[k],
			})
		}
		return printJSON(report)
	}

	fmt.Printf("Analyzed %d record(s)\n\n", summary.Count)
	printStatsTable("Overall", summary)
	for _, k := range keys {
		fmt.Println()
		printStatsTable(fmt.Sprintf("%s / %s", k.Electrolyte, k.Mode), grouped[k])
	}

	fmt.Println()
	if len(anomalies) == 0 {
		fmt.Println("No anomalies detected.")
		return nil
	}
	fmt.Printf("%d anomaly warning(s):\n", len(anomalies))
	for _, a := range anomalies {
		fmt.Printf("  [%s] %s: %s\n", a.Type, a.Label, a.Message)
	}
	return nil
}

// printStatsTable prints anode/cathode statistics for one record group.
func printStatsTable(title string, s analysis.Summary) {
	fmt.Printf("%s (%d record(s), cathode/anode ratio %.3f):\n", title, s.Count, s.CathodeAnodeRatio)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  \tMEAN\tSTD\tMIN\tMAX")
	fmt.Fprintf(w, "  Δm+ (g)\t%.4f\t%.4f\t%.4f\t%.4f\n", s.Anode.Mean, s.Anode.Std, s.Anode.Min, s.Anode.Max)
	fmt.Fprintf(w, "  Δm- (g)\t%.4f\t%.4f\t%.4f\t%.4f\n", s.Cathode.Mean, s.Cathode.Std, s.Cathode.Min, s.Cathode.Max)
	w.Flush()
}
