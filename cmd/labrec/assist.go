// Assist commands ask the AI assistant about recorded experiments.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labrec/internal/analysis"
	"github.com/mesh-intelligence/labrec/internal/assistant"
	"github.com/mesh-intelligence/labrec/pkg/types"
)

var assistLast int

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Ask the AI assistant about recorded experiments",
	Long: `Assist sends recorded experiment data to an OpenAI-compatible chat
completion API. The API key is read from the OPENAI_API_KEY environment
variable; model and endpoint come from config.yaml.`,
}

var assistSummarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize the most recent experiments",
	Args:  cobra.NoArgs,
	RunE:  runAssistSummarize,
}

var assistExplainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Explain detected anomalies",
	Args:  cobra.NoArgs,
	RunE:  runAssistExplain,
}

var assistReportCmd = &cobra.Command{
	Use:   "report",
	Short: "Draft a report section and save it under the data directory",
	Args:  cobra.NoArgs,
	RunE:  runAssistReport,
}

func init() {
	assistCmd.PersistentFlags().IntVar(&assistLast, "last", 5, "number of most recent records to include")
	assistCmd.AddCommand(assistSummarizeCmd)
	assistCmd.AddCommand(assistExplainCmd)
	assistCmd.AddCommand(assistReportCmd)
}

// recentRecords fetches the assistLast most recent records.
func recentRecords(table types.RecordTable) ([]*types.Experiment, error) {
	records, err := table.Fetch(types.Filter{})
	if err != nil {
		return nil, fmt.Errorf("fetch records: %w", err)
	}
	if len(records) == 0 {
		return nil, assistant.ErrNoRecords
	}
	if assistLast > 0 && len(records) > assistLast {
		records = records[:assistLast]
	}
	return records, nil
}

func runAssistSummarize(cmd *cobra.Command, args []string) error {
	helper, err := newAssistant()
	if err != nil {
		return err
	}

	backend, table, err := attachRecords()
	if err != nil {
		return err
	}
	defer backend.Detach()

	records, err := recentRecords(table)
	if err != nil {
		return err
	}

	reply, err := helper.SummarizeExperiments(cmd.Context(), records)
	if err != nil {
		return fmt.Errorf("summarize experiments: %w", err)
	}
	fmt.Println(reply)
	return nil
}

func runAssistExplain(cmd *cobra.Command, args []string) error {
	helper, err := newAssistant()
	if err != nil {
		return err
	}

	backend, table, err := attachRecords()
	if err != nil {
		return err
	}
	defer backend.Detach()

	records, err := recentRecords(table)
	if err != nil {
		return err
	}

	anomalies := analysis.DetectAnomalies(records, thresholdsFromConfig(appConfig))
	reply, err := helper.ExplainAnomalies(cmd.Context(), anomalies, records)
	if err != nil {
		return fmt.Errorf("explain anomalies: %w", err)
	}
	fmt.Println(reply)
	return nil
}

func runAssistReport(cmd *cobra.Command, args []string) error {
	helper, err := newAssistant()
	if err != nil {
		return err
	}

	backend, table, err := attachRecords()
	if err != nil {
		return err
	}
	defer backend.Detach()

	records, err := recentRecords(table)
	if err != nil {
		return err
	}

	summary := analysis.Summarize(records)
	anomalies := analysis.DetectAnomalies(records, thresholdsFromConfig(appConfig))

	content, err := helper.DraftReport(cmd.Context(), records, summary, anomalies)
	if err != nil {
		return fmt.Errorf("draft report: %w", err)
	}

	dataDir, err := resolveDataDir()
	if err != nil {
		return fmt.Errorf("resolve data dir: %w", err)
	}
	path, err := assistant.SaveReport(filepath.Join(dataDir, "reports"), content)
	if err != nil {
		return err
	}

	fmt.Println(content)
	fmt.Printf("\nSaved report to %s\n", path)
	return nil
}
