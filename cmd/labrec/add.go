// Add command creates a new experiment record.
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labrec/pkg/types"
)

var (
	addLabel          string
	addDate           string
	addMode           string
	addVoltage        float64
	addCurrent        float64
	addElectrolyte    string
	addDuration       float64
	addAnodeInitial   float64
	addAnodeFinal     float64
	addCathodeInitial float64
	addCathodeFinal   float64
	addNotes          string
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a new experiment record",
	Long: `Add creates a new experiment record. The anode and cathode mass
deltas are computed automatically from the initial and final masses.

Example:
  labrec add --label EXP-001 --mode CV --voltage 10 \
    --electrolyte "0.1M K2CO3" \
    --anode-initial 5.1234 --anode-final 4.9876 \
    --cathode-initial 5.0000 --cathode-final 5.0100`,
	RunE: runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addLabel, "label", "", "experiment label (required)")
	addCmd.Flags().StringVar(&addDate, "date", "", "experiment date, YYYY-MM-DD or RFC 3339 (default: now)")
	addCmd.Flags().StringVar(&addMode, "mode", "", "electrolysis mode, CV or CC (required)")
	addCmd.Flags().Float64Var(&addVoltage, "voltage", 0, "set voltage in V")
	addCmd.Flags().Float64Var(&addCurrent, "current", 0, "set current in A")
	addCmd.Flags().StringVar(&addElectrolyte, "electrolyte", "", "electrolyte description (required)")
	addCmd.Flags().Float64Var(&addDuration, "duration", 0, "electrolysis duration in minutes")
	addCmd.Flags().Float64Var(&addAnodeInitial, "anode-initial", 0, "anode initial mass in g (required)")
	addCmd.Flags().Float64Var(&addAnodeFinal, "anode-final", 0, "anode final mass in g (required)")
	addCmd.Flags().Float64Var(&addCathodeInitial, "cathode-initial", 0, "cathode initial mass in g (required)")
	addCmd.Flags().Float64Var(&addCathodeFinal, "cathode-final", 0, "cathode final mass in g (required)")
	addCmd.Flags().StringVar(&addNotes, "notes", "", "free-form notes")

	for _, name := range []string{
		"label", "mode", "electrolyte",
		"anode-initial", "anode-final", "cathode-initial", "cathode-final",
	} {
		_ = addCmd.MarkFlagRequired(name)
	}
}

func runAdd(cmd *cobra.Command, args []string) error {
	backend, table, err := attachRecords()
	if err != nil {
		return err
	}
	defer backend.Detach()

	record := &types.Experiment{
		Label:           addLabel,
		Mode:            addMode,
		Electrolyte:     addElectrolyte,
		AnodeInitialG:   addAnodeInitial,
		AnodeFinalG:     addAnodeFinal,
		CathodeInitialG: addCathodeInitial,
		CathodeFinalG:   addCathodeFinal,
		Notes:           addNotes,
	}

	if addDate != "" {
		recordedAt, err := parseTimeFlag(addDate)
		if err != nil {
			return err
		}
		record.RecordedAt = *recordedAt
	}
	if cmd.Flags().Changed("voltage") {
		record.VoltageV = &addVoltage
	}
	if cmd.Flags().Changed("current") {
		record.CurrentA = &addCurrent
	}
	if cmd.Flags().Changed("duration") {
		record.DurationMin = &addDuration
	}

	id, err := table.Set("", record)
	if err != nil {
		return fmt.Errorf("create record: %w", err)
	}

	if flagJSON {
		return printJSON(record)
	}
	fmt.Printf("Created record %s (%s, Δm+ %.4f g, Δm- %.4f g)\n",
		id, record.Label, record.AnodeDeltaG, record.CathodeDeltaG)
	return nil
}
