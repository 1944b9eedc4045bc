// Update command edits an existing experiment record.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	updateLabel          string
	updateDate           string
	updateMode           string
	updateVoltage        float64
	updateCurrent        float64
	updateElectrolyte    string
	updateDuration       float64
	updateAnodeInitial   float64
	updateAnodeFinal     float64
	updateCathodeInitial float64
	updateCathodeFinal   float64
	updateNotes          string
)

var updateCmd = &cobra.Command{
	Use:   "update <record-id>",
	Short: "Update fields of an experiment record",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateLabel, "label", "", "experiment label")
	updateCmd.Flags().StringVar(&updateDate, "date", "", "recorded date (YYYY-MM-DD or RFC3339)")
	updateCmd.Flags().StringVar(&updateMode, "mode", "", "electrolysis mode (CV or CC)")
	updateCmd.Flags().Float64Var(&updateVoltage, "voltage", 0, "cell voltage in volts")
	updateCmd.Flags().Float64Var(&updateCurrent, "current", 0, "cell current in amperes")
	updateCmd.Flags().StringVar(&updateElectrolyte, "electrolyte", "", "electrolyte name")
	updateCmd.Flags().Float64Var(&updateDuration, "duration", 0, "run duration in minutes")
	updateCmd.Flags().Float64Var(&updateAnodeInitial, "anode-initial", 0, "anode mass before the run in grams")
	updateCmd.Flags().Float64Var(&updateAnodeFinal, "anode-final", 0, "anode mass after the run in grams")
	updateCmd.Flags().Float64Var(&updateCathodeInitial, "cathode-initial", 0, "cathode mass before the run in grams")
	updateCmd.Flags().Float64Var(&updateCathodeFinal, "cathode-final", 0, "cathode mass after the run in grams")
	updateCmd.Flags().StringVar(&updateNotes, "notes", "", "free-form notes")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	backend, table, err := attachRecords()
	if err != nil {
		return err
	}
	defer backend.Detach()

	record, err := table.Get(args[0])
	if err != nil {
		return fmt.Errorf("get record: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("label") {
		record.Label = updateLabel
	}
	if flags.Changed("date") {
		at, err := parseTimeFlag(updateDate)
		if err != nil {
			return err
		}
		if at != nil {
			record.RecordedAt = *at
		}
	}
	if flags.Changed("mode") {
		record.Mode = updateMode
	}
	if flags.Changed("voltage") {
		v := updateVoltage
		record.VoltageV = &v
	}
	if flags.Changed("current") {
		v := updateCurrent
		record.CurrentA = &v
	}
	if flags.Changed("electrolyte") {
		record.Electrolyte = updateElectrolyte
	}
	if flags.Changed("duration") {
		v := updateDuration
		record.DurationMin = &v
	}
	if flags.Changed("anode-initial") {
		record.AnodeInitialG = updateAnodeInitial
	}
	if flags.Changed("anode-final") {
		record.AnodeFinalG = updateAnodeFinal
	}
	if flags.Changed("cathode-initial") {
		record.CathodeInitialG = updateCathodeInitial
	}
	if flags.Changed("cathode-final") {
		record.CathodeFinalG = updateCathodeFinal
	}
	if flags.Changed("notes") {
		record.Notes = updateNotes
	}

	id, err := table.Set(record.RecordID, record)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}

	if flagJSON {
		return printJSON(record)
	}
	fmt.Printf("Updated record %s (%s)\n", id, record.Label)
	return nil
}
