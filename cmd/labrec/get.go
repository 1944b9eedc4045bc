// Get command shows one experiment record.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labrec/pkg/types"
)

var getCmd = &cobra.Command{
	Use:   "get <record-id>",
	Short: "Show an experiment record",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	backend, table, err := attachRecords()
	if err != nil {
		return err
	}
	defer backend.Detach()

	record, err := table.Get(args[0])
	if err != nil {
		return fmt.Errorf("get record: %w", err)
	}

	if flagJSON {
		return printJSON(record)
	}
	printRecordDetail(record)
	return nil
}

// optCell renders an optional float for display.
func optCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%g", *v)
}

// printRecordDetail prints one record as a key/value listing.
func printRecordDetail(r *types.Experiment) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID:\t%s\n", r.RecordID)
	fmt.Fprintf(w, "Label:\t%s\n", r.Label)
	fmt.Fprintf(w, "Recorded:\t%s\n", r.RecordedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(w, "Mode:\t%s\n", r.Mode)
	fmt.Fprintf(w, "Voltage (V):\t%s\n", optCell(r.VoltageV))
	fmt.Fprintf(w, "Current (A):\t%s\n", optCell(r.CurrentA))
	fmt.Fprintf(w, "Electrolyte:\t%s\n", r.Electrolyte)
	fmt.Fprintf(w, "Duration (min):\t%s\n", optCell(r.DurationMin))
	fmt.Fprintf(w, "Anode (g):\t%.4f -> %.4f (Δ %.4f)\n", r.AnodeInitialG, r.AnodeFinalG, r.AnodeDeltaG)
	fmt.Fprintf(w, "Cathode (g):\t%.4f -> %.4f (Δ %.4f)\n", r.CathodeInitialG, r.CathodeFinalG, r.CathodeDeltaG)
	if r.Notes != "" {
		fmt.Fprintf(w, "Notes:\t%s\n", r.Notes)
	}
	w.Flush()
}
