// List command prints experiment records with optional filters.
package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	listSince       string
	listUntil       string
	listMode        string
	listElectrolyte string
	listSearch      string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List experiment records, newest first",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listSince, "since", "", "only records on or after this date (YYYY-MM-DD or RFC3339)")
	listCmd.Flags().StringVar(&listUntil, "until", "", "only records on or before this date (YYYY-MM-DD or RFC3339)")
	listCmd.Flags().StringVar(&listMode, "mode", "", "filter by electrolysis mode (CV or CC)")
	listCmd.Flags().StringVar(&listElectrolyte, "electrolyte", "", "filter by electrolyte")
	listCmd.Flags().StringVar(&listSearch, "search", "", "substring match against label and notes")
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := buildFilter(listSince, listUntil, listMode, listElectrolyte, listSearch)
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

	if flagJSON {
		return printJSON(records)
	}

	if len(records) == 0 {
		fmt.Println("No records found.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tRECORDED\tMODE\tELECTROLYTE\tΔM+ (G)\tΔM- (G)")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%.4f\t%.4f\n",
			r.RecordID, r.Label, r.RecordedAt.Format("2006-01-02 15:04"),
			r.Mode, r.Electrolyte, r.AnodeDeltaG, r.CathodeDeltaG)
	}
	w.Flush()
	fmt.Printf("%d record(s)\n", len(records))
	return nil
}
