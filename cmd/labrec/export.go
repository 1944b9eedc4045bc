// Export command writes all experiment records as CSV.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export experiment records to CSV",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file path (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	backend, table, err := attachRecords()
	if err != nil {
		return err
	}
	defer backend.Detach()

	if exportOut == "" {
		if err := table.ExportCSV(os.Stdout); err != nil {
			return fmt.Errorf("export records: %w", err)
		}
		return nil
	}

	if err := table.ExportCSVFile(exportOut); err != nil {
		return fmt.Errorf("export records: %w", err)
	}
	fmt.Printf("Exported records to %s\n", exportOut)
	return nil
}
