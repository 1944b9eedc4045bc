// Delete command removes an experiment record.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <record-id>",
	Short: "Delete an experiment record",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	backend, table, err := attachRecords()
	if err != nil {
		return err
	}
	defer backend.Detach()

	if err := table.Delete(args[0]); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	fmt.Printf("Deleted record %s\n", args[0])
	return nil
}
