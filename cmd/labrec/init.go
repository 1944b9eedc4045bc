// Init command creates the configuration and storage directories.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize labrec configuration and storage",
	Long: `Init creates the configuration directory with a default config.yaml
and initializes the record database under the data directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Config dir and default config.yaml were created by
		// PersistentPreRunE; attaching creates the database.
		backend, err := attachStore()
		if err != nil {
			return err
		}
		defer backend.Detach()

		dataDir, err := resolveDataDir()
		if err != nil {
			return fmt.Errorf("resolve data dir: %w", err)
		}

		fmt.Printf("Initialized labrec storage in %s\n", dataDir)
		return nil
	},
}
