// Lookup command asks the assistant for a chemical's molar mass.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup <formula>",
	Short: "Look up a chemical's molar mass via the assistant",
	Args:  cobra.ExactArgs(1),
	RunE:  runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	helper, err := newAssistant()
	if err != nil {
		return err
	}

	mass, err := helper.LookupMolarMass(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("lookup molar mass: %w", err)
	}

	if flagJSON {
		return printJSON(struct {
			Formula   string  `json:"formula"`
			MolarMass float64 `json:"molar_mass"`
		}{Formula: args[0], MolarMass: mass})
	}
	fmt.Printf("%s: %g g/mol\n", args[0], mass)
	return nil
}
