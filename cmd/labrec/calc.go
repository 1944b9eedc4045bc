// Calc command computes reagent amounts for preparing an electrolyte solution.
package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/labrec/pkg/reagent"
)

var (
	calcChemical  string
	calcMolarMass float64
	calcKind      string
	calcDensity   float64
	calcPurity    float64
	calcVolume    float64
	calcMolarity  float64
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute reagent mass or volume for a target solution",
	Long: `Calc computes how much reagent is needed to prepare a solution of the
requested volume and molarity. Pick a built-in chemical with --chemical, or
describe one manually with --molar-mass, --kind, and for liquids --density
and --purity.

Known chemicals: ` + strings.Join(reagent.PresetNames(), ", "),
	Args: cobra.NoArgs,
	RunE: runCalc,
}

func init() {
	calcCmd.Flags().StringVarP(&calcChemical, "chemical", "c", "", "built-in chemical name")
	calcCmd.Flags().Float64Var(&calcMolarMass, "molar-mass", 0, "molar mass in g/mol")
	calcCmd.Flags().StringVar(&calcKind, "kind", reagent.KindSolid, "chemical kind (solid or liquid)")
	calcCmd.Flags().Float64Var(&calcDensity, "density", 0, "density in g/mL (liquids)")
	calcCmd.Flags().Float64Var(&calcPurity, "purity", 1.0, "mass fraction purity in (0, 1] (liquids)")
	calcCmd.Flags().Float64VarP(&calcVolume, "volume", "v", 500, "target solution volume in mL")
	calcCmd.Flags().Float64VarP(&calcMolarity, "molarity", "m", 0.10, "target concentration in mol/L")
}

func runCalc(cmd *cobra.Command, args []string) error {
	var (
		spec reagent.ChemicalSpec
		name string
		err  error
	)
	switch {
	case calcChemical != "":
		name = calcChemical
		spec, err = reagent.Preset(calcChemical)
		if err != nil {
			return err
		}
	default:
		name = "custom chemical"
		spec = reagent.ChemicalSpec{
			MolarMass: calcMolarMass,
			Kind:      calcKind,
			Density:   calcDensity,
			Purity:    calcPurity,
		}
	}

	result, err := reagent.Prepare(reagent.PreparationRequest{
		VolumeML: calcVolume,
		Molarity: calcMolarity,
		Chemical: spec,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(result)
	}

	fmt.Printf("Preparing %g mL of %g M %s:\n", calcVolume, calcMolarity, name)
	switch result.Kind {
	case reagent.KindSolid:
		fmt.Printf("  Weigh %.4f g of solid.\n", result.MassG)
	case reagent.KindLiquid:
		fmt.Printf("  Pure solute needed:    %.4f g\n", result.PureMassG)
		fmt.Printf("  Concentrate to weigh:  %.4f g\n", result.ConcentrateMassG)
		fmt.Printf("  Concentrate to measure: %.4f mL\n", result.ConcentrateVolumeML)
	}
	fmt.Printf("Dissolve and dilute to %g mL total volume.\n", calcVolume)
	return nil
}
