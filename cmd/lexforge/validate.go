package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexforge/lexforge/internal/dsl"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a contract definition file",
	Long: `Parse a YAML contract definition and report every structural defect
at once: party count, condition count, and the role pair the contract type
requires. Parse failures (unknown type or jurisdiction, missing required
fields) are fatal and reported individually.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateFile, "file", "", "YAML contract definition file")
	validateCmd.MarkFlagRequired("file") //nolint:errcheck
}

func runValidate(cmd *cobra.Command, args []string) error {
	def, err := dsl.ParseFile(validateFile)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	defects := dsl.ValidateContract(def)
	if len(defects) > 0 {
		fmt.Println("Validation errors:")
		for _, defect := range defects {
			fmt.Printf("  - %s\n", defect)
		}
		return fmt.Errorf("definition has %d validation error(s)", len(defects))
	}

	fmt.Println("Contract definition is valid!")
	fmt.Printf("Type: %s\n", def.ContractType)
	fmt.Printf("Jurisdiction: %s\n", def.Jurisdiction)
	fmt.Printf("Parties: %d\n", len(def.Parties))
	fmt.Printf("Conditions: %d\n", len(def.Conditions))
	return nil
}
