package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexforge/lexforge/internal/artifact"
	"github.com/lexforge/lexforge/internal/codegen"
	"github.com/lexforge/lexforge/internal/dsl"
	"github.com/lexforge/lexforge/internal/tui"
)

var (
	generateType         string
	generateJurisdiction string
	generateFile         string
	generateOutput       string
	generateInteractive  bool
	generateAll          bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a smart contract with deployment and test scripts",
	Long: `Generate contract source from a YAML definition file, an interactive
wizard session, or a basic --type/--jurisdiction preset. The definition is
validated first; nothing is written while structural defects remain.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateType, "type", "", "contract type (escrow, insurance, settlement)")
	generateCmd.Flags().StringVar(&generateJurisdiction, "jurisdiction", "", "jurisdiction (india, eu, us)")
	generateCmd.Flags().StringVar(&generateFile, "file", "", "YAML contract definition file")
	generateCmd.Flags().StringVar(&generateOutput, "output", "", "output directory (default from config)")
	generateCmd.Flags().BoolVar(&generateInteractive, "interactive", false, "build the definition interactively")
	generateCmd.Flags().BoolVar(&generateAll, "all", false, "render the contract for every supported jurisdiction")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	def, err := resolveDefinition()
	if err != nil {
		return err
	}

	defects := dsl.ValidateContract(def)
	if len(defects) > 0 {
		fmt.Println("Validation errors:")
		for _, defect := range defects {
			fmt.Printf("  - %s\n", defect)
		}
		return fmt.Errorf("definition has %d validation error(s); nothing was written", len(defects))
	}

	registry, err := loadBundleRegistry(cfg, logger)
	if err != nil {
		return err
	}
	engine, err := codegen.New(codegen.WithRegistry(registry), codegen.WithLogger(logger))
	if err != nil {
		return err
	}

	outputDir := cfg.OutputDir
	if generateOutput != "" {
		outputDir = generateOutput
	}
	writer := artifact.NewWriter(outputDir)

	if generateAll {
		return generateAllJurisdictions(engine, writer, def, logger)
	}
	return generateOne(engine, writer, def, logger)
}

func resolveDefinition() (dsl.ContractDefinition, error) {
	switch {
	case generateInteractive:
		def, ok, err := tui.Run()
		if err != nil {
			return dsl.ContractDefinition{}, err
		}
		if !ok {
			return dsl.ContractDefinition{}, fmt.Errorf("interactive definition aborted")
		}
		return def, nil
	case generateFile != "":
		return dsl.ParseFile(generateFile)
	case generateType != "" && generateJurisdiction != "":
		return basicDefinition(generateType, generateJurisdiction)
	default:
		return dsl.ContractDefinition{}, fmt.Errorf("specify --file, --type with --jurisdiction, or --interactive")
	}
}

func generateOne(engine *codegen.Engine, writer *artifact.Writer, def dsl.ContractDefinition, logger *zap.Logger) error {
	fmt.Printf("Generating %s contract for %s...\n", def.ContractType, def.Jurisdiction)

	source, err := engine.GenerateContract(def)
	if err != nil {
		return err
	}
	contractPath, err := writer.WriteContract(def.ContractType, def.Jurisdiction, source)
	if err != nil {
		return err
	}
	fmt.Printf("Contract generated successfully: %s\n", contractPath)

	deployScript, err := engine.CreateDeploymentScript(def)
	if err != nil {
		return err
	}
	deployPath, err := writer.WriteDeployScript(def.ContractType, def.Jurisdiction, deployScript)
	if err != nil {
		return err
	}
	fmt.Printf("Deployment script: %s\n", deployPath)

	testScript, err := engine.CreateTestScript(def)
	if err != nil {
		return err
	}
	testPath, err := writer.WriteTestScript(def.ContractType, def.Jurisdiction, testScript)
	if err != nil {
		return err
	}
	fmt.Printf("Test script: %s\n", testPath)

	logger.Info("generation complete",
		zap.String("type", def.ContractType),
		zap.String("jurisdiction", def.Jurisdiction),
		zap.String("output", writer.Dir()))
	return nil
}

func generateAllJurisdictions(engine *codegen.Engine, writer *artifact.Writer, def dsl.ContractDefinition, logger *zap.Logger) error {
	rendered, err := engine.GenerateAll(def)
	if err != nil {
		return err
	}
	for _, artifactOut := range rendered {
		path, err := writer.WriteContract(artifactOut.ContractType, artifactOut.Jurisdiction, artifactOut.Source)
		if err != nil {
			return err
		}
		fmt.Printf("Contract generated: %s\n", path)
	}
	logger.Info("generation complete for all jurisdictions",
		zap.String("type", def.ContractType),
		zap.Int("count", len(rendered)))
	return nil
}

// basicDefinition builds the minimal valid preset for a contract type, used
// when the caller supplies --type and --jurisdiction without a file.
func basicDefinition(contractType, jurisdiction string) (dsl.ContractDefinition, error) {
	var parties []dsl.Party
	var conditions []dsl.Condition
	switch contractType {
	case dsl.TypeEscrow:
		parties = []dsl.Party{
			{Name: "Buyer", Role: "payer", VerificationRequired: true},
			{Name: "Seller", Role: "payee", VerificationRequired: true},
		}
		conditions = []dsl.Condition{{Trigger: "delivery_confirmed", Action: "release_funds"}}
	case dsl.TypeInsurance:
		parties = []dsl.Party{
			{Name: "Insurance Company", Role: "insurer", VerificationRequired: true},
			{Name: "Policy Holder", Role: "insured", VerificationRequired: true},
		}
		conditions = []dsl.Condition{{Trigger: "claim_submitted", Action: "process_claim"}}
	case dsl.TypeSettlement:
		parties = []dsl.Party{
			{Name: "Plaintiff", Role: "plaintiff", VerificationRequired: true},
			{Name: "Defendant", Role: "defendant", VerificationRequired: true},
		}
		conditions = []dsl.Condition{{Trigger: "agreement_reached", Action: "execute_settlement"}}
	default:
		return dsl.ContractDefinition{}, &dsl.UnsupportedTypeError{ContractType: contractType}
	}
	if !dsl.IsSupportedJurisdiction(jurisdiction) {
		return dsl.ContractDefinition{}, &dsl.UnsupportedJurisdictionError{Jurisdiction: jurisdiction}
	}
	return dsl.ContractDefinition{
		ContractType:      contractType,
		Jurisdiction:      jurisdiction,
		Parties:           parties,
		Conditions:        conditions,
		LegalRequirements: []string{},
		Metadata:          map[string]any{},
	}, nil
}
