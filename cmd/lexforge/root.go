package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lexforge/lexforge/internal/config"
	"github.com/lexforge/lexforge/internal/fragments"
	"github.com/lexforge/lexforge/internal/logging"
)

var debugFlag bool

var rootCmd = &cobra.Command{
	Use:   "lexforge",
	Short: "Generate jurisdiction-specific smart contracts",
	Long: `LexForge turns abstract contract definitions (escrow, insurance,
settlement) into jurisdiction-specific smart contract source text, plus
deployment and test scripts, enforcing structural and legal-role rules
per jurisdiction.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.AddCommand(generateCmd, validateCmd, listTypesCmd, listJurisdictionsCmd, deployCmd)
}

// loadEnvironment resolves project config and the logger for a command run.
func loadEnvironment() (*config.Config, *zap.Logger, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, nil, fmt.Errorf("resolve working directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, nil, err
	}
	logger, err := logging.New(debugFlag || cfg.Debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// loadBundleRegistry returns the built-in fragment bundles extended with any
// YAML or yaegi Go bundle plugins found in the project's bundle directory.
func loadBundleRegistry(cfg *config.Config, logger *zap.Logger) (*fragments.Registry, error) {
	registry, err := fragments.Builtin()
	if err != nil {
		return nil, err
	}
	yamlBundles, err := fragments.LoadBundleDir(cfg.BundleDir)
	if err != nil {
		return nil, err
	}
	goBundles, err := fragments.LoadGoBundleDir(cfg.BundleDir)
	if err != nil {
		return nil, err
	}
	for _, file := range append(yamlBundles, goBundles...) {
		if err := registry.Register(file.Bundle); err != nil {
			return nil, err
		}
		logger.Debug("registered fragment bundle",
			zap.String("jurisdiction", file.Bundle.ID),
			zap.String("source", file.Path))
	}
	return registry, nil
}
