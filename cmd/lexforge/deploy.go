package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	deployContract string
	deployNetwork  string
)

var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Print deployment instructions for a generated contract",
	Long: `Network integration is out of scope: this prints the hardhat and
truffle invocations for the generated deployment script instead of
submitting anything to a chain.`,
	RunE: runDeploy,
}

func init() {
	deployCmd.Flags().StringVar(&deployContract, "contract", "", "generated contract file to deploy")
	deployCmd.Flags().StringVar(&deployNetwork, "network", "", "target network (default from config)")
	deployCmd.MarkFlagRequired("contract") //nolint:errcheck
}

func runDeploy(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	network := deployNetwork
	if network == "" {
		network = cfg.Network
	}

	fmt.Printf("Deploying contract %s to %s...\n", deployContract, network)
	fmt.Println("To deploy manually, run:")
	fmt.Printf("  npx hardhat run %s --network %s\n", deployContract, network)
	fmt.Println("or")
	fmt.Printf("  truffle migrate --network %s\n", network)
	return nil
}
