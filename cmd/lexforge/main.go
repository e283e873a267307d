// Command lexforge generates jurisdiction-specific smart contract source,
// deployment scripts, and test scripts from YAML contract definitions.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
