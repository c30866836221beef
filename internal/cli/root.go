// Package cli wires the cobra command tree for the slopestored daemon.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string
	quiet      bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slopestored",
	Short: "slopestored - escrow marketplace ledger daemon",
	Long: `slopestored runs an escrow-based marketplace ledger: named stores,
per-asset escrow records, atomic buy/sell/redeem settlement with an
append-only sale history, served over an HTTP API with a websocket
event feed.`,
	Version: "0.1.0-dev",
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "conf", "", "configuration file path")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress output to console after startup")
	rootCmd.PersistentFlags().Bool("standalone", false, "run with an in-memory ledger, nothing on disk")
}
