package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"confluo/pkg/logging"
)

var (
	configFile string
	verbose    bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "confluo",
	Short: "Query and inspect Confluence wiki content",
	Long: `Confluo is a client for Confluence wiki servers. It looks pages and blog
posts up, lists spaces and page hierarchies, and audits stored content for
rendering errors, over the REST API or the legacy RPC endpoint.`,
	Example: `  confluo get-page --space DOCS --page "Getting Started"
  confluo pages --space DOCS
  confluo spaces
  confluo audit --space DOCS`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "info"
		if verbose {
			level = "debug"
		}
		logging.Setup(logging.Config{Level: level, Pretty: true})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags available to all subcommands
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config.yaml", "path to configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}
