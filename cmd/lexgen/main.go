// lexgen compiles AT Protocol Lexicon JSON documents and generates Go
// packages that embed them and register them with the default catalog.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	lexiconDir string
	outDir     string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:           "lexgen <command>",
	Short:         "Compile Lexicon schemas and generate Go registration packages",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&lexiconDir, "lexicons", "", "directory of *.json Lexicon documents")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to lexgen.yaml (default: ./lexgen.yaml if present)")
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
