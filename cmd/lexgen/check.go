package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cometsh/atkit/lexicon"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile all Lexicon documents and report, writing nothing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cat := lexicon.NewBaseCatalog()
		if err := cat.LoadDirectory(os.DirFS(cfg.Lexicons), "."); err != nil {
			return fmt.Errorf("compile lexicons: %w", err)
		}
		for _, b := range cat.Bundles() {
			fmt.Fprintf(cmd.OutOrStdout(), "ok  %s (%d defs)\n", b.ID(), len(b.DefNames()))
		}
		return nil
	},
}
