package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cometsh/atkit/lexicon"
	"github.com/cometsh/atkit/syntax"
)

var genCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate Go packages embedding compiled Lexicon documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		cat := lexicon.NewBaseCatalog()
		raws := make(map[syntax.NSID][]byte)
		fsys := os.DirFS(cfg.Lexicons)
		err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() || !strings.HasSuffix(p, ".json") {
				return nil
			}
			raw, err := fs.ReadFile(fsys, p)
			if err != nil {
				return err
			}
			b, err := cat.AddJSON(raw)
			if err != nil {
				return fmt.Errorf("%s: %w", p, err)
			}
			raws[b.ID()] = raw
			return nil
		})
		if err != nil {
			return fmt.Errorf("compile lexicons: %w", err)
		}
		bundles := cat.Bundles()
		if len(bundles) == 0 {
			return fmt.Errorf("no lexicon documents found under %s", cfg.Lexicons)
		}
		for _, b := range bundles {
			rel, src, err := emitUnit(b, raws[b.ID()])
			if err != nil {
				return fmt.Errorf("generate %s: %w", b.ID(), err)
			}
			dst := filepath.Join(cfg.Out, filepath.FromSlash(rel))
			if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(dst, src, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", dst)
		}
		return nil
	},
}

func init() {
	genCmd.Flags().StringVar(&outDir, "out", "", "output directory for generated packages (default: gen)")
}
