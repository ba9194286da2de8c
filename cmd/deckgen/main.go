package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"deckgen/internal/config"
	"deckgen/internal/deck"
	"deckgen/internal/model"
	"deckgen/internal/opc"
	"deckgen/internal/sheet"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "deckgen",
		Short:        "Build branded pptx decks from a template and requirement data",
		SilenceUsage: true,
	}
	root.AddCommand(buildCmd(), parseCmd(), layoutsCmd())
	return root
}

func buildCmd() *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a deck from a YAML config",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadDeck(cfgPath)
			if err != nil {
				return err
			}
			if cfg.Output == "" {
				cfg.Output = strings.TrimSuffix(cfgPath, filepath.Ext(cfgPath)) + ".pptx"
			}

			var domains []model.Domain
			if cfg.RequirementsFile != "" {
				if domains, err = config.LoadRequirements(cfg.RequirementsFile); err != nil {
					return err
				}
			}

			out, err := deck.BuildFile(cfg, domains)
			if err != nil {
				return err
			}
			cmd.Printf("wrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "deck config YAML (required)")
	cmd.MarkFlagRequired("config")
	return cmd
}

func parseCmd() *cobra.Command {
	var inPath, outPath string
	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Convert a requirements spreadsheet (csv or xlsx) to JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				domains []model.Domain
				rep     sheet.Report
				err     error
			)
			switch strings.ToLower(filepath.Ext(inPath)) {
			case ".csv":
				f, ferr := os.Open(inPath)
				if ferr != nil {
					return ferr
				}
				defer f.Close()
				domains, rep, err = sheet.ParseCSV(f)
			case ".xlsx":
				domains, rep, err = sheet.ParseXLSXFile(inPath)
			default:
				return fmt.Errorf("unsupported file type: %s", filepath.Ext(inPath))
			}
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, ferr := os.Create(outPath)
				if ferr != nil {
					return ferr
				}
				defer f.Close()
				w = f
			}
			if err := config.EncodeRequirements(w, domains); err != nil {
				return err
			}
			cmd.PrintErrf("%d domains, %d requirements, %d rows skipped\n",
				rep.DomainsFound, rep.RequirementsTotal, rep.RowsSkipped)
			return nil
		},
	}
	cmd.Flags().StringVarP(&inPath, "in", "i", "", "input spreadsheet (required)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "output JSON path (default stdout)")
	cmd.MarkFlagRequired("in")
	return cmd
}

func layoutsCmd() *cobra.Command {
	var tplPath string
	cmd := &cobra.Command{
		Use:   "layouts",
		Short: "List the slide layouts in a template",
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg, err := opc.Open(tplPath)
			if err != nil {
				return err
			}
			for i := 0; i < pkg.LayoutCount(); i++ {
				cmd.Printf("%3d  %s\n", i, pkg.LayoutName(i))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&tplPath, "template", "t", "", "template pptx/potx (required)")
	cmd.MarkFlagRequired("template")
	return cmd
}
