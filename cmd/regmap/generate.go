package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"regmap/internal/config"
	"regmap/internal/export"
	"regmap/internal/extract"
	"regmap/internal/pipeline"
	"regmap/internal/storage"
)

func generateCmd(cfg *config.Config) *cobra.Command {
	var (
		pdfPath string
		noDB    bool
		cpp     = export.DefaultCPPOptions()
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Extract the register list from a manual and write all artifacts",
		Long: `Extract the register address list pages of a manual, parse them and write
the CSV table plus the C++ header and source.

Example:
  regmap generate --pdf HM-60506E.pdf
  regmap generate --pdf HM-60506E.pdf --pages 227-242 --xlsx-out out/map.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noDB {
				cfg.Persist = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			pages, err := extract.ParsePageRange(cfg.Pages)
			if err != nil {
				return err
			}
			if _, err := os.Stat(pdfPath); err != nil {
				return fmt.Errorf("manual not readable: %w", err)
			}

			logger := newLogger(cfg)
			extractor, err := extract.New(*cfg, logger)
			if err != nil {
				return err
			}

			var db *storage.DB
			if cfg.Persist {
				db, err = openDB(cfg)
				if err != nil {
					return err
				}
				defer db.Close()
			}

			cpp.Prefix = cfg.CPPPrefix
			cpp.HeaderInclude = filepath.Base(cfg.HPPOut)
			svc := pipeline.NewService(db, extractor, logger)
			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			summary, err := svc.Generate(ctx, pipeline.GenerateOptions{
				PDFPath: pdfPath,
				Pages:   pages,
				CSVOut:  cfg.CSVOut,
				HPPOut:  cfg.HPPOut,
				CPPOut:  cfg.CPPOut,
				XLSXOut: cfg.XLSXOut,
				CPP:     cpp,
			})
			if err != nil {
				return err
			}

			fmt.Printf("Parsed %d register rows from pages %s.\n", summary.Entries, summary.Pages)
			fmt.Printf("CSV: %s\n", cfg.CSVOut)
			fmt.Printf("HPP: %s\n", cfg.HPPOut)
			fmt.Printf("CPP: %s\n", cfg.CPPOut)
			if cfg.XLSXOut != "" {
				fmt.Printf("XLSX: %s\n", cfg.XLSXOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&pdfPath, "pdf", "", "path to the manual PDF (required)")
	cmd.Flags().StringVar(&cfg.Pages, "pages", cfg.Pages, "page range of the register address list")
	cmd.Flags().StringVar(&cfg.CSVOut, "csv-out", cfg.CSVOut, "CSV table output path")
	cmd.Flags().StringVar(&cfg.HPPOut, "hpp-out", cfg.HPPOut, "C++ header output path")
	cmd.Flags().StringVar(&cfg.CPPOut, "cpp-out", cfg.CPPOut, "C++ source output path")
	cmd.Flags().StringVar(&cfg.XLSXOut, "xlsx-out", cfg.XLSXOut, "optional xlsx output path")
	cmd.Flags().StringVar(&cfg.Extractor, "extractor", cfg.Extractor, "mutool|native")
	cmd.Flags().StringVar(&cfg.ExtractFormat, "format", cfg.ExtractFormat, "mutool output format: txt|html")
	cmd.Flags().StringVar(&cfg.CPPPrefix, "prefix", cfg.CPPPrefix, "C++ symbol prefix")
	cmd.Flags().StringVar(&cpp.Device, "device", cpp.Device, "device name used in the header comment")
	cmd.Flags().StringVar(&cpp.Manual, "manual", cpp.Manual, "manual reference used in the header comment")
	cmd.Flags().BoolVar(&noDB, "no-db", false, "do not store the parsed table in the database")
	_ = cmd.MarkFlagRequired("pdf")

	return cmd
}
