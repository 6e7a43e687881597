package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"regmap/internal/export"
	"regmap/internal/pipeline"
)

func parseCmd() *cobra.Command {
	var (
		textPath string
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Parse an already extracted text dump into the CSV table",
		Long: `Parse the text of the register address list pages (for example the output
of "mutool draw -F txt") and print the dec,hex,name table.

Example:
  mutool draw -F txt -o pages.txt HM-60506E.pdf 227-242
  regmap parse --text pages.txt > map.csv
  cat pages.txt | regmap parse --text -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := io.Reader(os.Stdin)
			if textPath != "-" {
				f, err := os.Open(textPath)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}

			out := io.Writer(os.Stdout)
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				out = f
			}

			stats, err := pipeline.ParseText(in, out)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "parsed %d register rows (%d raw, %d placeholders)\n",
				stats.Entries, stats.RawEntries, stats.Placeholders)
			return nil
		},
	}

	cmd.Flags().StringVar(&textPath, "text", "-", "text dump path, - for stdin")
	cmd.Flags().StringVar(&outPath, "out", "", "write the CSV here instead of stdout")
	return cmd
}

func convertCmd() *cobra.Command {
	var (
		inPath  string
		inType  string
		csvOut  string
		xlsxOut string
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a register table between text, CSV and xlsx",
		Example: `  regmap convert --in map.csv --xlsx-out map.xlsx
  regmap convert --in map.xlsx --type xlsx --csv-out map.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPath == "" || (csvOut == "" && xlsxOut == "") {
				return fmt.Errorf("--in and one of --csv-out/--xlsx-out are required")
			}
			entries, err := pipeline.LoadEntries(inType, inPath)
			if err != nil {
				return err
			}
			if csvOut != "" {
				if err := export.WriteCSVFile(csvOut, entries); err != nil {
					return err
				}
				fmt.Printf("exported %d rows to %s\n", len(entries), csvOut)
			}
			if xlsxOut != "" {
				if err := export.WriteXLSX(entries, xlsxOut); err != nil {
					return err
				}
				fmt.Printf("exported %d rows to %s\n", len(entries), xlsxOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&inPath, "in", "", "input table")
	cmd.Flags().StringVar(&inType, "type", pipeline.InputCSV, "input type: text|csv|xlsx")
	cmd.Flags().StringVar(&csvOut, "csv-out", "", "CSV output path")
	cmd.Flags().StringVar(&xlsxOut, "xlsx-out", "", "xlsx output path")
	return cmd
}
