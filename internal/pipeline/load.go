package pipeline

import (
	"fmt"
	"io"
	"os"

	"regmap/internal"
	"regmap/internal/export"
	"regmap/internal/extract"
	"regmap/internal/regmap"
)

const (
	InputText = "text"
	InputCSV  = "csv"
	InputXLSX = "xlsx"
)

// LoadEntries reads a canonical register table from a file: a pre-extracted
// text dump (parsed here), or a CSV/xlsx table written earlier. A path of "-"
// reads from stdin.
func LoadEntries(inputType, path string) ([]internal.RegisterEntry, error) {
	switch inputType {
	case InputText:
		lines, err := readLines(path)
		if err != nil {
			return nil, err
		}
		entries, _ := regmap.Parse(lines)
		return entries, nil
	case InputCSV:
		if path == "-" {
			return export.ReadCSV(os.Stdin)
		}
		return export.ReadCSVFile(path)
	case InputXLSX:
		return export.ReadXLSXFile(path)
	default:
		return nil, fmt.Errorf("unsupported input type: %s", inputType)
	}
}

func readLines(path string) ([]string, error) {
	if path == "-" {
		return extract.ReadLines(os.Stdin)
	}
	return extract.ReadLinesFile(path)
}

// ParseText parses a text dump and writes the dec,hex,name table to w.
func ParseText(r io.Reader, w io.Writer) (regmap.ParseStats, error) {
	lines, err := extract.ReadLines(r)
	if err != nil {
		return regmap.ParseStats{}, err
	}
	entries, stats := regmap.Parse(lines)
	return stats, export.WriteCSV(w, entries)
}
