package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"

	"regmap/internal"
)

const xlsxSheet = "Registers"

func WriteXLSX(entries []internal.RegisterEntry, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), xlsxSheet); err != nil {
		return err
	}

	for i, h := range tableHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(xlsxSheet, cell, h)
	}

	for i, e := range entries {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(xlsxSheet, cell, value)
		}
		set(1, e.Decimal)
		set(2, e.HexAddress())
		set(3, e.Name)
	}
	_ = f.SetColWidth(xlsxSheet, "C", "C", 48)

	if err := ensureDir(outputPath); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// ReadXLSX reads the Registers sheet of a workbook written by WriteXLSX.
func ReadXLSX(content []byte) ([]internal.RegisterEntry, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", xlsxSheet)
	}
	if err := checkHeader(rows[0]); err != nil {
		return nil, err
	}

	out := []internal.RegisterEntry{}
	for i, row := range rows[1:] {
		if len(row) == 0 {
			continue
		}
		e, err := parseRow(i+2, row)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func ReadXLSXFile(path string) ([]internal.RegisterEntry, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadXLSX(blob)
}
