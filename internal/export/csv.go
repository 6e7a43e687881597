package export

import (
	"encoding/csv"
	"errors"
	"io"
	"os"

	"regmap/internal"
)

// WriteCSV writes the dec,hex,name table with CRLF row endings.
func WriteCSV(w io.Writer, entries []internal.RegisterEntry) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	if err := cw.Write(tableHeader); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write(rowFields(e)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteCSVFile(path string, entries []internal.RegisterEntry) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, entries); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// ReadCSV parses a table produced by WriteCSV.
func ReadCSV(r io.Reader) ([]internal.RegisterEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("empty register table")
	}
	if err != nil {
		return nil, err
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	out := []internal.RegisterEntry{}
	line := 1
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line++
		e, err := parseRow(line, fields)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func ReadCSVFile(path string) ([]internal.RegisterEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(f)
}
