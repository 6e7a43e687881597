// Package export writes the canonical register table to its interchange and
// code-generation artifacts, and reads the tabular ones back.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"regmap/internal"
)

var tableHeader = []string{"dec", "hex", "name"}

func rowFields(e internal.RegisterEntry) []string {
	return []string{strconv.Itoa(e.Decimal), e.HexAddress(), e.Name}
}

// parseRow reads one dec,hex,name row. line is 1-based and only used in
// error messages.
func parseRow(line int, fields []string) (internal.RegisterEntry, error) {
	if len(fields) < 3 {
		return internal.RegisterEntry{}, fmt.Errorf("row %d: want 3 fields, got %d", line, len(fields))
	}
	dec, err := strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil || dec < 0 {
		return internal.RegisterEntry{}, fmt.Errorf("row %d: bad decimal %q", line, fields[0])
	}
	hex := strings.TrimSpace(fields[1])
	hex = strings.TrimSuffix(strings.TrimSuffix(hex, "H"), "h")
	addr, err := strconv.ParseUint(hex, 16, 16)
	if err != nil {
		return internal.RegisterEntry{}, fmt.Errorf("row %d: bad address %q", line, fields[1])
	}
	return internal.RegisterEntry{Decimal: dec, Address: uint16(addr), Name: fields[2]}, nil
}

func checkHeader(fields []string) error {
	if len(fields) < len(tableHeader) {
		return fmt.Errorf("unexpected header %q", fields)
	}
	for i, h := range tableHeader {
		if strings.TrimSpace(strings.ToLower(fields[i])) != h {
			return fmt.Errorf("unexpected header %q", fields)
		}
	}
	return nil
}

func ensureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
