package internal

import "fmt"

// PlaceholderPrefix starts the synthesized name of a register whose name text
// could not be assembled.
const PlaceholderPrefix = "UNKNOWN_"

type RegisterEntry struct {
	Decimal int
	Address uint16
	Name    string
}

// HexAddress renders the address the way the manual prints it, e.g. 007CH.
func (e RegisterEntry) HexAddress() string {
	return FormatHexAddress(e.Address)
}

func FormatHexAddress(addr uint16) string {
	return fmt.Sprintf("%04XH", addr)
}

type RunSummary struct {
	TraceID      string
	Source       string
	Pages        string
	Extractor    string
	Lines        int
	RawEntries   int
	Entries      int
	Placeholders int
	Outputs      map[string]string
	DurationMs   int64
}

type RegisterMapRow struct {
	Source     string
	Pages      string
	Extractor  string
	EntryCount int
	UpdatedAt  string
}
