package regmap

import "regmap/internal"

type ParseStats struct {
	Lines        int
	RawEntries   int
	Entries      int
	Collapsed    int
	Placeholders int
}

// Parse turns extracted register-list lines into the canonical table: one
// entry per decimal index, ascending.
func Parse(lines []string) ([]internal.RegisterEntry, ParseStats) {
	raw := Scan(lines)
	entries := Dedupe(raw)

	stats := ParseStats{
		Lines:      len(lines),
		RawEntries: len(raw),
		Entries:    len(entries),
		Collapsed:  len(raw) - len(entries),
	}
	for _, e := range entries {
		if IsPlaceholder(e) {
			stats.Placeholders++
		}
	}
	return entries, stats
}
