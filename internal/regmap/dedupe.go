package regmap

import (
	"sort"
	"unicode/utf8"

	"regmap/internal"
)

// Dedupe keeps one entry per decimal index: the first entry whose name is
// strictly longer than every earlier candidate for that index. The result is
// sorted by decimal index.
func Dedupe(entries []internal.RegisterEntry) []internal.RegisterEntry {
	byDecimal := map[int]internal.RegisterEntry{}
	for _, e := range entries {
		prev, ok := byDecimal[e.Decimal]
		if !ok || nameLen(e.Name) > nameLen(prev.Name) {
			byDecimal[e.Decimal] = e
		}
	}

	out := make([]internal.RegisterEntry, 0, len(byDecimal))
	for _, e := range byDecimal {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Decimal < out[j].Decimal })
	return out
}

func nameLen(name string) int {
	return utf8.RuneCountInString(name)
}
