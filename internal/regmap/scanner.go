package regmap

import (
	"strconv"
	"strings"

	"regmap/internal"
	"regmap/internal/util"
)

// Halves of 32-bit registers are listed as two rows; these suffixes always
// close a name.
var halfSuffixes = []string{"(upper)", "(lower)"}

// Scan walks the extracted lines once and assembles a raw entry for every
// decimal index that is directly followed by a hex address. The same decimal
// may appear more than once in the result. Scan never fails: lines it cannot
// place are skipped.
func Scan(lines []string) []internal.RegisterEntry {
	entries := []internal.RegisterEntry{}
	n := len(lines)
	i := 0
	for i < n {
		line := strings.TrimSpace(lines[i])
		if !IsDecimalIndex(line) {
			i++
			continue
		}
		decimal, _ := strconv.Atoi(line)
		if i+1 >= n {
			break
		}
		hexLine := strings.TrimSpace(lines[i+1])
		if !IsHexAddress(hexLine) {
			// Stray number; retry from the very next line.
			i++
			continue
		}
		address, _ := strconv.ParseUint(hexLine[:4], 16, 16)

		var name []string
		i, name = collectName(lines, i+2)
		entries = append(entries, newEntry(decimal, uint16(address), name))
	}
	return entries
}

// collectName gathers name fragments starting at lines[i] and returns the
// index of the first line that was not consumed.
func collectName(lines []string, i int) (int, []string) {
	parts := []string{}
	for i < len(lines) {
		t := strings.TrimSpace(lines[i])
		switch Classify(t, len(parts) > 0) {
		case Blank:
			i++
			if len(parts) > 0 {
				return i, parts
			}
		case DecimalIndex, SettingOrAccess:
			return i, parts
		case Boilerplate, ThreeDigitNumeral:
			i++
		default:
			parts = append(parts, t)
			i++
			if hasAnySuffix(t, halfSuffixes) {
				return i, parts
			}
		}
	}
	return i, parts
}

func newEntry(decimal int, address uint16, parts []string) internal.RegisterEntry {
	name := util.NormalizeSpaces(strings.Join(parts, " "))
	if name == "" {
		name = PlaceholderName(address)
	}
	return internal.RegisterEntry{Decimal: decimal, Address: address, Name: name}
}

// PlaceholderName is the name given to a register whose row carried no name
// text, e.g. UNKNOWN_007CH.
func PlaceholderName(address uint16) string {
	return internal.PlaceholderPrefix + internal.FormatHexAddress(address)
}

// IsPlaceholder reports whether name was synthesized by PlaceholderName.
func IsPlaceholder(e internal.RegisterEntry) bool {
	return e.Name == PlaceholderName(e.Address)
}

func hasAnySuffix(line string, suffixes []string) bool {
	for _, s := range suffixes {
		if strings.HasSuffix(line, s) {
			return true
		}
	}
	return false
}
