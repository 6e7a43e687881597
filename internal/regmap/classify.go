package regmap

import (
	"regexp"
	"strings"
)

// Category is the role a single trimmed line plays while a register name is
// being collected.
type Category int

const (
	PlainFragment Category = iota
	Blank
	DecimalIndex
	Boilerplate
	SettingOrAccess
	ThreeDigitNumeral
)

func (c Category) String() string {
	switch c {
	case Blank:
		return "blank"
	case DecimalIndex:
		return "decimal"
	case Boilerplate:
		return "boilerplate"
	case SettingOrAccess:
		return "setting"
	case ThreeDigitNumeral:
		return "three-digit"
	default:
		return "fragment"
	}
}

var (
	decimalPattern    = regexp.MustCompile(`^[0-9]{1,5}$`)
	hexPattern        = regexp.MustCompile(`(?i)^[0-9A-F]{4}h$`)
	threeDigitPattern = regexp.MustCompile(`^[0-9]{3}$`)
	wordToPattern     = regexp.MustCompile(`\bto\b`)
	digitPattern      = regexp.MustCompile(`[0-9]`)
	signedNumber      = regexp.MustCompile(`^[+\x{2212}\-]?[0-9]`)
)

// Table, column and chapter headers repeated on every page of the register
// address list.
var boilerplateLines = map[string]struct{}{
	"Register address list": {},
	"Register address":      {},
	"Name":                  {},
	"Description":           {},
	"READ/":                 {},
	"WRITE":                 {},
	"Setting range":         {},
	"Initial value":         {},
	"Update":                {},
	"Dec":                   {},
	"Hex":                   {},
	"6 Method of control via Modbus RTU (RS-485 communication)": {},
}

// Page footer ("8-12"), the glyph mutool renders for bullets, and the
// replacement character left by broken font encodings.
var boilerplatePrefixes = []string{"8-", "z ", "\ufffd"}

var accessTokens = map[string]struct{}{
	"R": {}, "W": {}, "R/W": {}, "A": {}, "B": {}, "C": {},
}

var settingPrefixes = []string{"Refer to", "\u201cSetting range", "* "}

// IsDecimalIndex reports whether the whole line is a 1-5 digit row index.
func IsDecimalIndex(line string) bool {
	return decimalPattern.MatchString(line)
}

// IsHexAddress reports whether the whole line is a register address such as
// 007Ch.
func IsHexAddress(line string) bool {
	return hexPattern.MatchString(line)
}

func IsBoilerplate(line string) bool {
	if _, ok := boilerplateLines[line]; ok {
		return true
	}
	return hasAnyPrefix(line, boilerplatePrefixes)
}

// IsSettingOrAccess reports lines from the access, setting range and initial
// value columns: access modes, ranges, signed numbers, key:value specs,
// cross references and footnotes.
func IsSettingOrAccess(line string) bool {
	if _, ok := accessTokens[line]; ok {
		return true
	}
	if hasAnyPrefix(line, settingPrefixes) {
		return true
	}
	hasDigit := digitPattern.MatchString(line)
	if hasDigit && wordToPattern.MatchString(line) {
		return true
	}
	if signedNumber.MatchString(line) {
		return true
	}
	return hasDigit && strings.Contains(line, ":")
}

// Classify assigns a trimmed line to the first matching category, in this
// order: blank, decimal index, boilerplate, setting/access (only when
// hasContent is set), three-digit numeral, plain fragment.
//
// Setting and access lines only count as such once a name has started. Before
// that they fall through to the later rules and usually become the first name
// fragment.
func Classify(line string, hasContent bool) Category {
	switch {
	case line == "":
		return Blank
	case IsDecimalIndex(line):
		return DecimalIndex
	case IsBoilerplate(line):
		return Boilerplate
	case hasContent && IsSettingOrAccess(line):
		return SettingOrAccess
	case threeDigitPattern.MatchString(line):
		return ThreeDigitNumeral
	default:
		return PlainFragment
	}
}

func hasAnyPrefix(line string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}
