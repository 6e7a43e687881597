package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"regmap/internal"
)

// CPPOptions names the generated C++ symbols and documents where the table
// came from.
type CPPOptions struct {
	// Prefix of the generated type, e.g. ArKd2 -> ArKd2RegisterEntry,
	// arKd2FullRegisterMap(), arKd2RegisterName().
	Prefix string
	Device string
	Manual string
	Pages  string
	// Include path of the header as written in the source file.
	HeaderInclude string
}

func DefaultCPPOptions() CPPOptions {
	return CPPOptions{
		Prefix:        "ArKd2",
		Device:        "AR-KD2",
		Manual:        "HM-60506E manual chapter 8",
		Pages:         "227-242",
		HeaderInclude: "ArKd2FullRegisterMap.hpp",
	}
}

type cppEntry struct {
	Address string
	Name    string
	Decimal int
}

type cppView struct {
	CPPOptions
	EntryType string
	MapFunc   string
	NameFunc  string
	Count     int
	Entries   []cppEntry
}

var cppHeaderTmpl = template.Must(template.New("hpp").Delims("[[", "]]").Parse(`#pragma once

#include <cstdint>
#include <optional>
#include <span>
#include <string_view>

struct [[.EntryType]] {
  std::uint16_t address;
  std::string_view name;
};

// Full [[.Device]] register-address list parsed from [[.Manual]]
// (pages [[.Pages]], "Register address list").
std::span<const [[.EntryType]]> [[.MapFunc]]();

std::optional<std::string_view> [[.NameFunc]](std::uint16_t address);
`))

var cppSourceTmpl = template.Must(template.New("cpp").Delims("[[", "]]").Parse(`#include <[[.HeaderInclude]]>
#include <array>

namespace {
constexpr std::array<[[.EntryType]], [[.Count]]> kRegisters{{
[[range .Entries]]    [[$.EntryType]]{[[.Address]], "[[.Name]]"}, // [[.Decimal]]
[[end]]}};
}  // namespace

std::span<const [[.EntryType]]> [[.MapFunc]]() {
  return kRegisters;
}

std::optional<std::string_view> [[.NameFunc]](std::uint16_t address) {
  for (const auto& entry : kRegisters) {
    if (entry.address == address) {
      return entry.name;
    }
  }
  return std::nullopt;
}
`))

var cppEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func newCPPView(opts CPPOptions, entries []internal.RegisterEntry) cppView {
	fn := lowerFirst(opts.Prefix)
	v := cppView{
		CPPOptions: opts,
		EntryType:  opts.Prefix + "RegisterEntry",
		MapFunc:    fn + "FullRegisterMap",
		NameFunc:   fn + "RegisterName",
		Count:      len(entries),
		Entries:    make([]cppEntry, 0, len(entries)),
	}
	for _, e := range entries {
		v.Entries = append(v.Entries, cppEntry{
			Address: fmt.Sprintf("0x%04X", e.Address),
			Name:    cppEscaper.Replace(e.Name),
			Decimal: e.Decimal,
		})
	}
	return v
}

// WriteCPPHeader writes the declarations: entry struct, table accessor and
// address lookup.
func WriteCPPHeader(w io.Writer, opts CPPOptions) error {
	return cppHeaderTmpl.Execute(w, newCPPView(opts, nil))
}

// WriteCPPSource writes the table definition, one entry per register in the
// given order, and the linear-search lookup.
func WriteCPPSource(w io.Writer, opts CPPOptions, entries []internal.RegisterEntry) error {
	return cppSourceTmpl.Execute(w, newCPPView(opts, entries))
}

func WriteCPPFiles(hppPath, cppPath string, opts CPPOptions, entries []internal.RegisterEntry) error {
	if opts.HeaderInclude == "" {
		opts.HeaderInclude = filepath.Base(hppPath)
	}
	if err := writeFile(hppPath, func(w io.Writer) error { return WriteCPPHeader(w, opts) }); err != nil {
		return err
	}
	return writeFile(cppPath, func(w io.Writer) error { return WriteCPPSource(w, opts, entries) })
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
