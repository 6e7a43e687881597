package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"regmap/internal/export"
	"regmap/internal/extract"
	"regmap/internal/storage"
)

type fakeExtractor struct {
	lines []string
	err   error
}

func (f fakeExtractor) Name() string { return "fake" }

func (f fakeExtractor) Extract(_ context.Context, _ string, _ extract.PageRange) ([]string, error) {
	return f.lines, f.err
}

var manualLines = []string{
	"Register address list",
	"Dec", "Hex", "Name",
	"48", "0030h", "Group (upper)",
	"49", "0031h", "Group (lower)",
	"8-27",
	"124", "007Ch", "Driver input", "command (upper)", "R/W",
	"124", "007Ch", "Driver", "0 to 1",
	"125", "007Dh", "Driver input", "command (lower)",
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testOptions(dir string) GenerateOptions {
	return GenerateOptions{
		PDFPath: filepath.Join(dir, "HM-60506E.pdf"),
		Pages:   extract.PageRange{First: 227, Last: 242},
		CSVOut:  filepath.Join(dir, "resources", "map.csv"),
		HPPOut:  filepath.Join(dir, "include", "ArKd2FullRegisterMap.hpp"),
		CPPOut:  filepath.Join(dir, "src", "ArKd2FullRegisterMap.cpp"),
		XLSXOut: filepath.Join(dir, "out", "map.xlsx"),
		CPP:     export.DefaultCPPOptions(),
	}
}

func TestSmokeGenerate(t *testing.T) {
	tmp := t.TempDir()
	db, err := storage.Open(filepath.Join(tmp, "regmap.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	svc := NewService(db, fakeExtractor{lines: manualLines}, discardLogger())
	opts := testOptions(tmp)
	summary, err := svc.Generate(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Entries != 4 || summary.RawEntries != 5 {
		t.Fatalf("summary=%+v", summary)
	}
	if len(summary.Outputs) != 4 {
		t.Fatalf("outputs=%v", summary.Outputs)
	}

	entries, err := export.ReadCSVFile(opts.CSVOut)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 4 || entries[2].Name != "Driver input command (upper)" {
		t.Fatalf("entries=%+v", entries)
	}

	src, err := os.ReadFile(opts.CPPOut)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(src), `ArKd2RegisterEntry{0x007D, "Driver input command (lower)"}, // 125`) {
		t.Fatalf("cpp source:\n%s", src)
	}

	stored, err := db.ListRegisters("HM-60506E.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 4 {
		t.Fatalf("stored=%d", len(stored))
	}
	if n, _ := db.CountRuns("HM-60506E.pdf"); n != 1 {
		t.Fatalf("runs=%d", n)
	}
}

func TestGenerateExtractionFailureWritesNothing(t *testing.T) {
	tmp := t.TempDir()
	svc := NewService(nil, fakeExtractor{err: fmt.Errorf("%w: exit status 1", extract.ErrNoText)}, discardLogger())
	opts := testOptions(tmp)

	_, err := svc.Generate(context.Background(), opts)
	if !errors.Is(err, extract.ErrNoText) {
		t.Fatalf("err=%v", err)
	}
	for _, p := range []string{opts.CSVOut, opts.HPPOut, opts.CPPOut, opts.XLSXOut} {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Fatalf("%s should not exist", p)
		}
	}
}

func TestParseText(t *testing.T) {
	var out bytes.Buffer
	stats, err := ParseText(strings.NewReader(strings.Join(manualLines, "\n")), &out)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Entries != 4 {
		t.Fatalf("stats=%+v", stats)
	}
	if !strings.HasPrefix(out.String(), "dec,hex,name\r\n48,0030H,Group (upper)\r\n") {
		t.Fatalf("out=%q", out.String())
	}
}

func TestLoadEntries(t *testing.T) {
	tmp := t.TempDir()
	textPath := filepath.Join(tmp, "pages.txt")
	if err := os.WriteFile(textPath, []byte(strings.Join(manualLines, "\n")), 0o644); err != nil {
		t.Fatal(err)
	}
	fromText, err := LoadEntries(InputText, textPath)
	if err != nil {
		t.Fatal(err)
	}

	csvPath := filepath.Join(tmp, "map.csv")
	if err := export.WriteCSVFile(csvPath, fromText); err != nil {
		t.Fatal(err)
	}
	fromCSV, err := LoadEntries(InputCSV, csvPath)
	if err != nil {
		t.Fatal(err)
	}
	if len(fromCSV) != len(fromText) || fromCSV[3] != fromText[3] {
		t.Fatalf("csv=%+v text=%+v", fromCSV, fromText)
	}

	if _, err := LoadEntries("pdf", textPath); err == nil {
		t.Fatal("expected error")
	}
}
