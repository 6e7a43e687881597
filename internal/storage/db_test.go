package storage

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"regmap/internal"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "regmap.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestReplaceAndListRegisters(t *testing.T) {
	db := openTestDB(t)

	first := []internal.RegisterEntry{
		{Decimal: 49, Address: 0x0031, Name: "Group (lower)"},
		{Decimal: 48, Address: 0x0030, Name: "Group (upper)"},
	}
	if err := db.ReplaceRegisterMap("manual.pdf", "227-242", "mutool/txt", first); err != nil {
		t.Fatal(err)
	}
	second := []internal.RegisterEntry{
		{Decimal: 48, Address: 0x0030, Name: "Group (upper)"},
		{Decimal: 4611, Address: 0x1203, Name: "Communication error alarm (lower)"},
	}
	if err := db.ReplaceRegisterMap("manual.pdf", "227-242", "native", second); err != nil {
		t.Fatal(err)
	}

	got, err := db.ListRegisters("manual.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Fatalf("got %+v", got)
	}

	row, err := db.MustRegisterMap("manual.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if row.EntryCount != 2 || row.Extractor != "native" {
		t.Fatalf("row=%+v", row)
	}

	sources, err := db.ListSources()
	if err != nil {
		t.Fatal(err)
	}
	if len(sources) != 1 {
		t.Fatalf("len=%d", len(sources))
	}
}

func TestLookupAddress(t *testing.T) {
	db := openTestDB(t)
	entries := []internal.RegisterEntry{
		{Decimal: 128, Address: 0x0080, Name: "Present alarm (upper)"},
		{Decimal: 900, Address: 0x0080, Name: "Later duplicate"},
	}
	if err := db.ReplaceRegisterMap("m.pdf", "1-2", "mutool/txt", entries); err != nil {
		t.Fatal(err)
	}

	e, err := db.LookupAddress("m.pdf", 0x0080)
	if err != nil {
		t.Fatal(err)
	}
	if e == nil || e.Name != "Present alarm (upper)" {
		t.Fatalf("e=%+v", e)
	}
	e, err = db.LookupAddress("m.pdf", 0x0001)
	if err != nil || e != nil {
		t.Fatalf("e=%+v err=%v", e, err)
	}
}

func TestMustRegisterMapMissing(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.MustRegisterMap("nope.pdf"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v", err)
	}
}

func TestRunsAndMetadata(t *testing.T) {
	db := openTestDB(t)
	if err := db.InsertRun(internal.RunSummary{TraceID: "abc", Source: "m.pdf", Entries: 3}); err != nil {
		t.Fatal(err)
	}
	n, err := db.CountRuns("m.pdf")
	if err != nil || n != 1 {
		t.Fatalf("n=%d err=%v", n, err)
	}

	if v, err := db.GetMetadata("regmap.last_generate"); err != nil || v != nil {
		t.Fatalf("v=%v err=%v", v, err)
	}
	if err := db.SetMetadata("regmap.last_generate", "2026-01-01T00:00:00Z"); err != nil {
		t.Fatal(err)
	}
	v, err := db.GetMetadata("regmap.last_generate")
	if err != nil || v == nil || *v != "2026-01-01T00:00:00Z" {
		t.Fatalf("v=%v err=%v", v, err)
	}
}
