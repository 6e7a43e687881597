package extract

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"testing"

	"regmap/internal/config"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fakeMutool(t *testing.T, output string, runErr error, gotArgs *[]string) commandRunner {
	t.Helper()
	return func(_ context.Context, name string, args ...string) error {
		*gotArgs = append([]string{name}, args...)
		if runErr != nil {
			return runErr
		}
		return os.WriteFile(args[4], []byte(output), 0o644)
	}
}

func newTestMutool(format string, run commandRunner) *MutoolExtractor {
	m := NewMutoolExtractor(config.Config{MutoolPath: "mutool", ExtractFormat: format, ExtractTimeoutSec: 5}, testLogger())
	m.run = run
	return m
}

func TestMutoolExtractTXT(t *testing.T) {
	var args []string
	m := newTestMutool(config.FormatTXT, fakeMutool(t, "Register address list\n12\n0001h\nSpeed\n", nil, &args))

	lines, err := m.Extract(context.Background(), "manual.pdf", PageRange{First: 227, Last: 242})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Register address list", "12", "0001h", "Speed"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines=%q", lines)
	}
	if args[0] != "mutool" || args[1] != "draw" || args[3] != "txt" || args[6] != "manual.pdf" || args[7] != "227-242" {
		t.Fatalf("args=%q", args)
	}
	if _, err := os.Stat(args[5]); !os.IsNotExist(err) {
		t.Fatalf("temp file not removed: %v", err)
	}
}

func TestMutoolExtractHTML(t *testing.T) {
	var args []string
	html := `<html><body><div id="page0"><p><span>12</span></p><p><span>0001h</span></p></div>` +
		`<div id="page1"><p><span>Speed </span><span>Command</span></p></div></body></html>`
	m := newTestMutool(config.FormatHTML, fakeMutool(t, html, nil, &args))

	lines, err := m.Extract(context.Background(), "manual.pdf", PageRange{First: 1, Last: 2})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"12", "0001h", "", "Speed Command"}
	if !reflect.DeepEqual(lines, want) {
		t.Fatalf("lines=%q", lines)
	}
	if !strings.HasSuffix(args[5], ".html") {
		t.Fatalf("tmp=%s", args[5])
	}
}

func TestMutoolExtractFailures(t *testing.T) {
	var args []string
	cases := []struct {
		name string
		run  commandRunner
	}{
		{name: "exit status", run: fakeMutool(t, "", errors.New("exit status 1"), &args)},
		{name: "blank output", run: fakeMutool(t, "\n \n", nil, &args)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestMutool(config.FormatTXT, tc.run)
			_, err := m.Extract(context.Background(), "manual.pdf", PageRange{First: 1, Last: 1})
			if !errors.Is(err, ErrNoText) {
				t.Fatalf("err=%v", err)
			}
		})
	}
}

func TestNewExtractor(t *testing.T) {
	e, err := New(config.Config{Extractor: config.ExtractorNative}, testLogger())
	if err != nil || e.Name() != "native" {
		t.Fatalf("e=%v err=%v", e, err)
	}
	e, err = New(config.Config{Extractor: config.ExtractorMutool, ExtractFormat: config.FormatTXT}, testLogger())
	if err != nil || e.Name() != "mutool/txt" {
		t.Fatalf("e=%v err=%v", e, err)
	}
	if _, err := New(config.Config{Extractor: "ocr"}, testLogger()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNativeExtractMissingFile(t *testing.T) {
	n := NewNativeExtractor(testLogger())
	_, err := n.Extract(context.Background(), "does-not-exist.pdf", PageRange{First: 1, Last: 1})
	if !errors.Is(err, ErrNoText) {
		t.Fatalf("err=%v", err)
	}
}

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader("12\r\n0001h\r\n\r\nSpeed\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 4 || lines[2] != "" {
		t.Fatalf("lines=%q", lines)
	}
}
