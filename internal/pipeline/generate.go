package pipeline

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"regmap/internal"
	"regmap/internal/export"
	"regmap/internal/extract"
	"regmap/internal/regmap"
	"regmap/internal/storage"
)

type Service struct {
	db        *storage.DB
	extractor extract.Extractor
	logger    *slog.Logger
}

// NewService wires the generate pipeline. db may be nil to skip persistence.
func NewService(db *storage.DB, extractor extract.Extractor, logger *slog.Logger) *Service {
	return &Service{db: db, extractor: extractor, logger: logger.With("component", "pipeline")}
}

type GenerateOptions struct {
	PDFPath string
	Pages   extract.PageRange
	CSVOut  string
	HPPOut  string
	CPPOut  string
	// XLSXOut is optional.
	XLSXOut string
	CPP     export.CPPOptions
}

// Generate extracts the register list from the manual, parses it and writes
// every artifact. Nothing is written when extraction fails.
func (s *Service) Generate(ctx context.Context, opts GenerateOptions) (internal.RunSummary, error) {
	start := time.Now()
	summary := internal.RunSummary{
		TraceID:   traceID(),
		Source:    filepath.Base(opts.PDFPath),
		Pages:     opts.Pages.String(),
		Extractor: s.extractor.Name(),
		Outputs:   map[string]string{},
	}
	log := s.logger.With("trace", summary.TraceID, "source", summary.Source)

	lines, err := s.extractor.Extract(ctx, opts.PDFPath, opts.Pages)
	if err != nil {
		return summary, fmt.Errorf("extract %s pages %s: %w", opts.PDFPath, opts.Pages, err)
	}

	entries, stats := regmap.Parse(lines)
	summary.Lines = stats.Lines
	summary.RawEntries = stats.RawEntries
	summary.Entries = stats.Entries
	summary.Placeholders = stats.Placeholders
	log.Info("parsed register list",
		"lines", stats.Lines, "raw", stats.RawEntries, "entries", stats.Entries,
		"collapsed", stats.Collapsed, "placeholders", stats.Placeholders)
	if len(entries) == 0 {
		log.Warn("no register rows found; check the page range")
	}

	if err := writeArtifacts(opts, entries, summary.Outputs); err != nil {
		return summary, err
	}

	summary.DurationMs = time.Since(start).Milliseconds()
	if s.db != nil {
		if err := s.persist(summary, entries); err != nil {
			return summary, fmt.Errorf("persist register map: %w", err)
		}
	}
	return summary, nil
}

func writeArtifacts(opts GenerateOptions, entries []internal.RegisterEntry, outputs map[string]string) error {
	if opts.CSVOut != "" {
		if err := export.WriteCSVFile(opts.CSVOut, entries); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		outputs["csv"] = opts.CSVOut
	}
	if opts.HPPOut != "" && opts.CPPOut != "" {
		cpp := opts.CPP
		cpp.Pages = opts.Pages.String()
		if err := export.WriteCPPFiles(opts.HPPOut, opts.CPPOut, cpp, entries); err != nil {
			return fmt.Errorf("write c++ table: %w", err)
		}
		outputs["hpp"] = opts.HPPOut
		outputs["cpp"] = opts.CPPOut
	}
	if opts.XLSXOut != "" {
		if err := export.WriteXLSX(entries, opts.XLSXOut); err != nil {
			return fmt.Errorf("write xlsx: %w", err)
		}
		outputs["xlsx"] = opts.XLSXOut
	}
	return nil
}

func (s *Service) persist(summary internal.RunSummary, entries []internal.RegisterEntry) error {
	if err := s.db.ReplaceRegisterMap(summary.Source, summary.Pages, summary.Extractor, entries); err != nil {
		return err
	}
	if err := s.db.InsertRun(summary); err != nil {
		s.logger.Warn("record run failed", "error", err)
	}
	_ = s.db.SetMetadata("regmap.last_generate", time.Now().UTC().Format(time.RFC3339))
	return nil
}

func traceID() string {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return fmt.Sprintf("run-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(b[:])
}
