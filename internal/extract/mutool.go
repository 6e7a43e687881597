package extract

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"regmap/internal/config"
	"regmap/internal/util"
)

// commandRunner runs an external program to completion.
type commandRunner func(ctx context.Context, name string, args ...string) error

// MutoolExtractor shells out to `mutool draw` from MuPDF.
type MutoolExtractor struct {
	path       string
	format     string
	timeoutSec int
	run        commandRunner
	logger     *slog.Logger
}

func NewMutoolExtractor(cfg config.Config, logger *slog.Logger) *MutoolExtractor {
	return &MutoolExtractor{
		path:       cfg.MutoolPath,
		format:     cfg.ExtractFormat,
		timeoutSec: cfg.ExtractTimeoutSec,
		run:        runCommand,
		logger:     logger.With("component", "mutool"),
	}
}

func (m *MutoolExtractor) Name() string {
	return "mutool/" + m.format
}

func (m *MutoolExtractor) Extract(ctx context.Context, pdfPath string, pages PageRange) ([]string, error) {
	tmp, err := os.CreateTemp("", "regmap-pages-*."+m.format)
	if err != nil {
		return nil, err
	}
	tmpPath := tmp.Name()
	_ = tmp.Close()
	defer os.Remove(tmpPath)

	ctx, cancel := timeoutContext(ctx, m.timeoutSec)
	defer cancel()

	args := []string{"draw", "-F", m.format, "-o", tmpPath, pdfPath, pages.String()}
	m.logger.Debug("running mutool", "args", strings.Join(args, " "))
	if err := m.run(ctx, m.path, args...); err != nil {
		return nil, fmt.Errorf("%w: mutool draw %s: %w", ErrNoText, pages, err)
	}

	blob, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoText, err)
	}

	var lines []string
	if m.format == config.FormatHTML {
		lines, err = LinesFromHTML(bytes.NewReader(blob))
		if err != nil {
			return nil, fmt.Errorf("decode mutool html: %w", err)
		}
	} else {
		lines = util.SplitLines(string(blob))
	}
	if !hasText(lines) {
		return nil, fmt.Errorf("%w: mutool produced no output for pages %s", ErrNoText, pages)
	}
	m.logger.Debug("extracted", "pages", pages.String(), "lines", len(lines))
	return lines, nil
}

func runCommand(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
