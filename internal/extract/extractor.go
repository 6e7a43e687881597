// Package extract turns a page range of a PDF manual into text lines for the
// register parser.
package extract

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"regmap/internal/config"
	"regmap/internal/util"
)

// ErrNoText is returned when extraction produced no usable text. Callers must
// treat it as fatal.
var ErrNoText = errors.New("no text extracted")

type Extractor interface {
	Name() string
	Extract(ctx context.Context, pdfPath string, pages PageRange) ([]string, error)
}

func New(cfg config.Config, logger *slog.Logger) (Extractor, error) {
	switch cfg.Extractor {
	case config.ExtractorMutool:
		return NewMutoolExtractor(cfg, logger), nil
	case config.ExtractorNative:
		return NewNativeExtractor(logger), nil
	default:
		return nil, fmt.Errorf("unsupported extractor: %s", cfg.Extractor)
	}
}

// ReadLines splits an already extracted text dump into trimmed lines.
func ReadLines(r io.Reader) ([]string, error) {
	blob, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return util.SplitLines(string(blob)), nil
}

func ReadLinesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLines(f)
}

func hasText(lines []string) bool {
	for _, l := range lines {
		if l != "" {
			return true
		}
	}
	return false
}

func timeoutContext(ctx context.Context, sec int) (context.Context, context.CancelFunc) {
	if sec <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, time.Duration(sec)*time.Second)
}
