package extract

import (
	"context"
	"fmt"
	"log/slog"

	pdf "github.com/ledongthuc/pdf"

	"regmap/internal/util"
)

// NativeExtractor reads page text in-process, without MuPDF. Its line
// breaking differs from mutool's, so results on real manuals are rougher.
type NativeExtractor struct {
	logger *slog.Logger
}

func NewNativeExtractor(logger *slog.Logger) *NativeExtractor {
	return &NativeExtractor{logger: logger.With("component", "native-pdf")}
}

func (n *NativeExtractor) Name() string {
	return "native"
}

func (n *NativeExtractor) Extract(ctx context.Context, pdfPath string, pages PageRange) ([]string, error) {
	f, r, err := pdf.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrNoText, pdfPath, err)
	}
	defer f.Close()

	last := pages.Last
	if total := r.NumPage(); last > total {
		last = total
	}
	if pages.First > last {
		return nil, fmt.Errorf("%w: document has %d pages, wanted %s", ErrNoText, r.NumPage(), pages)
	}

	out := []string{}
	for i := pages.First; i <= last; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			n.logger.Warn("page text failed", "page", i, "error", err)
			continue
		}
		out = append(out, util.SplitLines(text)...)
	}
	if !hasText(out) {
		return nil, fmt.Errorf("%w: pages %s", ErrNoText, pages)
	}
	return out, nil
}
