package extract

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidPageRange = errors.New("invalid page range")

// PageRange is an inclusive, 1-based range of document pages.
type PageRange struct {
	First int
	Last  int
}

// ParsePageRange accepts "N" or "A-B" with 1 <= A <= B.
func ParsePageRange(s string) (PageRange, error) {
	s = strings.TrimSpace(s)
	firstRaw, lastRaw, isRange := strings.Cut(s, "-")
	if !isRange {
		lastRaw = firstRaw
	}
	first, err := strconv.Atoi(strings.TrimSpace(firstRaw))
	if err != nil {
		return PageRange{}, fmt.Errorf("%w: %q", ErrInvalidPageRange, s)
	}
	last, err := strconv.Atoi(strings.TrimSpace(lastRaw))
	if err != nil {
		return PageRange{}, fmt.Errorf("%w: %q", ErrInvalidPageRange, s)
	}
	if first < 1 || last < first {
		return PageRange{}, fmt.Errorf("%w: %q", ErrInvalidPageRange, s)
	}
	return PageRange{First: first, Last: last}, nil
}

// String renders the range in mutool's page-list syntax.
func (p PageRange) String() string {
	if p.First == p.Last {
		return strconv.Itoa(p.First)
	}
	return fmt.Sprintf("%d-%d", p.First, p.Last)
}

func (p PageRange) Len() int {
	return p.Last - p.First + 1
}
