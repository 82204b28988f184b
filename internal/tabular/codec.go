// Package tabular writes the extracted tables as CSV files and reads them
// back. Every table has a fixed header; optional values are empty cells,
// booleans are 0/1 and lists are joined with a configurable delimiter.
package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/heartmarshall/abaevdict/internal/domain"
)

// DefaultListDelimiter joins list-valued cells.
const DefaultListDelimiter = "|"

// Options configures cell encoding.
type Options struct {
	ListDelimiter string
}

func (o Options) delim() string {
	if o.ListDelimiter == "" {
		return DefaultListDelimiter
	}
	return o.ListDelimiter
}

type codec struct {
	delim string
}

func (c codec) list(items []string) string {
	return strings.Join(items, c.delim)
}

// checkList rejects items that would split into several on read.
func (c codec) checkList(field string, items []string) error {
	for _, it := range items {
		if strings.Contains(it, c.delim) {
			return domain.NewValidationError(field, fmt.Sprintf("item %q contains list delimiter %q", it, c.delim))
		}
	}
	return nil
}

func (c codec) parseList(cell string) []string {
	if cell == "" {
		return nil
	}
	return strings.Split(cell, c.delim)
}

func opt(s *string) string { return domain.Deref(s) }

func optInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func optFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

func boolCell(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseOptInt(col, cell string) (*int, error) {
	if cell == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(cell)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", col, err)
	}
	return &n, nil
}

func parseOptFloat(col, cell string) (*float64, error) {
	if cell == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", col, err)
	}
	return &f, nil
}

func parseBool(col, cell string) (bool, error) {
	switch cell {
	case "1":
		return true, nil
	case "0", "":
		return false, nil
	}
	return false, fmt.Errorf("column %s: invalid boolean %q", col, cell)
}

func parseRelType(cell string) (*domain.FormRelType, error) {
	if cell == "" {
		return nil, nil
	}
	t, ok := domain.ParseFormRelType(cell)
	if !ok {
		return nil, fmt.Errorf("column rel_type: unknown relation %q", cell)
	}
	return &t, nil
}
