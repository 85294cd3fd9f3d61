// Package output renders calculation results as console text, JSON, or PDF.
package output

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ch8101040/tashmash/internal/domain"
)

// Formatter renders one calculation result into a byte stream.
type Formatter interface {
	Name() string
	Format(result *domain.CalculationResult) ([]byte, error)
}

// NewFormatter maps a format name to its formatter.
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "console", "text", "":
		return ConsoleFormatter{}, nil
	case "json":
		return JSONFormatter{}, nil
	case "pdf":
		return PDFFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// FormatCurrency renders a whole-shekel amount with thousands separators.
func FormatCurrency(d decimal.Decimal) string {
	s := d.Round(0).String()
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	out := "₪" + b.String()
	if neg {
		out = "-" + out
	}
	return out
}
