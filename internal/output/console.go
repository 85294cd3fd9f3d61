package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ch8101040/tashmash/internal/domain"
)

// ConsoleFormatter renders the verdict and its audit trail as plain text.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

func (ConsoleFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf, "FAMILY SUPPORT BENEFIT ASSESSMENT")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintln(&buf)

	if result.Eligible {
		fmt.Fprintf(&buf, "Eligible: yes\n")
		fmt.Fprintf(&buf, "Monthly benefit: %s\n", FormatCurrency(result.Amount))
	} else {
		fmt.Fprintf(&buf, "Eligible: no\n")
	}
	if result.Method != "" {
		fmt.Fprintf(&buf, "Basis: %s\n", result.Method)
	}
	fmt.Fprintln(&buf)

	d := result.Details
	fmt.Fprintln(&buf, "CALCULATION DETAILS")
	fmt.Fprintln(&buf, strings.Repeat("-", 60))
	fmt.Fprintf(&buf, "Category:            %s\n", d.Category.Title())
	fmt.Fprintf(&buf, "Category ceiling:    %s\n", FormatCurrency(d.Ceiling))
	fmt.Fprintf(&buf, "Average gross:       %s\n", FormatCurrency(d.AverageGross))
	fmt.Fprintf(&buf, "Average net:         %s\n", FormatCurrency(d.AverageNet))
	if d.SavingsAddition.IsPositive() {
		fmt.Fprintf(&buf, "Declared savings:    %s\n", FormatCurrency(d.Savings))
		fmt.Fprintf(&buf, "Savings addition:    %s\n", FormatCurrency(d.SavingsAddition))
		fmt.Fprintf(&buf, "Adjusted gross:      %s\n", FormatCurrency(d.AdjustedGross))
		fmt.Fprintf(&buf, "Adjusted net:        %s\n", FormatCurrency(d.AdjustedNet))
	}
	if d.Deduction.IsPositive() {
		fmt.Fprintf(&buf, "Income deduction:    %s\n", FormatCurrency(d.Deduction))
	}

	if len(result.Reasons) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "APPLIED RULES")
		fmt.Fprintln(&buf, strings.Repeat("-", 60))
		for _, reason := range result.Reasons {
			fmt.Fprintf(&buf, "• %s\n", reason)
		}
	}

	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "This is an estimate only; the determining decision rests with")
	fmt.Fprintln(&buf, "the administering authority.")

	return buf.Bytes(), nil
}
