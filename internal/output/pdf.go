package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/ch8101040/tashmash/internal/domain"
)

// PDFFormatter renders a one-page printable summary of the assessment.
type PDFFormatter struct{}

func (PDFFormatter) Name() string { return "pdf" }

func (PDFFormatter) Format(result *domain.CalculationResult) ([]byte, error) {
	const (
		marginL  = 18.0
		marginR  = 18.0
		pageW    = 210.0
		contentW = pageW - marginL - marginR
		lineH    = 7.0
	)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginL, 15, marginR)
	pdf.SetAutoPageBreak(true, 20)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Helvetica", "", 7)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(contentW, 6,
			"Estimate only; the determining decision rests with the administering authority.",
			"", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(20, 40, 90)
	pdf.CellFormat(contentW, 10, "Family Support Benefit Assessment", "", 1, "L", false, 0, "")
	pdf.SetDrawColor(20, 40, 90)
	pdf.SetLineWidth(0.6)
	pdf.Line(marginL, pdf.GetY()+1, pageW-marginR, pdf.GetY()+1)
	pdf.Ln(6)

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 13)
	if result.Eligible {
		pdf.CellFormat(contentW, lineH,
			fmt.Sprintf("Eligible: yes. Monthly benefit: ILS %s", pdfAmount(result)), "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(contentW, lineH, "Eligible: no", "", 1, "L", false, 0, "")
	}
	if result.Method != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(contentW, lineH, "Basis: "+result.Method, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	d := result.Details
	rows := [][2]string{
		{"Category", d.Category.Title()},
		{"Category ceiling", "ILS " + d.Ceiling.Round(0).String()},
		{"Average gross income", "ILS " + d.AverageGross.Round(0).String()},
		{"Average net income", "ILS " + d.AverageNet.Round(0).String()},
	}
	if d.SavingsAddition.IsPositive() {
		rows = append(rows,
			[2]string{"Declared savings", "ILS " + d.Savings.Round(0).String()},
			[2]string{"Savings income addition", "ILS " + d.SavingsAddition.Round(0).String()},
			[2]string{"Adjusted net income", "ILS " + d.AdjustedNet.Round(0).String()},
		)
	}
	if d.Deduction.IsPositive() {
		rows = append(rows, [2]string{"Income deduction", "ILS " + d.Deduction.Round(0).String()})
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(contentW, lineH, "Calculation details", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for i, row := range rows {
		fill := i%2 == 0
		pdf.SetFillColor(244, 246, 250)
		pdf.CellFormat(contentW*0.55, lineH, row[0], "", 0, "L", fill, 0, "")
		pdf.CellFormat(contentW*0.45, lineH, row[1], "", 1, "R", fill, 0, "")
	}

	if len(result.Reasons) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, lineH, "Applied rules", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		for _, reason := range result.Reasons {
			// The built-in fonts cover cp1252 only; swap the shekel sign out.
			reason = strings.ReplaceAll(reason, "₪", "ILS ")
			pdf.MultiCell(contentW, 6, "- "+reason, "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// pdfAmount renders the benefit amount without the shekel sign, which the
// built-in PDF fonts cannot encode.
func pdfAmount(result *domain.CalculationResult) string {
	return result.Amount.Round(0).String()
}
