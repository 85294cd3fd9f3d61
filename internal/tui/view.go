package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ch8101040/tashmash/internal/domain"
	"github.com/ch8101040/tashmash/internal/output"
)

var stepNames = []string{"Category", "Income", "Savings & assets", "Results"}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Family Support Benefit Calculator"))
	b.WriteString("\n")
	b.WriteString(m.renderStepBar())
	b.WriteString("\n\n")

	var content string
	switch m.machine.Step() {
	case domain.StepCategory:
		content = m.renderCategoryStep()
	case domain.StepIncome:
		content = m.renderFieldStep("How is the household income entered?")
	case domain.StepExtras:
		content = m.renderFieldStep("Savings, vehicle, and other details")
	case domain.StepResults:
		content = m.renderResults()
	}

	main := panelStyle.Render(content)
	if interim := m.renderInterim(); interim != "" && m.machine.Step() != domain.StepResults {
		main = lipgloss.JoinHorizontal(lipgloss.Top, main, "  ", interim)
	}
	b.WriteString(main)

	if errs := m.machine.State().Errors; !errs.Empty() {
		b.WriteString("\n")
		for _, key := range errs.Fields() {
			b.WriteString(errorStyle.Render("✗ " + errs[key].Message))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderStepBar() string {
	parts := make([]string, len(stepNames))
	for i, name := range stepNames {
		label := fmt.Sprintf("%d. %s", i+1, name)
		if i+1 == m.machine.Step() {
			parts[i] = stepBarActiveStyle.Render(label)
		} else {
			parts[i] = stepBarStyle.Render(label)
		}
	}
	return strings.Join(parts, stepBarStyle.Render("  ›  "))
}

func (m Model) renderCategoryStep() string {
	var b strings.Builder
	b.WriteString("Which description fits the applicant?\n\n")
	for i, c := range m.categories {
		line := "  " + c.Title()
		if i == m.categoryCursor {
			line = selectedItemStyle.Render("▸ " + c.Title())
		} else {
			line = unselectedItemStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderFieldStep(heading string) string {
	st := m.machine.State()
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n\n")
	for i, f := range m.fields {
		var label string
		if i == m.focus {
			label = focusedLabelStyle.Render("▸ " + f.label)
		} else {
			label = labelStyle.Render("  " + f.label)
		}
		b.WriteString(label)
		b.WriteString(" ")
		switch f.kind {
		case fieldMethod:
			b.WriteString(m.renderMethodValue())
		case fieldText:
			b.WriteString(f.input.View())
		case fieldToggle:
			on := st.HasCar
			if f.key == "has_allowances" {
				on = st.HasAllowances
			}
			b.WriteString(renderYesNo(on))
		case fieldTristate:
			b.WriteString(renderTristate(st.MarriedAfterFirstYear))
		}
		b.WriteString("\n")
	}
	if st.Step == domain.StepIncome && st.IncomeMethod == domain.IncomePayslips {
		names := []string{"first", "second", "third"}
		wrote := false
		for i, slip := range st.Slips {
			if !slip.HasGross() {
				continue
			}
			if !wrote {
				b.WriteString("\n")
				wrote = true
			}
			b.WriteString(mutedStyle.Render(fmt.Sprintf("  net, %s slip: %s",
				names[i], output.FormatCurrency(slip.Net()))))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderMethodValue() string {
	var parts []string
	for _, method := range m.methods() {
		label := methodTitle(method)
		if method == m.machine.State().IncomeMethod {
			parts = append(parts, selectedItemStyle.Render("["+label+"]"))
		} else {
			parts = append(parts, mutedStyle.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func methodTitle(method domain.IncomeMethod) string {
	switch method {
	case domain.IncomePayslips:
		return "Payslips"
	case domain.IncomeManual:
		return "Manual"
	case domain.IncomeNotWork:
		return "Not working"
	default:
		return "Choose"
	}
}

func renderYesNo(on bool) string {
	if on {
		return selectedItemStyle.Render("[Yes]") + mutedStyle.Render(" No ")
	}
	return mutedStyle.Render(" Yes ") + selectedItemStyle.Render("[No]")
}

func renderTristate(v *bool) string {
	switch {
	case v == nil:
		return selectedItemStyle.Render("[Not answered]") + mutedStyle.Render(" Yes  No ")
	case *v:
		return mutedStyle.Render(" Not answered ") + selectedItemStyle.Render("[Yes]") + mutedStyle.Render(" No ")
	default:
		return mutedStyle.Render(" Not answered  Yes ") + selectedItemStyle.Render("[No]")
	}
}

// renderInterim shows the live estimate beside the current step.
func (m Model) renderInterim() string {
	result := m.machine.Interim()
	if result == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(mutedStyle.Render("Interim estimate"))
	b.WriteString("\n\n")
	if result.Eligible {
		b.WriteString(successStyle.Render(output.FormatCurrency(result.Amount) + " / month"))
	} else {
		b.WriteString(errorStyle.Render("No eligibility"))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("ceiling %s", output.FormatCurrency(result.Ceiling))))
	return interimPanelStyle.Render(b.String())
}

func (m Model) renderResults() string {
	result := m.machine.Result()
	if result == nil {
		return "No result available."
	}
	var b strings.Builder
	if result.Eligible {
		b.WriteString(successStyle.Render(fmt.Sprintf("Eligible: %s per month", output.FormatCurrency(result.Amount))))
	} else {
		b.WriteString(errorStyle.Render("Not eligible"))
	}
	b.WriteString("\n")
	if result.Method != "" {
		b.WriteString(mutedStyle.Render("Basis: " + result.Method))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	d := result.Details
	rows := [][2]string{
		{"Category", d.Category.Title()},
		{"Category ceiling", output.FormatCurrency(d.Ceiling)},
		{"Average gross", output.FormatCurrency(d.AverageGross)},
		{"Average net", output.FormatCurrency(d.AverageNet)},
	}
	if d.SavingsAddition.IsPositive() {
		rows = append(rows,
			[2]string{"Savings addition", output.FormatCurrency(d.SavingsAddition)},
			[2]string{"Adjusted net", output.FormatCurrency(d.AdjustedNet)})
	}
	if d.Deduction.IsPositive() {
		rows = append(rows, [2]string{"Income deduction", output.FormatCurrency(d.Deduction)})
	}
	for _, row := range rows {
		b.WriteString(labelStyle.Render("  " + row[0]))
		b.WriteString(" " + row[1] + "\n")
	}

	if len(result.Reasons) > 0 {
		b.WriteString("\n")
		for _, reason := range result.Reasons {
			b.WriteString(mutedStyle.Render("• " + reason))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Estimate only; the determining decision rests with the authority."))
	return b.String()
}

func (m Model) renderHelp() string {
	switch m.machine.Step() {
	case domain.StepCategory:
		return helpStyle.Render("↑/↓ choose · enter continue · q quit")
	case domain.StepResults:
		return helpStyle.Render("n new application · b back · q quit")
	default:
		return helpStyle.Render("↑/↓ field · ←/→ choose · enter continue · esc back · ctrl+c quit")
	}
}
