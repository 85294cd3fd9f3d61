// Package tui is the interactive terminal wizard over the eligibility
// engine: four steps, arrow-key navigation, and a live estimate panel that
// follows every keystroke.
package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/ch8101040/tashmash/internal/domain"
	"github.com/ch8101040/tashmash/internal/wizard"
)

type fieldKind int

const (
	fieldMethod fieldKind = iota
	fieldText
	fieldToggle
	fieldTristate
)

// field is one focusable row on the income or extras step. Text fields carry
// a textinput; toggles and tristates render inline.
type field struct {
	kind  fieldKind
	key   string
	label string
	input textinput.Model
}

// Model is the bubbletea model for the whole wizard.
type Model struct {
	machine *wizard.Machine

	width  int
	height int

	// Step 1 cursor over the visible categories.
	categories     []domain.ApplicantCategory
	categoryCursor int

	// Steps 2 and 3: focusable field rows.
	fields []field
	focus  int

	quitting bool
}

// NewModel builds the wizard model around a fresh machine.
func NewModel(rules *domain.RuleSet) Model {
	m := Model{
		machine:    wizard.New(rules),
		categories: domain.VisibleCategories(domain.AllCategories(), nil),
		width:      80,
		height:     24,
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// methods lists the income methods offered for the current category. The
// not-working option is hidden where it cannot apply.
func (m *Model) methods() []domain.IncomeMethod {
	out := []domain.IncomeMethod{domain.IncomePayslips, domain.IncomeManual}
	if m.machine.State().Category.CanSelectNotWorking() {
		out = append(out, domain.IncomeNotWork)
	}
	return out
}

// rebuildFields recreates the field rows for the current step and resets
// focus to the top.
func (m *Model) rebuildFields() {
	st := m.machine.State()
	m.fields = nil
	m.focus = 0

	switch st.Step {
	case domain.StepIncome:
		m.fields = append(m.fields, field{kind: fieldMethod, key: "income_method", label: "Income entry method"})
		switch st.IncomeMethod {
		case domain.IncomePayslips:
			labels := []string{"first", "second", "third"}
			for i := 0; i < domain.SlipCount; i++ {
				n := strconv.Itoa(i)
				m.addText("gross_"+n, "Gross, "+labels[i]+" slip", decText(st.Slips[i].Gross))
				m.addText("deductions_"+n, "Deductions, "+labels[i]+" slip", decText(st.Slips[i].Deductions))
				m.addText("one_time_"+n, "One-time pay, "+labels[i]+" slip", decText(st.Slips[i].OneTime))
			}
		case domain.IncomeManual:
			m.addText("manual_gross", "Average gross income", decText(st.Manual.Gross))
			m.addText("manual_net", "Average net income", decText(st.Manual.Net))
		}
	case domain.StepExtras:
		m.addText("savings", "Household savings", decText(st.Savings))
		m.fields = append(m.fields, field{kind: fieldToggle, key: "has_car", label: "Owns a vehicle"})
		if st.HasCar {
			m.addText("car_value", "Vehicle value", decText(st.CarValue))
		}
		m.fields = append(m.fields, field{kind: fieldToggle, key: "has_allowances", label: "Receives other allowances"})
		if st.Category.IsStudent() {
			m.fields = append(m.fields, field{kind: fieldTristate, key: "married_after_first_year",
				label: "Married after first study year"})
		}
	}
	m.syncFocus()
}

func (m *Model) addText(key, label, value string) {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = "0"
	ti.CharLimit = 12
	ti.Width = 14
	ti.SetValue(value)
	m.fields = append(m.fields, field{kind: fieldText, key: key, label: label, input: ti})
}

// syncFocus focuses the text input under the cursor and blurs the rest.
func (m *Model) syncFocus() {
	for i := range m.fields {
		if m.fields[i].kind != fieldText {
			continue
		}
		if i == m.focus {
			m.fields[i].input.Focus()
		} else {
			m.fields[i].input.Blur()
		}
	}
}

// applyField pushes one edited field into the machine, which recomputes the
// interim estimate as a side effect.
func (m *Model) applyField(f *field) {
	st := m.machine.State()
	switch f.key {
	case "manual_gross":
		m.machine.SetManualGross(parseDecimal(f.input.Value()))
	case "manual_net":
		m.machine.SetManualNet(parseDecimal(f.input.Value()))
	case "savings":
		m.machine.SetSavings(parseDecimal(f.input.Value()))
	case "car_value":
		m.machine.SetCarValue(parseDecimal(f.input.Value()))
	default:
		if i, part, ok := slipKey(f.key); ok {
			slip := st.Slips[i]
			v := parseDecimal(f.input.Value())
			switch part {
			case "gross":
				slip.Gross = v
			case "deductions":
				slip.Deductions = v
			case "one_time":
				slip.OneTime = v
			}
			m.machine.SetSlip(i, slip)
		}
	}
}

// slipKey splits "gross_1" style keys into part and slot index.
func slipKey(key string) (slot int, part string, ok bool) {
	for _, p := range []string{"gross", "deductions", "one_time"} {
		prefix := p + "_"
		if strings.HasPrefix(key, prefix) && len(key) == len(prefix)+1 {
			d := key[len(prefix)]
			if d >= '0' && d < '0'+domain.SlipCount {
				return int(d - '0'), p, true
			}
		}
	}
	return 0, "", false
}

func parseDecimal(s string) *decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	return &d
}

func decText(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}
