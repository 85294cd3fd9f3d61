package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ch8101040/tashmash/internal/domain"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m.updateFocusedInput(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.machine.Step() {
	case domain.StepCategory:
		return m.handleCategoryKey(msg)
	case domain.StepResults:
		return m.handleResultsKey(msg)
	default:
		return m.handleFieldKey(msg)
	}
}

func (m Model) handleCategoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.categoryCursor > 0 {
			m.categoryCursor--
		}
	case "down", "j":
		if m.categoryCursor < len(m.categories)-1 {
			m.categoryCursor++
		}
	case "enter":
		m.machine.SelectCategory(m.categories[m.categoryCursor])
		if m.machine.Advance() {
			m.rebuildFields()
		}
	}
	return m, nil
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "n":
		m.machine.Reset()
		m.categoryCursor = 0
		m.fields = nil
		m.focus = 0
	case "esc", "b":
		m.machine.Back()
		m.rebuildFields()
	}
	return m, nil
}

func (m Model) handleFieldKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.machine.Back()
		m.rebuildFields()
		return m, nil
	case "enter":
		if m.machine.Advance() {
			m.rebuildFields()
		}
		return m, nil
	case "up", "shift+tab":
		if m.focus > 0 {
			m.focus--
			m.syncFocus()
		}
		return m, nil
	case "down", "tab":
		if m.focus < len(m.fields)-1 {
			m.focus++
			m.syncFocus()
		}
		return m, nil
	}

	if m.focus >= len(m.fields) {
		return m, nil
	}
	f := &m.fields[m.focus]
	switch f.kind {
	case fieldMethod:
		return m.handleMethodKey(msg)
	case fieldToggle, fieldTristate:
		return m.handleToggleKey(f, msg)
	case fieldText:
		var cmd tea.Cmd
		f.input, cmd = f.input.Update(msg)
		m.applyField(f)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleMethodKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	methods := m.methods()
	cur := 0
	for i, method := range methods {
		if method == m.machine.State().IncomeMethod {
			cur = i
			break
		}
	}
	switch msg.String() {
	case "left", "h":
		cur--
	case "right", "l", " ":
		cur++
	default:
		return m, nil
	}
	cur = (cur + len(methods)) % len(methods)
	m.machine.SetIncomeMethod(methods[cur])
	m.rebuildAt("income_method")
	return m, nil
}

func (m Model) handleToggleKey(f *field, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "right", "h", "l", " ":
	default:
		return m, nil
	}
	st := m.machine.State()
	switch f.key {
	case "has_car":
		m.machine.SetHasCar(!st.HasCar)
		m.rebuildAt("has_car")
	case "has_allowances":
		m.machine.SetHasAllowances(!st.HasAllowances)
	case "married_after_first_year":
		// Cycle unanswered, yes, no.
		switch {
		case st.MarriedAfterFirstYear == nil:
			yes := true
			m.machine.SetMarriedAfterFirstYear(&yes)
		case *st.MarriedAfterFirstYear:
			no := false
			m.machine.SetMarriedAfterFirstYear(&no)
		default:
			m.machine.SetMarriedAfterFirstYear(nil)
		}
	}
	return m, nil
}

// rebuildAt rebuilds the field rows, returning focus to the row with the
// given key. Used when a change adds or removes rows.
func (m *Model) rebuildAt(key string) {
	m.rebuildFields()
	for i := range m.fields {
		if m.fields[i].key == key {
			m.focus = i
			break
		}
	}
	m.syncFocus()
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus < len(m.fields) && m.fields[m.focus].kind == fieldText {
		var cmd tea.Cmd
		m.fields[m.focus].input, cmd = m.fields[m.focus].input.Update(msg)
		return m, cmd
	}
	return m, nil
}
