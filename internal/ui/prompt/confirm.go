package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModel struct {
	question  string
	affirm    string
	deny      string
	active    int
	done      bool
	cancelled bool
}

func newConfirmModel(question, affirm, deny string) confirmModel {
	return confirmModel{question: question, affirm: affirm, deny: deny}
}

func (m confirmModel) affirmed() bool {
	return m.done && m.active == 0
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "left", "h", "shift+tab":
			m.active = 0
		case "right", "l", "tab":
			m.active = 1
		case "y", "Y":
			m.active = 0
			m.done = true
			return m, tea.Quit
		case "n", "N":
			m.active = 1
			m.done = true
			return m, tea.Quit
		case "enter":
			m.done = true
			return m, tea.Quit
		case "esc", "ctrl+c":
			m.cancelled = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.cancelled {
		return dimStyle.Render("✗ "+m.question) + "\n"
	}
	if m.done {
		choice := m.affirm
		if m.active == 1 {
			choice = m.deny
		}
		return doneStyle.Render("✓ ") + m.question + " " + selectedStyle.Render(choice) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.question) + "\n\n")

	affirm := buttonStyle.Render(m.affirm)
	deny := buttonStyle.Render(m.deny)
	if m.active == 0 {
		affirm = buttonActiveStyle.Render(m.affirm)
	} else {
		deny = buttonActiveStyle.Render(m.deny)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, affirm, "  ", deny) + "\n")
	b.WriteString(helpStyle.Render("←/→ move · enter select · y/n shortcuts · esc cancel") + "\n")
	return b.String()
}
