package prompt

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type selectModel struct {
	title     string
	options   []string
	cursor    int
	done      bool
	cancelled bool
}

func newSelectModel(title string, options []string, initial int) selectModel {
	if initial < 0 || initial >= len(options) {
		initial = 0
	}
	return selectModel{title: title, options: options, cursor: initial}
}

func (m selectModel) Init() tea.Cmd {
	return nil
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
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

func (m selectModel) View() string {
	if m.cancelled {
		return dimStyle.Render("✗ "+m.title) + "\n"
	}
	if m.done {
		return doneStyle.Render("✓ ") + m.title + ": " + selectedStyle.Render(m.options[m.cursor]) + "\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title) + "\n")
	for i, option := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("▸ ") + selectedStyle.Render(option) + "\n")
			continue
		}
		b.WriteString("  " + option + "\n")
	}
	b.WriteString(helpStyle.Render("↑/↓ move · enter select · esc cancel") + "\n")
	return b.String()
}
