package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// IntroModel shows the title card until the screensaver is started.
type IntroModel struct {
	width  int
	height int
}

func NewIntroModel(w, h int) IntroModel {
	return IntroModel{width: w, height: h}
}

func (m IntroModel) Init() tea.Cmd { return nil }

func (m IntroModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tea.KeyMsg:
		if msg.String() == "enter" {
			return m, func() tea.Msg { return IntroSubmitMsg{} }
		}
	}
	return m, nil
}

var sidewinderAscii = `
     ___ ___ ___  ___ _    _ ___ _  _ ___  ___ ___
    / __|_ _|   \| __| |  | |_ _| \| |   \| __| _ \
    \__ \| || |) | _|| |/\| || || .  | |) | _||   /
    |___/___|___/|___|__/\__|___|_|\_|___/|___|_|_\

              ~~~~~~~~~~~==========o>
`

var (
	introAsciiStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	introHintStyle = lipgloss.NewStyle().
			Faint(true).
			Margin(1, 0)
)

func (m IntroModel) View() string {
	var sb strings.Builder
	sb.WriteString(introAsciiStyle.Render(sidewinderAscii))
	sb.WriteString("\n")

	hint := introHintStyle.Render("enter: start the saver   q: quit")
	content := lipgloss.JoinVertical(lipgloss.Center, sb.String(), hint)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		content,
	)
}
