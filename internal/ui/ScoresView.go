package ui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/mkoval/sidewinder/internal/game"
)

const scoresShown = 10

var (
	scoresTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(1, 0)

	scoresBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder())

	scoresHintStyle = lipgloss.NewStyle().
			Faint(true).
			Margin(1, 0)
)

// ScoresModel lists the best finished sessions from the score store.
type ScoresModel struct {
	scores *game.ScoreService
	tbl    table.Model
	count  int

	width  int
	height int
}

func NewScoresModel(scores *game.ScoreService, w, h int) ScoresModel {
	columns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Score", Width: 7},
		{Title: "Length", Width: 7},
		{Title: "Game", Width: 6},
		{Title: "When", Width: 16},
	}

	tbl := table.New(
		table.WithColumns(columns),
		table.WithHeight(scoresShown+1),
		table.WithFocused(true),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true)
	tbl.SetStyles(styles)

	return ScoresModel{scores: scores, tbl: tbl, width: w, height: h}
}

// Init reloads the table so the list is fresh every time the screen opens.
func (m ScoresModel) Init() tea.Cmd {
	return func() tea.Msg { return loadScores(m.scores) }
}

type scoresLoadedMsg struct {
	rows  []table.Row
	count int
}

func loadScores(scores *game.ScoreService) scoresLoadedMsg {
	top, err := scores.TopScores(scoresShown)
	if err != nil {
		log.Warn("could not load top scores", "error", err)
		return scoresLoadedMsg{}
	}
	count, err := scores.TotalCount()
	if err != nil {
		log.Warn("could not count scores", "error", err)
	}

	rows := make([]table.Row, 0, len(top))
	for i, s := range top {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Length),
			strconv.Itoa(s.GameNo),
			s.CreatedAt.Format("2006-01-02 15:04"),
		})
	}
	return scoresLoadedMsg{rows: rows, count: count}
}

func (m ScoresModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case scoresLoadedMsg:
		m.tbl.SetRows(msg.rows)
		m.count = msg.count
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "enter", "s":
			return m, func() tea.Msg { return HideScoresMsg{} }
		}
	}

	var cmd tea.Cmd
	m.tbl, cmd = m.tbl.Update(msg)
	return m, cmd
}

func (m ScoresModel) View() string {
	title := scoresTitleStyle.Render("TOP SESSIONS")
	hint := scoresHintStyle.Render(fmt.Sprintf("%d sessions recorded   esc: back  q: quit", m.count))

	content := lipgloss.JoinVertical(lipgloss.Center,
		title,
		m.tbl.View(),
		hint,
	)

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		scoresBoxStyle.Render(content),
	)
}
