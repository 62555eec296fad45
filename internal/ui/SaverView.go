package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mkoval/sidewinder/internal/game"
)

var (
	mapViewStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Faint(true).
			Padding(0, 1)

	headStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	bodyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	foodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	deadStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	headRunes = map[game.Direction]rune{
		{Dx: 0, Dy: -1}: '▲',
		{Dx: 0, Dy: 1}:  '▼',
		{Dx: -1, Dy: 0}: '◀',
		{Dx: 1, Dy: 0}:  '▶',
	}

	foodRune = '●'
)

const (
	// Rows eaten by the map border and the status bar.
	chromeRows = 3
	chromeCols = 2
	minCols    = 10
	minRows    = 8
)

// SaverModel paints the frames the Director publishes. It never touches the
// GameState itself; everything it needs arrives in the snapshot.
type SaverModel struct {
	director *game.Director

	frame    game.Snapshot
	hasFrame bool
	lastEnd  game.SessionEndedMsg

	screenWidth  int
	screenHeight int
}

func NewSaverModel(director *game.Director, screenWidth, screenHeight int) SaverModel {
	return SaverModel{
		director:     director,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
	}
}

func (m SaverModel) Init() tea.Cmd {
	return m.listenForFrames()
}

func (m SaverModel) listenForFrames() tea.Cmd {
	return func() tea.Msg {
		return <-m.director.Updates
	}
}

func (m SaverModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.screenWidth = msg.Width
		m.screenHeight = msg.Height
		m.director.Resize(gridSizeFor(msg.Width, msg.Height))
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "s" {
			return m, func() tea.Msg { return ShowScoresMsg{} }
		}
		return m, nil

	case game.TickMsg:
		m.frame = msg.Frame
		m.hasFrame = true
		return m, m.listenForFrames()

	case game.SessionEndedMsg:
		m.lastEnd = msg
		return m, m.listenForFrames()
	}

	return m, nil
}

// gridSizeFor converts a terminal size into grid cells, leaving room for the
// border and status bar.
func gridSizeFor(width, height int) (int, int) {
	cols := max(minCols, width-chromeCols)
	rows := max(minRows, height-chromeRows)
	return cols, rows
}

func (m SaverModel) View() string {
	if !m.hasFrame {
		return lipgloss.Place(m.screenWidth, m.screenHeight,
			lipgloss.Center, lipgloss.Center, "warming up...")
	}

	mapContent := renderFrame(m.frame)
	status := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left,
		mapViewStyle.Render(mapContent),
		statusBarStyle.Render(status),
	)
}

// renderFrame paints the grid, joining body segments with box-drawing runes
// picked from each segment's neighbors in the body sequence.
func renderFrame(frame game.Snapshot) string {
	style := bodyStyle
	if !frame.Alive {
		style = deadStyle
	}

	glyphs := make(map[game.Cell]string, len(frame.Snake)+1)
	glyphs[frame.Food] = foodStyle.Render(string(foodRune))

	for i, cell := range frame.Snake {
		if i == 0 {
			head := headRunes[frame.Dir]
			if head == 0 {
				// Zero direction before the first move.
				head = foodRune
			}
			glyphs[cell] = headStyle.Render(string(head))
			continue
		}
		glyphs[cell] = style.Render(string(segmentRune(frame.Snake, i)))
	}

	var sb strings.Builder
	for y := range frame.Rows {
		for x := range frame.Cols {
			if glyph, ok := glyphs[game.Cell{X: x, Y: y}]; ok {
				sb.WriteString(glyph)
			} else {
				sb.WriteByte(' ')
			}
		}
		if y < frame.Rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func segmentRune(snake []game.Cell, i int) rune {
	cell := snake[i]
	hasUp, hasDown, hasLeft, hasRight := false, false, false, false

	mark := func(n game.Cell) {
		switch {
		case n.X == cell.X && n.Y == cell.Y-1:
			hasUp = true
		case n.X == cell.X && n.Y == cell.Y+1:
			hasDown = true
		case n.Y == cell.Y && n.X == cell.X-1:
			hasLeft = true
		case n.Y == cell.Y && n.X == cell.X+1:
			hasRight = true
		}
	}
	mark(snake[i-1])
	if i+1 < len(snake) {
		mark(snake[i+1])
	}

	switch {
	case (hasUp && hasDown) || (hasUp && !hasLeft && !hasRight && !hasDown) || (hasDown && !hasLeft && !hasRight && !hasUp):
		return '│'
	case (hasLeft && hasRight) || (hasLeft && !hasUp && !hasDown && !hasRight) || (hasRight && !hasUp && !hasDown && !hasLeft):
		return '─'
	case hasUp && hasRight:
		return '└'
	case hasUp && hasLeft:
		return '┘'
	case hasDown && hasRight:
		return '┌'
	case hasDown && hasLeft:
		return '┐'
	default:
		return '•'
	}
}

func (m SaverModel) renderStatusBar() string {
	frame := m.frame
	speed := time.Second / max(frame.Interval, time.Millisecond)

	status := fmt.Sprintf("score %d   length %d   games %d   %d fps   s: scores  q: quit",
		frame.Score, len(frame.Snake), frame.Games, speed)

	if !frame.Alive {
		status = fmt.Sprintf("session over at %d points, restarting...   games %d   s: scores  q: quit",
			m.lastEnd.FinalScore, frame.Games)
	}
	return status
}
