package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mkoval/sidewinder/internal/game"
)

type Screen int

const (
	IntroScreen Screen = iota
	SaverScreen
	ScoresScreen
)

// Messages for state transitions
type IntroSubmitMsg struct{}
type ShowScoresMsg struct{}
type HideScoresMsg struct{}

type ControllerModel struct {
	CurrentScreen Screen
	Director      *game.Director

	IntroModel  tea.Model
	SaverModel  tea.Model
	ScoresModel tea.Model

	ScreenWidth  int
	ScreenHeight int
}

func NewControllerModel(director *game.Director, scores *game.ScoreService, screenWidth, screenHeight int) ControllerModel {
	return ControllerModel{
		CurrentScreen: IntroScreen,
		Director:      director,

		IntroModel:  NewIntroModel(screenWidth, screenHeight),
		SaverModel:  NewSaverModel(director, screenWidth, screenHeight),
		ScoresModel: NewScoresModel(scores, screenWidth, screenHeight),

		ScreenWidth:  screenWidth,
		ScreenHeight: screenHeight,
	}
}

func (m ControllerModel) Init() tea.Cmd {
	return tea.Batch(m.IntroModel.Init(), m.SaverModel.Init())
}

func (m ControllerModel) View() string {
	switch m.CurrentScreen {
	case IntroScreen:
		return m.IntroModel.View()
	case SaverScreen:
		return m.SaverModel.View()
	case ScoresScreen:
		return m.ScoresModel.View()
	default:
		return "Unknown Screen"
	}
}

func (m ControllerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	// Global keys first, whatever the screen.
	if key, ok := msg.(tea.KeyMsg); ok {
		if key.String() == "ctrl+c" || key.String() == "q" {
			return m, tea.Quit
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ScreenWidth = msg.Width
		m.ScreenHeight = msg.Height
		// Every screen tracks the terminal size, active or not.
		m.IntroModel, _ = m.IntroModel.Update(msg)
		m.SaverModel, cmd = m.SaverModel.Update(msg)
		cmds = append(cmds, cmd)
		m.ScoresModel, _ = m.ScoresModel.Update(msg)
		return m, tea.Batch(cmds...)

	case game.TickMsg, game.SessionEndedMsg:
		// Simulation frames always land in the saver model so the animation
		// keeps running behind the scores overlay.
		m.SaverModel, cmd = m.SaverModel.Update(msg)
		return m, cmd

	case IntroSubmitMsg:
		m.CurrentScreen = SaverScreen
		return m, nil

	case ShowScoresMsg:
		m.CurrentScreen = ScoresScreen
		return m, m.ScoresModel.Init()

	case HideScoresMsg:
		m.CurrentScreen = SaverScreen
		return m, nil

	default:
		switch m.CurrentScreen {
		case IntroScreen:
			m.IntroModel, cmd = m.IntroModel.Update(msg)
			cmds = append(cmds, cmd)
		case SaverScreen:
			m.SaverModel, cmd = m.SaverModel.Update(msg)
			cmds = append(cmds, cmd)
		case ScoresScreen:
			m.ScoresModel, cmd = m.ScoresModel.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}
