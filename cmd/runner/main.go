package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mkoval/sidewinder/internal/game"
	"github.com/mkoval/sidewinder/internal/ui"
)

const defaultDBPath = "saver_scores.db"

func main() {
	dbPath := os.Getenv("SIDEWINDER_DB")
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	scores, err := game.NewScoreService(dbPath)
	if err != nil {
		// The saver runs fine without persistence.
		log.Warn("score store unavailable, continuing without it", "path", dbPath, "error", err)
		scores = nil
	}
	defer scores.Close()

	director := game.NewDirector(game.DefaultCols, game.DefaultRows, scores)

	if strategyPath := os.Getenv("SIDEWINDER_STRATEGY"); strategyPath != "" {
		source, readErr := os.ReadFile(strategyPath)
		if readErr != nil {
			log.Warn("could not read lua strategy, using the heuristic agent", "path", strategyPath, "error", readErr)
		} else {
			director.UseLuaStrategy(string(source))
			log.Info("loaded lua strategy", "path", strategyPath)
		}
	}

	director.Start()
	defer director.Stop()

	p := tea.NewProgram(ui.NewControllerModel(director, scores, game.DefaultCols, game.DefaultRows), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("error %v", err)
		os.Exit(1)
	}
}
