// Package tui is the terminal rendering adapter for the bingo card.
// It drives the same pure transitions as the HTTP surface.
package tui

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/robalobadob/walkbingo/internal/bingo"
)

// Run starts the interactive program and blocks until the user quits.
// When logPath is set, zerolog writes JSON lines there; the terminal
// itself is never logged to.
func Run(pool []string, logPath string) error {
	logger := zerolog.Nop()
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log %s: %w", logPath, err)
		}
		defer f.Close()
		logger = zerolog.New(f).With().Timestamp().Logger()
	}

	p := tea.NewProgram(newModel(pool, bingo.CryptoRand{}, logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
