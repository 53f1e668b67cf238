package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/robalobadob/walkbingo/internal/bingo"
)

// model is the bubbletea state: the card value plus a cursor.
type model struct {
	pool []string
	rnd  bingo.Rand
	log  zerolog.Logger

	card bingo.Card
	row  int
	col  int
}

// newModel builds the model and generates the first card.
func newModel(pool []string, rnd bingo.Rand, log zerolog.Logger) model {
	m := model{pool: pool, rnd: rnd, log: log}
	m.newCard()
	return m
}

func (m *model) newCard() {
	m.card = bingo.Generate(m.pool, m.rnd)
	m.log.Debug().Str("cardId", m.card.ID).Msg("new card")
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		if key == "q" || key == "ctrl+c" {
			return m, tea.Quit
		}

		// The overlay covers the grid: it can be closed, or replaced by a new card.
		if m.card.Popup == bingo.PopupShown {
			switch key {
			case "esc", "enter", "c", " ":
				m.card = m.card.Dismiss()
			case "n":
				m.newCard()
			}
			return m, nil
		}

		switch key {
		case "up", "k":
			if m.row > 0 {
				m.row--
			}
		case "down", "j":
			if m.row < bingo.Size-1 {
				m.row++
			}
		case "left", "h":
			if m.col > 0 {
				m.col--
			}
		case "right", "l":
			if m.col < bingo.Size-1 {
				m.col++
			}
		case " ", "enter":
			next, err := m.card.Toggle(m.row, m.col)
			if err != nil {
				m.log.Error().Err(err).Int("row", m.row).Int("col", m.col).Msg("toggle")
				return m, nil
			}
			if next.Popup == bingo.PopupShown && m.card.Popup != bingo.PopupShown {
				m.log.Info().Str("cardId", next.ID).Strs("lines", linesOf(next)).Msg("bingo")
			}
			m.card = next
		case "n":
			m.newCard()
		}
	}
	return m, nil
}

func linesOf(c bingo.Card) []string {
	var out []string
	for _, l := range bingo.WinningLines(c.Marks()) {
		out = append(out, string(l))
	}
	return out
}
