package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/walkbingo/internal/bingo"
	"github.com/robalobadob/walkbingo/internal/theme"
)

const cellWidth = 14

// styles are built once from the static theme.
type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	cell     lipgloss.Style
	marked   lipgloss.Style
	cursor   lipgloss.Color
	button   lipgloss.Style
	popup    lipgloss.Style
	popTitle lipgloss.Style
	help     lipgloss.Style
}

func newStyles(t theme.Theme) styles {
	cell := lipgloss.NewStyle().
		Width(cellWidth).
		Height(3).
		Align(lipgloss.Center, lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(t.CellBorder))
	return styles{
		title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Title)),
		subtitle: lipgloss.NewStyle().Faint(true),
		cell:     cell,
		marked:   cell.Background(lipgloss.Color(t.MarkedBg)).Foreground(lipgloss.Color(t.MarkedFg)),
		cursor:   lipgloss.Color(t.ButtonBg),
		button: lipgloss.NewStyle().
			Padding(0, 2).
			Background(lipgloss.Color(t.ButtonBg)).
			Foreground(lipgloss.Color(t.ButtonFg)),
		popup: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color(t.PopupButtonBg)).
			Padding(1, 4).
			Align(lipgloss.Center),
		popTitle: lipgloss.NewStyle().Bold(true),
		help:     lipgloss.NewStyle().Faint(true),
	}
}

var st = newStyles(theme.Default)

func (m model) View() string {
	var b strings.Builder
	b.WriteString(st.title.Render(theme.Text.Title))
	b.WriteString("\n")
	b.WriteString(st.subtitle.Render(theme.Text.Subtitle))
	b.WriteString("\n\n")

	if m.card.Popup == bingo.PopupShown {
		b.WriteString(m.popupView())
		b.WriteString("\n")
		b.WriteString(st.button.Render("n: " + theme.Text.NewCard))
		b.WriteString("\n\n")
		b.WriteString(st.help.Render("enter/esc: " + theme.Text.Close + " • q: quit"))
		return b.String()
	}

	b.WriteString(m.gridView())
	b.WriteString("\n")
	b.WriteString(st.button.Render("n: " + theme.Text.NewCard))
	b.WriteString("\n\n")
	b.WriteString(st.help.Render("←↓↑→/hjkl: move • space/enter: mark • q: quit"))
	return b.String()
}

func (m model) gridView() string {
	rows := make([]string, 0, bingo.Size)
	for i := range m.card.Cells {
		cells := make([]string, 0, bingo.Size)
		for j, c := range m.card.Cells[i] {
			s := st.cell
			if c.Marked {
				s = st.marked
			}
			if i == m.row && j == m.col {
				s = s.BorderForeground(st.cursor).BorderStyle(lipgloss.ThickBorder())
			}
			cells = append(cells, s.Render(c.Text))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m model) popupView() string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		st.popTitle.Render(theme.Text.BingoTitle),
		"",
		theme.Text.BingoMessage,
		"",
		st.button.Render(theme.Text.Close),
	)
	return st.popup.Render(body)
}
