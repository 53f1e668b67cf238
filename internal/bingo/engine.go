// internal/bingo/engine.go
//
// Core engine for a single walking bingo card.
// Responsibilities:
//   - Generate new cards: nine distinct prompts drawn without replacement.
//   - Toggle one cell's marked flag and re-run the win check.
//   - Dismiss the bingo popup.
//   - Evaluate the eight winning lines (3 rows, 3 columns, 2 diagonals).
//
// Notes:
//   - Every transition is a pure function of (Card, input) -> Card.
//   - The win check keeps no history; it is recomputed on every toggle.
package bingo

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// ErrOutOfRange is returned by Toggle for coordinates outside the grid.
var ErrOutOfRange = errors.New("cell out of range")

// Generate builds a new card from pool using r for the shuffle.
// Every cell starts unmarked and the popup starts hidden.
// The pool is not modified. Panics if the pool has fewer than Cells entries.
func Generate(pool []string, r Rand) Card {
	if len(pool) < Cells {
		panic(fmt.Sprintf("bingo: prompt pool has %d entries, need at least %d", len(pool), Cells))
	}
	picked := Sample(pool, Cells, r)

	c := Card{ID: randomID(), Popup: PopupHidden}
	for i, text := range picked {
		c.Cells[i/Size][i%Size] = Cell{Text: text}
	}
	return c
}

// Toggle flips the marked flag of the cell at (row, col) and re-runs the
// win check. When any line is complete the popup is shown; otherwise the
// popup keeps its current state.
func (c Card) Toggle(row, col int) (Card, error) {
	if row < 0 || row >= Size || col < 0 || col >= Size {
		return c, ErrOutOfRange
	}
	next := c // arrays copy by value
	next.Cells[row][col].Marked = !next.Cells[row][col].Marked
	if HasBingo(next.Marks()) {
		next.Popup = PopupShown
	}
	return next, nil
}

// Dismiss hides the popup.
func (c Card) Dismiss() Card {
	c.Popup = PopupHidden
	return c
}

// Bingo reports whether at least one line of c is fully marked.
func (c Card) Bingo() bool { return HasBingo(c.Marks()) }

// Marks projects the grid onto its marked flags.
func (c Card) Marks() [Size][Size]bool {
	var m [Size][Size]bool
	for i := range c.Cells {
		for j := range c.Cells[i] {
			m[i][j] = c.Cells[i][j].Marked
		}
	}
	return m
}

// Texts returns the prompts of c in row-major order.
func (c Card) Texts() []string {
	out := make([]string, 0, Cells)
	for i := range c.Cells {
		for j := range c.Cells[i] {
			out = append(out, c.Cells[i][j].Text)
		}
	}
	return out
}

// MarkedCount returns the number of marked cells.
func (c Card) MarkedCount() int {
	n := 0
	for i := range c.Cells {
		for j := range c.Cells[i] {
			if c.Cells[i][j].Marked {
				n++
			}
		}
	}
	return n
}

// lines lists every winning line as coordinates, in evaluation order:
// rows, columns, main diagonal, anti-diagonal.
var lines = []struct {
	id    Line
	cells [Size][2]int
}{
	{LineRow0, [Size][2]int{{0, 0}, {0, 1}, {0, 2}}},
	{LineRow1, [Size][2]int{{1, 0}, {1, 1}, {1, 2}}},
	{LineRow2, [Size][2]int{{2, 0}, {2, 1}, {2, 2}}},
	{LineCol0, [Size][2]int{{0, 0}, {1, 0}, {2, 0}}},
	{LineCol1, [Size][2]int{{0, 1}, {1, 1}, {2, 1}}},
	{LineCol2, [Size][2]int{{0, 2}, {1, 2}, {2, 2}}},
	{LineDiagonal, [Size][2]int{{0, 0}, {1, 1}, {2, 2}}},
	{LineAnti, [Size][2]int{{0, 2}, {1, 1}, {2, 0}}},
}

// HasBingo reports whether any line is fully marked.
// Returns on the first complete line.
func HasBingo(m [Size][Size]bool) bool {
	for _, l := range lines {
		if complete(m, l.cells) {
			return true
		}
	}
	return false
}

// WinningLines returns every fully marked line in evaluation order.
func WinningLines(m [Size][Size]bool) []Line {
	var out []Line
	for _, l := range lines {
		if complete(m, l.cells) {
			out = append(out, l.id)
		}
	}
	return out
}

// complete is true only when all three cells of a line are marked.
func complete(m [Size][Size]bool, cells [Size][2]int) bool {
	for _, rc := range cells {
		if !m[rc[0]][rc[1]] {
			return false
		}
	}
	return true
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
