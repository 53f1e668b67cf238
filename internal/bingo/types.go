// internal/bingo/types.go
//
// Core type definitions for the walking bingo card.
// Defines:
//   - Cell:  one grid position (prompt text + marked flag).
//   - Popup: visibility of the "bingo achieved" overlay (hidden/shown).
//   - Line:  one of the eight winning lines of a 3x3 grid.
//   - Card:  the whole state of one card, treated as an immutable value.

package bingo

// Size is the number of rows and columns of a card.
const Size = 3

// Cells is the number of prompts drawn for one card.
const Cells = Size * Size

// Cell is a single prompt on the card.
type Cell struct {
	Text   string `json:"text"`
	Marked bool   `json:"marked"`
}

// Popup is the visibility of the bingo overlay.
// Possible values:
//   - "hidden": initial state, and after dismissal or a new card.
//   - "shown":  a toggle left at least one line fully marked.
type Popup string

const (
	PopupHidden Popup = "hidden"
	PopupShown  Popup = "shown"
)

// Line identifies a winning line.
type Line string

const (
	LineRow0     Line = "row0"
	LineRow1     Line = "row1"
	LineRow2     Line = "row2"
	LineCol0     Line = "col0"
	LineCol1     Line = "col1"
	LineCol2     Line = "col2"
	LineDiagonal Line = "diagonal"
	LineAnti     Line = "anti-diagonal"
)

// Card holds the state of a single bingo card.
// Transition methods return a new Card; the receiver is never modified.
type Card struct {
	ID    string           `json:"id"`              // Unique card identifier (random hex string).
	Cells [Size][Size]Cell `json:"cells"`           // Row-major grid.
	Popup Popup            `json:"popup"`           // Overlay visibility.
	Daily string           `json:"daily,omitempty"` // Date key (YYYY-MM-DD) for daily cards.
}
