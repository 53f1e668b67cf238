// internal/theme/theme.go
//
// Static look and copy for every render layer (HTML page, terminal UI).
// Values are fixed for the process lifetime; there is no runtime theming.

package theme

// Theme holds colors and sizes used by the renderers.
// Colors are CSS hex strings; lipgloss accepts the same format.
type Theme struct {
	Background     string
	Title          string
	CardBackground string
	CellBorder     string
	MarkedBg       string
	MarkedFg       string
	ButtonBg       string
	ButtonFg       string
	PopupBackdrop  string
	PopupButtonBg  string

	CellSize   string // CSS length of one cell edge
	Transition string // CSS transition hint for cells and buttons
}

// Copy holds the fixed user-facing text.
type Copy struct {
	Title        string
	Subtitle     string
	NewCard      string
	BingoTitle   string
	BingoMessage string
	Close        string
}

// Default is the only theme.
var Default = Theme{
	Background:     "#f3f4f6",
	Title:          "#1f2937",
	CardBackground: "#ffffff",
	CellBorder:     "#d1d5db",
	MarkedBg:       "#3b82f6",
	MarkedFg:       "#ffffff",
	ButtonBg:       "#10b981",
	ButtonFg:       "#ffffff",
	PopupBackdrop:  "#00000080",
	PopupButtonBg:  "#3b82f6",
	CellSize:       "6rem",
	Transition:     "all 0.3s ease",
}

// Text is the only copy deck (Japanese, no localization).
var Text = Copy{
	Title:        "さんぽビンゴ",
	Subtitle:     "見つけたら写真を撮って記録！！",
	NewCard:      "新しいカード",
	BingoTitle:   "ビンゴ！",
	BingoMessage: "おめでとうございます！いい散歩ライフを！",
	Close:        "閉じる",
}
