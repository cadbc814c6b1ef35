package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/listview/pkg/model"
)

// BoardModel shows the collection as one column per category. Columns
// inherit the ordering of the slice handed to SetItems, so the active
// sort carries over from the list.
type BoardModel struct {
	columns      [3][]model.Item
	activeColIdx []int  // indices of non-empty columns, for navigation
	focusedCol   int    // index into activeColIdx
	selectedRow  [3]int // cursor row per column
	theme        Theme
	width        int
	height       int

	waitingForG bool // true after a first 'g', for the 'gg' combo
}

const minColWidth = 24

// NewBoardModel returns an empty board.
func NewBoardModel(theme Theme) BoardModel {
	return BoardModel{theme: theme}
}

// SetItems rebuilds the columns from the given items.
func (b *BoardModel) SetItems(items []model.Item) {
	for i := range b.columns {
		b.columns[i] = nil
	}
	for _, it := range items {
		r := it.Category.Rank()
		if r >= len(b.columns) {
			continue
		}
		b.columns[r] = append(b.columns[r], it)
	}
	b.updateActiveColumns()
}

// SetSize updates the layout bounds.
func (b *BoardModel) SetSize(width, height int) {
	b.width = width
	b.height = height
}

// SetTheme swaps the theme.
func (b *BoardModel) SetTheme(t Theme) {
	b.theme = t
}

// updateActiveColumns recomputes which columns take part in navigation
// and clamps the cursors after a rebuild.
func (b *BoardModel) updateActiveColumns() {
	b.activeColIdx = b.activeColIdx[:0]
	for i, col := range b.columns {
		if len(col) > 0 {
			b.activeColIdx = append(b.activeColIdx, i)
		}
	}
	if b.focusedCol >= len(b.activeColIdx) {
		b.focusedCol = len(b.activeColIdx) - 1
	}
	if b.focusedCol < 0 {
		b.focusedCol = 0
	}
	for i := range b.selectedRow {
		if b.selectedRow[i] >= len(b.columns[i]) {
			b.selectedRow[i] = len(b.columns[i]) - 1
		}
		if b.selectedRow[i] < 0 {
			b.selectedRow[i] = 0
		}
	}
}

// HandleKey processes a board navigation key. It reports whether the
// key was consumed.
func (b *BoardModel) HandleKey(key string) bool {
	if b.waitingForG {
		b.waitingForG = false
		if key == "g" {
			b.JumpTop()
			return true
		}
	}
	switch key {
	case "h", "left":
		b.MoveLeft()
	case "l", "right":
		b.MoveRight()
	case "j", "down":
		b.MoveDown()
	case "k", "up":
		b.MoveUp()
	case "g":
		b.waitingForG = true
	case "G":
		b.JumpBottom()
	default:
		return false
	}
	return true
}

// MoveLeft focuses the previous non-empty column.
func (b *BoardModel) MoveLeft() {
	if b.focusedCol > 0 {
		b.focusedCol--
	}
}

// MoveRight focuses the next non-empty column.
func (b *BoardModel) MoveRight() {
	if b.focusedCol < len(b.activeColIdx)-1 {
		b.focusedCol++
	}
}

// MoveUp moves the cursor up within the focused column.
func (b *BoardModel) MoveUp() {
	ci, ok := b.focusedColumn()
	if !ok {
		return
	}
	if b.selectedRow[ci] > 0 {
		b.selectedRow[ci]--
	}
}

// MoveDown moves the cursor down within the focused column.
func (b *BoardModel) MoveDown() {
	ci, ok := b.focusedColumn()
	if !ok {
		return
	}
	if b.selectedRow[ci] < len(b.columns[ci])-1 {
		b.selectedRow[ci]++
	}
}

// JumpTop moves the cursor to the top of the focused column.
func (b *BoardModel) JumpTop() {
	if ci, ok := b.focusedColumn(); ok {
		b.selectedRow[ci] = 0
	}
}

// JumpBottom moves the cursor to the bottom of the focused column.
func (b *BoardModel) JumpBottom() {
	if ci, ok := b.focusedColumn(); ok {
		b.selectedRow[ci] = len(b.columns[ci]) - 1
	}
}

// Current returns the item under the board cursor.
func (b *BoardModel) Current() (model.Item, bool) {
	ci, ok := b.focusedColumn()
	if !ok {
		return model.Item{}, false
	}
	row := b.selectedRow[ci]
	if row < 0 || row >= len(b.columns[ci]) {
		return model.Item{}, false
	}
	return b.columns[ci][row], true
}

func (b *BoardModel) focusedColumn() (int, bool) {
	if len(b.activeColIdx) == 0 {
		return 0, false
	}
	return b.activeColIdx[b.focusedCol], true
}

// View renders the board.
func (b *BoardModel) View() string {
	if len(b.activeColIdx) == 0 {
		msg := b.theme.Renderer.NewStyle().Foreground(b.theme.Muted).Render("No items to display")
		return lipgloss.Place(b.width, b.height, lipgloss.Center, lipgloss.Center, msg)
	}

	cats := model.Categories()
	n := len(cats)
	colWidth := b.width/n - 2
	if colWidth < minColWidth {
		colWidth = minColWidth
	}

	focusedCat, _ := b.focusedColumn()

	cols := make([]string, 0, n)
	for i, cat := range cats {
		cols = append(cols, b.renderColumn(i, cat, colWidth, i == focusedCat))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (b *BoardModel) renderColumn(ci int, cat model.Category, colWidth int, focused bool) string {
	t := b.theme

	headerStyle := t.Renderer.NewStyle().
		Bold(true).
		Foreground(t.CategoryColor(cat)).
		Width(colWidth).
		Padding(0, 1)
	if focused {
		headerStyle = headerStyle.Underline(true)
	}
	header := headerStyle.Render(fmt.Sprintf("%s %s (%d)", t.CategoryIcon(cat), cat, len(b.columns[ci])))

	// Roughly four lines per card (border plus two content lines).
	maxCards := (b.height - 3) / 4
	if maxCards < 1 {
		maxCards = 1
	}
	start := 0
	if focused && b.selectedRow[ci] >= maxCards {
		start = b.selectedRow[ci] - maxCards + 1
	}

	parts := []string{header}
	col := b.columns[ci]
	for row := start; row < len(col) && row < start+maxCards; row++ {
		parts = append(parts, b.renderCard(col[row], colWidth, focused && row == b.selectedRow[ci]))
	}
	if hidden := len(col) - start - maxCards; hidden > 0 {
		more := t.Renderer.NewStyle().Foreground(t.Muted).Padding(0, 1).Render(fmt.Sprintf("… %d more", hidden))
		parts = append(parts, more)
	}

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *BoardModel) renderCard(it model.Item, colWidth int, selected bool) string {
	t := b.theme

	borderColor := t.Border
	if selected {
		borderColor = t.Primary
	}
	cardStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(colWidth - 2).
		Padding(0, 1).
		MarginBottom(1)
	if selected {
		cardStyle = cardStyle.Background(t.Highlight)
	}

	name := runewidth.Truncate(it.Name, colWidth-6, "…")
	meta := fmt.Sprintf("#%d · %d", it.ID, it.Value)
	if it.Date != "" {
		meta += " · " + it.Date
	}
	if it.Selected {
		meta += " ✓"
	}
	meta = runewidth.Truncate(meta, colWidth-6, "…")

	var body strings.Builder
	body.WriteString(name)
	body.WriteString("\n")
	body.WriteString(t.Renderer.NewStyle().Foreground(t.Muted).Render(meta))

	return cardStyle.Render(body.String())
}
