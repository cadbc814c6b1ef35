package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/listview/pkg/model"
)

// SortPickerModel provides a quick sort selection modal
type SortPickerModel struct {
	fields        []model.SortField
	currentField  model.SortField     // sort active in the list
	currentDir    model.SortDirection // direction active in the list
	selectedIndex int                 // which field is highlighted
	width         int
	height        int
	theme         Theme
}

// NewSortPickerModel creates a picker seeded with the active sort
func NewSortPickerModel(field model.SortField, dir model.SortDirection, theme Theme) SortPickerModel {
	fields := model.SortFields()

	// Find index of the active field
	selectedIdx := 0
	for i, f := range fields {
		if f == field {
			selectedIdx = i
			break
		}
	}

	return SortPickerModel{
		fields:        fields,
		currentField:  field,
		currentDir:    dir,
		selectedIndex: selectedIdx,
		theme:         theme,
	}
}

// SetSize updates the picker dimensions
func (m *SortPickerModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// MoveUp moves selection up
func (m *SortPickerModel) MoveUp() {
	if m.selectedIndex > 0 {
		m.selectedIndex--
	}
}

// MoveDown moves selection down
func (m *SortPickerModel) MoveDown() {
	if m.selectedIndex < len(m.fields)-1 {
		m.selectedIndex++
	}
}

// Selected returns the sort the picker would apply. Picking the field
// that is already active flips its direction; any other field starts
// at its default direction.
func (m *SortPickerModel) Selected() (model.SortField, model.SortDirection) {
	if m.selectedIndex < 0 || m.selectedIndex >= len(m.fields) {
		return m.currentField, m.currentDir
	}
	f := m.fields[m.selectedIndex]
	if f == m.currentField {
		return f, m.currentDir.Toggle()
	}
	return f, f.DefaultDirection()
}

// View renders the sort picker overlay
func (m *SortPickerModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}

	t := m.theme

	// Calculate box dimensions
	boxWidth := 35
	if m.width < 45 {
		boxWidth = m.width - 10
	}
	if boxWidth < 25 {
		boxWidth = 25
	}

	var lines []string

	// Title
	titleStyle := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		MarginBottom(1)
	lines = append(lines, titleStyle.Render("Sort By"))
	lines = append(lines, "")

	// Field list
	for i, field := range m.fields {
		isSelected := i == m.selectedIndex
		isCurrent := field == m.currentField

		itemStyle := t.Renderer.NewStyle()
		if isSelected {
			itemStyle = itemStyle.Foreground(t.Primary).Bold(true)
		} else {
			itemStyle = itemStyle.Foreground(t.Base.GetForeground())
		}

		prefix := "  "
		if isSelected {
			prefix = "> "
		}

		// The active field shows its direction
		suffix := ""
		if isCurrent {
			arrowStyle := t.Renderer.NewStyle().Foreground(t.Secondary)
			suffix = " " + arrowStyle.Render(directionArrow(m.currentDir))
		}

		displayName := formatFieldName(string(field))
		lines = append(lines, itemStyle.Render(prefix+displayName)+suffix)
	}

	// Footer with keybindings
	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true)
	lines = append(lines, footerStyle.Render("j/k: navigate | enter: apply | esc: cancel"))

	content := strings.Join(lines, "\n")

	// Box style
	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)

	box := boxStyle.Render(content)

	// Center in viewport
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
	)
}

// directionArrow returns the glyph for a sort direction
func directionArrow(d model.SortDirection) string {
	if d == model.SortDesc {
		return "↓"
	}
	return "↑"
}

// formatFieldName converts a field name to a display name
// Example: "value" -> "Value"
func formatFieldName(field string) string {
	parts := strings.Split(field, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(part[:1]) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}
