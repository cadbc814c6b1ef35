package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/vanderheijden86/listview/pkg/preset"
)

// presetSource adapts a preset slice to fuzzy.Source.
type presetSource []preset.Preset

func (s presetSource) String(i int) string { return s[i].Name }
func (s presetSource) Len() int            { return len(s) }

// PaletteModel is the preset palette overlay: a text input with fuzzy
// matching over preset names.
type PaletteModel struct {
	input   textinput.Model
	presets []preset.Preset
	matches fuzzy.Matches // filtered view, cursor indexes into this
	cursor  int
	width   int
	height  int
	theme   Theme
}

// NewPaletteModel creates a palette over the given presets.
func NewPaletteModel(presets []preset.Preset, theme Theme) PaletteModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter presets..."
	ti.CharLimit = 64
	ti.Width = 40
	ti.Focus()

	m := PaletteModel{input: ti, presets: presets, theme: theme}
	m.filter()
	return m
}

// SetSize updates the palette dimensions
func (m *PaletteModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Update feeds a message to the text input and refilters the matches.
func (m PaletteModel) Update(msg tea.Msg) (PaletteModel, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.filter()
	return m, cmd
}

func (m *PaletteModel) filter() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		// Empty query lists everything in declaration order.
		m.matches = m.matches[:0]
		for i := range m.presets {
			m.matches = append(m.matches, fuzzy.Match{Str: m.presets[i].Name, Index: i})
		}
	} else {
		m.matches = fuzzy.FindFrom(query, presetSource(m.presets))
	}
	if m.cursor >= len(m.matches) {
		m.cursor = len(m.matches) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// MoveUp moves the cursor up
func (m *PaletteModel) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
	}
}

// MoveDown moves the cursor down
func (m *PaletteModel) MoveDown() {
	if m.cursor < len(m.matches)-1 {
		m.cursor++
	}
}

// Selected returns the preset under the cursor.
func (m *PaletteModel) Selected() (preset.Preset, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return preset.Preset{}, false
	}
	return m.presets[m.matches[m.cursor].Index], true
}

// View renders the palette overlay
func (m *PaletteModel) View() string {
	if m.width == 0 {
		m.width = 60
	}
	if m.height == 0 {
		m.height = 20
	}

	t := m.theme

	boxWidth := 48
	if m.width < 58 {
		boxWidth = m.width - 10
	}
	if boxWidth < 30 {
		boxWidth = 30
	}

	var lines []string

	titleStyle := t.Renderer.NewStyle().
		Foreground(t.Primary).
		Bold(true).
		MarginBottom(1)
	lines = append(lines, titleStyle.Render("Presets"))
	lines = append(lines, m.input.View())
	lines = append(lines, t.Renderer.NewStyle().Foreground(t.Border).Render(strings.Repeat("─", boxWidth-6)))

	if len(m.matches) == 0 {
		lines = append(lines, t.Renderer.NewStyle().Foreground(t.Muted).Render("  no matching presets"))
	}

	baseStyle := t.Renderer.NewStyle().Foreground(t.Base.GetForeground())
	hiStyle := t.Renderer.NewStyle().Foreground(t.Secondary).Underline(true)
	descStyle := t.Renderer.NewStyle().Foreground(t.Muted)

	for i, match := range m.matches {
		p := m.presets[match.Index]

		prefix := "  "
		nameStyle := baseStyle
		if i == m.cursor {
			prefix = "> "
			nameStyle = t.Renderer.NewStyle().Foreground(t.Primary).Bold(true)
		}

		row := prefix + highlightMatch(p.Name, match.MatchedIndexes, nameStyle, hiStyle)
		if p.Description != "" {
			row += descStyle.Render(fmt.Sprintf("  %s", p.Description))
		}
		lines = append(lines, row)
	}

	lines = append(lines, "")
	footerStyle := t.Renderer.NewStyle().
		Foreground(t.Secondary).
		Italic(true)
	lines = append(lines, footerStyle.Render("enter: apply | esc: cancel"))

	content := strings.Join(lines, "\n")

	boxStyle := t.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Primary).
		Padding(1, 2).
		Width(boxWidth)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		boxStyle.Render(content),
	)
}

// highlightMatch styles the fuzzy-matched runes of name.
func highlightMatch(name string, matched []int, base, hi lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(name)
	}
	set := make(map[int]struct{}, len(matched))
	for _, idx := range matched {
		set[idx] = struct{}{}
	}
	var b strings.Builder
	for i, r := range name {
		if _, ok := set[i]; ok {
			b.WriteString(hi.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
