package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/listview/pkg/vlist"
)

// renderListRows draws the rows the viewport currently shows, padded to
// the full height so the footer keeps its place.
func renderListRows(c *vlist.Controller, theme Theme, cursor, width, height int) string {
	ih := c.ItemHeight()
	if ih < 1 {
		ih = 1
	}
	stats := c.Stats()
	total := stats.FilteredItems
	if total == 0 {
		msg := theme.Renderer.NewStyle().Foreground(theme.Muted).Render("No items to display")
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
	}

	rows := height / ih
	if rows < 1 {
		rows = 1
	}
	first := c.ScrollOffset() / ih

	var lines []string
	for r := first; r < first+rows && r < total; r++ {
		lines = append(lines, renderRow(c, theme, r, r == cursor, width, ih))
	}
	out := strings.Join(lines, "\n")
	for drawn := len(lines) * ih; drawn < height; drawn++ {
		out += "\n"
	}
	return out
}

// renderRow prefers the node the controller already bound for the row.
// Rows outside the rendered window (a flush may still be pending) are
// drawn directly so scrolling never shows holes.
func renderRow(c *vlist.Controller, theme Theme, index int, cursor bool, width, ih int) string {
	if node, ok := c.NodeFor(index); ok {
		if tn, ok := node.(*termNode); ok {
			return tn.View(cursor)
		}
	}
	it, ok := c.ItemAt(index)
	if !ok {
		return strings.Repeat(" ", width)
	}
	tmp := termNode{surface: NewTermSurface(theme, width, ih)}
	tmp.Update(vlist.FieldsFor(it, index))
	return tmp.View(cursor)
}

// renderPerfOverlay shows controller and pool internals in a centered
// box. Toggled from the list with 'i'.
func renderPerfOverlay(c *vlist.Controller, theme Theme, width, height int) string {
	stats := c.Stats()
	bound, pooled, allocated := c.PoolStats()

	mode := "virtual"
	if !c.Virtual() {
		mode = "render-all"
	}

	rows := []string{
		fmt.Sprintf("Mode            %s", mode),
		fmt.Sprintf("Items           %d total, %d after filter", stats.TotalItems, stats.FilteredItems),
		fmt.Sprintf("Rendered        %d rows in [%d, %d)", stats.RenderedItems, stats.VisibleRange.Start, stats.VisibleRange.End),
		fmt.Sprintf("Nodes           %d bound, %d pooled, %d allocated", bound, pooled, allocated),
		fmt.Sprintf("Scroll          offset %d, viewport %d, row height %d", c.ScrollOffset(), c.ViewportHeight(), c.ItemHeight()),
		fmt.Sprintf("Last flush      %s", c.LastFlush()),
	}
	if fails := c.PopulateFailures(); fails > 0 {
		rows = append(rows, fmt.Sprintf("Populate fails  %d", fails))
	}

	boxWidth := 56
	if width > 0 && boxWidth > width-4 {
		boxWidth = width - 4
	}
	if boxWidth < 30 {
		boxWidth = 30
	}

	titleStyle := theme.Renderer.NewStyle().
		Foreground(theme.Primary).
		Bold(true)
	contentStyle := theme.Renderer.NewStyle().
		Foreground(theme.Subtext)
	footerStyle := theme.Renderer.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Performance"))
	b.WriteString("\n")
	b.WriteString(theme.Renderer.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", boxWidth-6)))
	b.WriteString("\n\n")
	b.WriteString(contentStyle.Render(strings.Join(rows, "\n")))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("i: close"))

	box := theme.Renderer.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(boxWidth).
		Render(b.String())

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
