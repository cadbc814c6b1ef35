package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpContext identifies which screen the help overlay describes.
type HelpContext int

const (
	HelpContextList HelpContext = iota
	HelpContextBoard
	HelpContextDetail
)

// helpContent contains compact help content for each context.
// Content should fit on one screen (~20 lines) without scrolling.
var helpContent = map[HelpContext]string{
	HelpContextList:   helpList,
	HelpContextBoard:  helpBoard,
	HelpContextDetail: helpDetail,
}

// GetHelp returns the help content for a given context.
// Falls back to generic help if the context has no specific content.
func GetHelp(ctx HelpContext) string {
	if content, ok := helpContent[ctx]; ok {
		return content
	}
	return helpGeneric
}

// RenderHelp renders the context-specific help modal.
func RenderHelp(ctx HelpContext, theme Theme, width, height int) string {
	content := GetHelp(ctx)

	r := theme.Renderer

	// Modal dimensions - compact
	modalWidth := 60
	if modalWidth > width-4 {
		modalWidth = width - 4
	}
	if modalWidth < 30 {
		modalWidth = 30
	}

	titleStyle := r.NewStyle().
		Bold(true).
		Foreground(theme.Primary)

	contentStyle := r.NewStyle().
		Foreground(theme.Subtext)

	footerStyle := r.NewStyle().
		Foreground(theme.Muted).
		Italic(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Quick Reference"))
	b.WriteString("\n")
	b.WriteString(r.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", modalWidth-4)))
	b.WriteString("\n\n")
	b.WriteString(contentStyle.Render(content))
	b.WriteString("\n\n")
	b.WriteString(footerStyle.Render("Press ? or Esc to close"))

	modalStyle := r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Padding(1, 2).
		Width(modalWidth)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modalStyle.Render(b.String()))
}

const helpList = `## List View

**Navigation**
  j/k       Move up/down
  g/G       Jump to top/bottom
  PgUp/PgDn Page up/down
  Enter     View item details

**Filtering & Sorting**
  /         Filter by text
  p         Preset palette
  s         Sort picker

**Editing**
  Space/x   Toggle selected
  c         Cycle category
  r         Rename item
  a         Add item
  d         Delete item
  J/K       Move item down/up
  y         Copy item to clipboard

**Views**
  b         Board view
  v         Toggle windowed rendering
  i         Performance overlay`

const helpBoard = `## Board View

**Navigation**
  h/l       Switch column
  j/k       Move within column
  gg/G      Jump to top/bottom
  Enter     View item details

**Editing**
  Space/x   Toggle selected
  c         Cycle category

Press b or Esc to return to the list`

const helpDetail = `## Item Detail

**Scrolling**
  j/k       Line up/down
  d/u       Half page down/up
  g/G       Jump to top/bottom

**Actions**
  y         Copy item to clipboard

Press Esc to return`

const helpGeneric = `## Quick Reference

**Global Keys**
  ?         Help overlay
  Esc       Close/back
  q         Quit

**Navigation**
  j/k       Move up/down
  Enter     Select/open`
