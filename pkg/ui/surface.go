package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/listview/pkg/vlist"
)

// TermSurface creates terminal row nodes for the list controller. Each
// node caches its rendered strings; bumping the generation (width or
// theme change) makes every node rebuild lazily on next view.
type TermSurface struct {
	theme      Theme
	width      int
	itemHeight int
	gen        uint64

	created   int
	destroyed int
}

// NewTermSurface returns a surface rendering rows of the given height.
func NewTermSurface(theme Theme, width, itemHeight int) *TermSurface {
	if itemHeight < 1 {
		itemHeight = 1
	}
	return &TermSurface{theme: theme, width: width, itemHeight: itemHeight}
}

// Create makes a fresh unbound row node.
func (s *TermSurface) Create() (vlist.Node, error) {
	s.created++
	return &termNode{surface: s}, nil
}

// Destroy releases a node. Row nodes hold no external resources, so
// this only feeds the counters tests look at.
func (s *TermSurface) Destroy(vlist.Node) {
	s.destroyed++
}

// SetWidth changes the row width and invalidates all cached rows.
func (s *TermSurface) SetWidth(w int) {
	if w == s.width {
		return
	}
	s.width = w
	s.gen++
}

// SetTheme swaps the theme and invalidates all cached rows.
func (s *TermSurface) SetTheme(t Theme) {
	s.theme = t
	s.gen++
}

// Width returns the current row width.
func (s *TermSurface) Width() int { return s.width }

// CreatedCount returns how many nodes this surface has made.
func (s *TermSurface) CreatedCount() int { return s.created }

// DestroyedCount returns how many nodes have been destroyed.
func (s *TermSurface) DestroyedCount() int { return s.destroyed }

// termNode is one reusable row slot. It keeps both a plain and a styled
// rendering so the cursor row can restyle without ANSI surgery.
type termNode struct {
	surface *TermSurface
	fields  vlist.Fields
	bound   bool
	gen     uint64
	plain   string
	styled  string
}

// Update redraws the row from the given fields.
func (n *termNode) Update(f vlist.Fields) error {
	n.fields = f
	n.bound = true
	n.render()
	return nil
}

// Reset strips the binding so the slot can be pooled.
func (n *termNode) Reset() {
	n.bound = false
	n.plain = ""
	n.styled = ""
}

// View returns the row, restyled for the cursor when asked. Stale rows
// rebuild against the surface's current width and theme first.
func (n *termNode) View(cursor bool) string {
	if !n.bound {
		return ""
	}
	if n.gen != n.surface.gen {
		n.render()
	}
	if cursor {
		return n.surface.theme.Selected.Render(n.plain)
	}
	return n.styled
}

func (n *termNode) render() {
	s := n.surface
	f := n.fields
	t := s.theme

	w := s.width
	if w <= 0 {
		w = 80
	}

	icon := t.CategoryIcon(f.Category)
	sel := " "
	if f.Selected {
		sel = "✓"
	}

	// Narrow widths shed the date column first, then the value.
	showValue := w >= 30
	showDate := w >= 46

	nameW := w - 4 // icon, gap, gap, marker
	if showValue {
		nameW -= 7
	}
	if showDate {
		nameW -= 11
	}
	if nameW < 5 {
		nameW = 5
	}
	name := runewidth.FillRight(runewidth.Truncate(f.Name, nameW, "…"), nameW)

	var plain, styled strings.Builder
	plain.WriteString(icon)
	plain.WriteString(" ")
	plain.WriteString(name)
	styled.WriteString(t.Renderer.NewStyle().Foreground(t.CategoryColor(f.Category)).Render(icon))
	styled.WriteString(" ")
	styled.WriteString(t.Base.Render(name))

	if showValue {
		value := fmt.Sprintf("%6d", f.Value)
		plain.WriteString(" ")
		plain.WriteString(value)
		styled.WriteString(" ")
		styled.WriteString(t.Renderer.NewStyle().Foreground(t.Subtext).Render(value))
	}
	if showDate {
		date := fmt.Sprintf("%-10s", f.Date)
		plain.WriteString(" ")
		plain.WriteString(date)
		styled.WriteString(" ")
		styled.WriteString(t.Renderer.NewStyle().Foreground(t.Muted).Render(date))
	}
	plain.WriteString(" ")
	plain.WriteString(sel)
	styled.WriteString(" ")
	if f.Selected {
		styled.WriteString(t.Renderer.NewStyle().Foreground(t.Secondary).Render(sel))
	} else {
		styled.WriteString(sel)
	}

	plainLines := []string{plain.String()}
	styledLines := []string{styled.String()}

	// Taller rows carry an id/category meta line; any remaining lines
	// stay blank so every row occupies exactly itemHeight cells.
	if s.itemHeight > 1 {
		meta := runewidth.FillRight(fmt.Sprintf("  #%d · %s", f.ID, f.Category), w)
		plainLines = append(plainLines, meta)
		styledLines = append(styledLines, t.Renderer.NewStyle().Foreground(t.Muted).Render(meta))
		for len(plainLines) < s.itemHeight {
			blank := strings.Repeat(" ", w)
			plainLines = append(plainLines, blank)
			styledLines = append(styledLines, blank)
		}
	}

	n.plain = strings.Join(plainLines, "\n")
	n.styled = strings.Join(styledLines, "\n")
	n.gen = s.gen
}
