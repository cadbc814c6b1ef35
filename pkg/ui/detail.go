package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/listview/pkg/analysis"
	"github.com/vanderheijden86/listview/pkg/model"
)

// DetailModel is the fullscreen single-item view. Content is rendered
// as markdown through glamour and scrolled with a viewport.
type DetailModel struct {
	vp       viewport.Model
	renderer *glamour.TermRenderer
	theme    Theme
	width    int
	height   int
	lastID   int // item currently rendered, -1 when none
}

// NewDetailModel returns an empty detail view.
func NewDetailModel(theme Theme) DetailModel {
	return DetailModel{theme: theme, lastID: -1}
}

// SetSize resizes the viewport and rebuilds the markdown renderer for
// the new wrap width. The cached item id is dropped so the next
// ShowItem re-renders.
func (d *DetailModel) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.vp = viewport.New(width, height-1)
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-2),
	)
	if err == nil {
		d.renderer = r
	}
	d.lastID = -1
}

// SetTheme swaps the theme.
func (d *DetailModel) SetTheme(t Theme) {
	d.theme = t
}

// ShowItem renders the item into the viewport. Re-showing the item
// that is already on screen keeps the scroll position.
func (d *DetailModel) ShowItem(it model.Item, index, total int, now time.Time) {
	if it.ID == d.lastID {
		return
	}
	md := buildDetailMarkdown(it, index, total, now)

	content := md
	if d.renderer != nil {
		if out, err := d.renderer.Render(md); err == nil {
			content = out
		}
	}
	d.vp.SetContent(content)
	d.vp.GotoTop()
	d.lastID = it.ID
}

// HandleKey processes a scroll key, reporting whether it was consumed.
func (d *DetailModel) HandleKey(key string) bool {
	switch key {
	case "j", "down":
		d.vp.LineDown(1)
	case "k", "up":
		d.vp.LineUp(1)
	case "d", "pgdown":
		d.vp.HalfViewDown()
	case "u", "pgup":
		d.vp.HalfViewUp()
	case "g":
		d.vp.GotoTop()
	case "G":
		d.vp.GotoBottom()
	default:
		return false
	}
	return true
}

// View renders the detail view with a scroll footer.
func (d *DetailModel) View() string {
	footer := d.theme.Renderer.NewStyle().
		Foreground(d.theme.Muted).
		Italic(true).
		Render(fmt.Sprintf("%3.0f%% · j/k: scroll | esc: back", d.vp.ScrollPercent()*100))
	return lipgloss.JoinVertical(lipgloss.Left, d.vp.View(), footer)
}

func buildDetailMarkdown(it model.Item, index, total int, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", it.Name)

	selected := "no"
	if it.Selected {
		selected = "yes"
	}
	date := it.Date
	if date == "" {
		date = "-"
	}

	b.WriteString("| Field | Value |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| ID | #%d |\n", it.ID)
	fmt.Fprintf(&b, "| Category | %s |\n", it.Category)
	fmt.Fprintf(&b, "| Value | %d |\n", it.Value)
	fmt.Fprintf(&b, "| Date | %s |\n", date)
	fmt.Fprintf(&b, "| Selected | %s |\n", selected)
	b.WriteString("\n")

	if ts, ok := it.ParsedDate(); ok {
		age := now.Sub(ts)
		days := int(age.Hours() / 24)
		if age > analysis.StaleAfter {
			fmt.Fprintf(&b, "> Stale: last touched %d days ago.\n\n", days)
		} else if days >= 0 {
			fmt.Fprintf(&b, "Last touched %d days ago.\n\n", days)
		}
	}

	fmt.Fprintf(&b, "_Item %d of %d_\n", index+1, total)
	return b.String()
}
