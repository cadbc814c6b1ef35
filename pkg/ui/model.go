package ui

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/listview/pkg/model"
	"github.com/vanderheijden86/listview/pkg/preset"
	"github.com/vanderheijden86/listview/pkg/storage"
	"github.com/vanderheijden86/listview/pkg/vlist"
	"github.com/vanderheijden86/listview/pkg/watch"
)

type focus int

const (
	focusList focus = iota
	focusBoard
	focusDetail
)

type overlay int

const (
	overlayNone overlay = iota
	overlayFilter
	overlaySort
	overlayPalette
	overlayForm
	overlayRename
	overlayHelp
	overlayPerf
)

// frameInterval paces coalesced renders at roughly one terminal frame.
const frameInterval = 16 * time.Millisecond

// statusTimeout is how long footer notices stay up.
const statusTimeout = 4 * time.Second

// flushTickMsg fires when a scheduled render tick elapses.
type flushTickMsg struct{}

// clearStatusMsg retires a footer notice. The sequence number keeps an
// old timer from wiping a newer notice.
type clearStatusMsg struct {
	seq int
}

// Options configures the TUI host.
type Options struct {
	Store           storage.Store   // nil = read-only session
	Presets         []preset.Preset // palette entries
	Preset          string          // preset applied at startup
	Theme           string          // dark, light, or plain
	Virtual         bool            // windowed rendering on startup
	VirtualExplicit bool            // true when a flag forced Virtual
	ItemHeight      int             // rows per item, min 1
	StateDir        string          // view-state directory, "" disables persistence
	Now             func() time.Time
}

// Model is the top-level bubbletea model. It owns the list controller
// and fans the keyboard out to the focused view or active overlay.
type Model struct {
	ctrl    *vlist.Controller
	surface *TermSurface
	writer  *ItemWriter
	theme   Theme

	// Full collection. The controller holds the preset-scoped subset,
	// so edits are mirrored here and saves always write everything.
	allItems     []model.Item
	presets      []preset.Preset
	activePreset string
	now          func() time.Time

	// Views
	board  BoardModel
	detail DetailModel

	// Overlays
	sortPicker  SortPickerModel
	palette     PaletteModel
	form        FormModel
	filterInput textinput.Model
	renameInput textinput.Model
	renameID    int
	savedFilter string // restored when the filter overlay is cancelled

	// Render scheduling. The controller sets the flag when a render
	// becomes pending; Update converts it into one flush tick.
	frameRequested *atomic.Bool

	// State
	focused      focus
	active       overlay
	cursor       int // row index into the filtered view
	detailIndex  int
	detailReturn focus
	ready        bool
	width        int
	height       int
	stateDir     string

	statusMsg  string
	statusSeq  int
	statusTime time.Time
}

// NewModel builds the TUI host over the given collection.
func NewModel(items []model.Item, opts Options) (Model, error) {
	theme := NewTheme(opts.Theme, nil)

	itemHeight := opts.ItemHeight
	if itemHeight < 1 {
		itemHeight = 1
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	frameRequested := &atomic.Bool{}
	surface := NewTermSurface(theme, 80, itemHeight)

	ctrl, err := vlist.New(vlist.Config{
		Surface:        surface,
		ItemHeight:     itemHeight,
		ViewportHeight: 24 * itemHeight,
		Virtual:        opts.Virtual,
		Schedule: func() {
			frameRequested.Store(true)
		},
	})
	if err != nil {
		return Model{}, err
	}

	filterInput := textinput.New()
	filterInput.Placeholder = "Filter by name, category, or id..."
	filterInput.CharLimit = 100
	filterInput.Width = 40

	renameInput := textinput.New()
	renameInput.Placeholder = "New name..."
	renameInput.CharLimit = 100
	renameInput.Width = 40

	m := Model{
		ctrl:           ctrl,
		surface:        surface,
		writer:         NewItemWriter(opts.Store),
		theme:          theme,
		allItems:       model.CopyItems(items),
		presets:        opts.Presets,
		now:            now,
		board:          NewBoardModel(theme),
		detail:         NewDetailModel(theme),
		filterInput:    filterInput,
		renameInput:    renameInput,
		frameRequested: frameRequested,
		stateDir:       opts.StateDir,
	}

	if err := ctrl.SetItems(m.allItems); err != nil {
		return Model{}, err
	}

	if p, ok := preset.Find(m.presets, opts.Preset); ok && opts.Preset != "" {
		m.applyPreset(p)
	} else if m.stateDir != "" {
		if state, ok := LoadViewState(m.stateDir); ok {
			m.restoreViewState(state, opts.VirtualExplicit)
		}
	}

	// Bind the initial window now so the first View has nodes, and
	// clear the schedule flag the setup mutations raised.
	if err := ctrl.Flush(); err != nil {
		return Model{}, err
	}
	frameRequested.Store(false)

	m.board.SetItems(ctrl.View())
	return m, nil
}

// Stop tears the controller down. Call after the program exits.
func (m Model) Stop() {
	m.ctrl.Teardown()
}

// Controller exposes the list controller for tests.
func (m Model) Controller() *vlist.Controller { return m.ctrl }

// Cursor returns the current list cursor row.
func (m Model) Cursor() int { return m.cursor }

// ActivePreset returns the name of the applied preset, if any.
func (m Model) ActivePreset() string { return m.activePreset }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true

	case flushTickMsg:
		if err := m.ctrl.Flush(); err != nil {
			cmds = append(cmds, m.setStatus("Render failed: "+err.Error()))
		}
		if m.focused == focusBoard {
			m.board.SetItems(m.ctrl.View())
		}

	case watch.ItemsReloadedMsg:
		m.allItems = msg.Items
		m.applyWorkingSet()
		cmds = append(cmds, m.setStatus(fmt.Sprintf("Reloaded %d items from disk", len(msg.Items))))

	case watch.ReloadErrorMsg:
		cmds = append(cmds, m.setStatus("Reload failed: "+msg.Err.Error()))

	case ItemsSavedMsg:
		cmds = append(cmds, m.setStatus(fmt.Sprintf("Saved %d items to %s", msg.Count, msg.Path)))

	case SaveErrorMsg:
		cmds = append(cmds, m.setStatus("Save failed: "+msg.Err.Error()))

	case YankResultMsg:
		if msg.Err != nil {
			cmds = append(cmds, m.setStatus("Copy failed: "+msg.Err.Error()))
		} else {
			cmds = append(cmds, m.setStatus(fmt.Sprintf("Copied #%d to clipboard", msg.ID)))
		}

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && m.focused == focusList && m.active == overlayNone {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.scrollBy(-3)
			case tea.MouseButtonWheelDown:
				m.scrollBy(3)
			}
		}

	case tea.KeyMsg:
		next, cmd := m.handleKey(msg)
		return next.scheduleFlush(append(cmds, cmd))

	default:
		// Component-internal messages (input blink, form timers) go to
		// the active overlay.
		switch m.active {
		case overlayFilter:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			cmds = append(cmds, cmd)
		case overlayRename:
			var cmd tea.Cmd
			m.renameInput, cmd = m.renameInput.Update(msg)
			cmds = append(cmds, cmd)
		case overlayPalette:
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			cmds = append(cmds, cmd)
		case overlayForm:
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m.scheduleFlush(cmds)
}

// scheduleFlush turns a pending render request into a single tick.
// Mutations between here and the tick coalesce into one flush.
func (m Model) scheduleFlush(cmds []tea.Cmd) (tea.Model, tea.Cmd) {
	if m.frameRequested.CompareAndSwap(true, false) {
		cmds = append(cmds, tea.Tick(frameInterval, func(time.Time) tea.Msg {
			return flushTickMsg{}
		}))
	}
	return m, tea.Batch(cmds...)
}

// ---- keyboard ----

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.active != overlayNone {
		return m.handleOverlayKey(msg)
	}
	switch m.focused {
	case focusDetail:
		return m.handleDetailKey(msg.String())
	case focusBoard:
		return m.handleBoardKey(msg.String())
	default:
		return m.handleListKey(msg.String())
	}
}

func (m Model) handleListKey(key string) (Model, tea.Cmd) {
	switch key {
	case "q":
		return m.quit()
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "g", "home":
		m.setCursor(0)
	case "G", "end":
		m.setCursor(m.ctrl.Stats().FilteredItems - 1)
	case "pgdown", "ctrl+d":
		m.moveCursor(m.visibleRows())
	case "pgup", "ctrl+u":
		m.moveCursor(-m.visibleRows())
	case "enter":
		m.openDetail(m.cursor, focusList)
	case "b":
		m.board.SetItems(m.ctrl.View())
		m.focused = focusBoard
	case "/":
		m.savedFilter = m.ctrl.FilterTerm()
		m.filterInput.SetValue(m.savedFilter)
		m.filterInput.CursorEnd()
		m.filterInput.Focus()
		m.active = overlayFilter
		m.layout()
		return m, textinput.Blink
	case "p":
		m.palette = NewPaletteModel(m.presets, m.theme)
		m.palette.SetSize(m.width, m.contentHeight())
		m.active = overlayPalette
		return m, textinput.Blink
	case "s":
		field, dir := m.ctrl.Sort()
		m.sortPicker = NewSortPickerModel(field, dir, m.theme)
		m.sortPicker.SetSize(m.width, m.contentHeight())
		m.active = overlaySort
	case "v":
		virtual := !m.ctrl.Virtual()
		m.ctrl.SetMode(virtual)
		if virtual {
			return m, m.setStatus("Windowed rendering on")
		}
		return m, m.setStatus("Windowed rendering off")
	case " ", "x":
		return m.toggleSelectedAt(m.cursor)
	case "c":
		return m.cycleCategoryAt(m.cursor)
	case "r":
		if it, ok := m.ctrl.ItemAt(m.cursor); ok {
			m.renameID = it.ID
			m.renameInput.SetValue(it.Name)
			m.renameInput.CursorEnd()
			m.renameInput.Focus()
			m.active = overlayRename
			return m, textinput.Blink
		}
	case "a":
		m.form = NewFormModel(m.theme)
		m.form.SetSize(m.width, m.contentHeight())
		m.active = overlayForm
		return m, m.form.Init()
	case "d":
		return m.deleteAt(m.cursor)
	case "J":
		return m.moveItem(1)
	case "K":
		return m.moveItem(-1)
	case "y":
		if it, ok := m.ctrl.ItemAt(m.cursor); ok {
			return m, YankItem(it)
		}
	case "i":
		m.active = overlayPerf
	case "?":
		m.active = overlayHelp
	case "esc":
		if m.ctrl.FilterTerm() != "" {
			m.ctrl.SetFilter("")
			m.setCursor(m.cursor)
			return m, m.setStatus("Filter cleared")
		}
	}
	return m, nil
}

func (m Model) handleBoardKey(key string) (Model, tea.Cmd) {
	switch key {
	case "q":
		return m.quit()
	case "b", "esc":
		m.focused = focusList
	case "enter":
		if it, ok := m.board.Current(); ok {
			m.openDetailByID(it.ID, focusBoard)
		}
	case " ", "x":
		if it, ok := m.board.Current(); ok {
			return m.toggleSelectedID(it.ID)
		}
	case "c":
		if it, ok := m.board.Current(); ok {
			return m.cycleCategoryID(it.ID)
		}
	case "y":
		if it, ok := m.board.Current(); ok {
			return m, YankItem(it)
		}
	case "i":
		m.active = overlayPerf
	case "?":
		m.active = overlayHelp
	default:
		m.board.HandleKey(key)
	}
	return m, nil
}

func (m Model) handleDetailKey(key string) (Model, tea.Cmd) {
	switch key {
	case "q":
		return m.quit()
	case "esc", "enter":
		m.focused = m.detailReturn
	case "y":
		if it, ok := m.ctrl.ItemAt(m.detailIndex); ok {
			return m, YankItem(it)
		}
	case "?":
		m.active = overlayHelp
	default:
		m.detail.HandleKey(key)
	}
	return m, nil
}

func (m Model) handleOverlayKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()

	switch m.active {
	case overlayFilter:
		switch key {
		case "enter":
			m.active = overlayNone
			m.filterInput.Blur()
			m.layout()
			return m, nil
		case "esc":
			m.ctrl.SetFilter(m.savedFilter)
			m.setCursor(m.cursor)
			m.active = overlayNone
			m.filterInput.Blur()
			m.layout()
			return m, nil
		}
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.ctrl.SetFilter(m.filterInput.Value())
		m.setCursor(m.cursor)
		return m, cmd

	case overlaySort:
		switch key {
		case "j", "down":
			m.sortPicker.MoveDown()
		case "k", "up":
			m.sortPicker.MoveUp()
		case "enter":
			field, dir := m.sortPicker.Selected()
			m.ctrl.SetSort(field, dir)
			m.setCursor(m.cursor)
			m.active = overlayNone
			return m, m.setStatus(fmt.Sprintf("Sorted by %s %s", field, dir))
		case "esc", "q":
			m.active = overlayNone
		}
		return m, nil

	case overlayPalette:
		switch key {
		case "down", "ctrl+n", "tab":
			m.palette.MoveDown()
			return m, nil
		case "up", "ctrl+p", "shift+tab":
			m.palette.MoveUp()
			return m, nil
		case "enter":
			m.active = overlayNone
			if p, ok := m.palette.Selected(); ok {
				m.applyPreset(p)
				return m, m.setStatus(fmt.Sprintf("Applied preset %q", p.Name))
			}
			return m, nil
		case "esc":
			m.active = overlayNone
			return m, nil
		}
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd

	case overlayRename:
		switch key {
		case "enter":
			m.active = overlayNone
			m.renameInput.Blur()
			name := strings.TrimSpace(m.renameInput.Value())
			if name == "" {
				return m, nil
			}
			m.ctrl.Rename(m.renameID, name)
			id := m.renameID
			m.mutateAll(id, func(it *model.Item) { it.Name = name })
			return m, tea.Batch(
				m.writer.SaveItems(m.allItems),
				m.setStatus(fmt.Sprintf("Renamed #%d", id)),
			)
		case "esc":
			m.active = overlayNone
			m.renameInput.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.renameInput, cmd = m.renameInput.Update(msg)
		return m, cmd

	case overlayForm:
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		switch m.form.State() {
		case huh.StateCompleted:
			m.active = overlayNone
			id := NextFreeID(m.allItems)
			it, err := m.form.Item(id)
			if err != nil {
				return m, m.setStatus("Add failed: " + err.Error())
			}
			m.ctrl.AddItems([]model.Item{it})
			m.allItems = append(m.allItems, it)
			return m, tea.Batch(
				cmd,
				m.writer.SaveItems(m.allItems),
				m.setStatus(fmt.Sprintf("Added #%d %s", it.ID, it.Name)),
			)
		case huh.StateAborted:
			m.active = overlayNone
		}
		return m, cmd

	case overlayHelp:
		switch key {
		case "?", "esc", "q", "enter":
			m.active = overlayNone
		}
		return m, nil

	case overlayPerf:
		switch key {
		case "i", "esc", "q":
			m.active = overlayNone
		}
		return m, nil
	}
	return m, nil
}

// ---- edits ----

func (m Model) toggleSelectedAt(index int) (Model, tea.Cmd) {
	if it, ok := m.ctrl.ItemAt(index); ok {
		return m.toggleSelectedID(it.ID)
	}
	return m, nil
}

func (m Model) toggleSelectedID(id int) (Model, tea.Cmd) {
	if err := m.ctrl.ToggleSelected(id); err != nil {
		return m, m.setStatus(err.Error())
	}
	m.mutateAll(id, func(it *model.Item) { it.Selected = !it.Selected })
	return m, m.writer.SaveItems(m.allItems)
}

func (m Model) cycleCategoryAt(index int) (Model, tea.Cmd) {
	if it, ok := m.ctrl.ItemAt(index); ok {
		return m.cycleCategoryID(it.ID)
	}
	return m, nil
}

func (m Model) cycleCategoryID(id int) (Model, tea.Cmd) {
	var current model.Category
	for _, it := range m.allItems {
		if it.ID == id {
			current = it.Category
			break
		}
	}
	cats := model.Categories()
	next := cats[(current.Rank()+1)%len(cats)]
	if err := m.ctrl.SetCategory(id, next); err != nil {
		return m, m.setStatus(err.Error())
	}
	m.mutateAll(id, func(it *model.Item) { it.Category = next })
	return m, tea.Batch(
		m.writer.SaveItems(m.allItems),
		m.setStatus(fmt.Sprintf("#%d → %s", id, next)),
	)
}

func (m Model) deleteAt(index int) (Model, tea.Cmd) {
	it, ok := m.ctrl.ItemAt(index)
	if !ok {
		return m, nil
	}
	if err := m.ctrl.RemoveItem(it.ID); err != nil {
		return m, m.setStatus(err.Error())
	}
	for i := range m.allItems {
		if m.allItems[i].ID == it.ID {
			m.allItems = append(m.allItems[:i], m.allItems[i+1:]...)
			break
		}
	}
	m.setCursor(m.cursor)
	return m, tea.Batch(
		m.writer.SaveItems(m.allItems),
		m.setStatus(fmt.Sprintf("Deleted #%d %s", it.ID, it.Name)),
	)
}

// moveItem swaps the item under the cursor with its neighbor in source
// order. Reordering only makes sense when the view shows source order,
// so an active sort refuses the move.
func (m Model) moveItem(delta int) (Model, tea.Cmd) {
	if field, _ := m.ctrl.Sort(); field != model.SortNone {
		return m, m.setStatus("Clear sort (s) before reordering")
	}
	src, ok := m.ctrl.ItemAt(m.cursor)
	if !ok {
		return m, nil
	}
	dst, ok := m.ctrl.ItemAt(m.cursor + delta)
	if !ok {
		return m, nil
	}
	si, di := -1, -1
	for i := range m.allItems {
		switch m.allItems[i].ID {
		case src.ID:
			si = i
		case dst.ID:
			di = i
		}
	}
	if si < 0 || di < 0 {
		return m, nil
	}
	m.allItems[si], m.allItems[di] = m.allItems[di], m.allItems[si]
	m.applyWorkingSet()
	m.setCursor(m.cursor + delta)
	return m, tea.Batch(
		m.writer.SaveItems(m.allItems),
		m.setStatus(fmt.Sprintf("Moved #%d", src.ID)),
	)
}

func (m *Model) mutateAll(id int, fn func(*model.Item)) {
	for i := range m.allItems {
		if m.allItems[i].ID == id {
			fn(&m.allItems[i])
			return
		}
	}
}

// ---- presets ----

func (m *Model) applyPreset(p preset.Preset) {
	m.activePreset = p.Name
	m.applyWorkingSet()
	m.ctrl.SetFilter(p.Filters.Term)
	m.ctrl.SetSort(p.SortField())
	switch p.View.Mode {
	case preset.ViewModeWindowed:
		m.ctrl.SetMode(true)
	case preset.ViewModeAll:
		m.ctrl.SetMode(false)
	}
	m.ctrl.OnScroll(0)
	m.setCursor(0)
}

// applyWorkingSet re-derives the controller's source from the full
// collection: the active preset's filters minus the term, which runs
// through the live filter instead.
func (m *Model) applyWorkingSet() {
	scoped := m.allItems
	if p, ok := preset.Find(m.presets, m.activePreset); ok {
		f := p.Filters
		f.Term = ""
		scoped = preset.FilterItems(m.allItems, f, m.now())
		if p.View.MaxItems > 0 && len(scoped) > p.View.MaxItems {
			scoped = scoped[:p.View.MaxItems]
		}
	}
	m.ctrl.SetItems(scoped)
	m.setCursor(m.cursor)
}

func (m *Model) restoreViewState(state ViewState, virtualExplicit bool) {
	if state.Filter != "" {
		m.ctrl.SetFilter(state.Filter)
	}
	field := model.SortField(state.SortField)
	dir := model.SortDirection(state.SortDir)
	if field.IsValid() && field != model.SortNone {
		if !dir.IsValid() {
			dir = field.DefaultDirection()
		}
		m.ctrl.SetSort(field, dir)
	}
	if state.Virtual != nil && !virtualExplicit {
		m.ctrl.SetMode(*state.Virtual)
	}
	m.ctrl.OnScroll(state.Scroll)
	if state.CursorID >= 0 {
		for i, it := range m.ctrl.View() {
			if it.ID == state.CursorID {
				m.cursor = i
				break
			}
		}
	}
	m.setCursor(m.cursor)
}

// ---- cursor and scrolling ----

func (m *Model) moveCursor(delta int) {
	m.setCursor(m.cursor + delta)
}

func (m *Model) setCursor(idx int) {
	total := m.ctrl.Stats().FilteredItems
	if idx > total-1 {
		idx = total - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.cursor = idx
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	ih := m.ctrl.ItemHeight()
	rows := m.visibleRows()
	first := m.ctrl.ScrollOffset() / ih
	if m.cursor < first {
		m.ctrl.OnScroll(m.cursor * ih)
	} else if m.cursor >= first+rows {
		m.ctrl.OnScroll((m.cursor - rows + 1) * ih)
	}
}

func (m *Model) scrollBy(rows int) {
	ih := m.ctrl.ItemHeight()
	m.ctrl.OnScroll(m.ctrl.ScrollOffset() + rows*ih)
	first := m.ctrl.ScrollOffset() / ih
	visible := m.visibleRows()
	if m.cursor < first {
		m.cursor = first
	} else if m.cursor >= first+visible {
		m.cursor = first + visible - 1
	}
	m.setCursor(m.cursor)
}

func (m Model) visibleRows() int {
	ih := m.ctrl.ItemHeight()
	rows := m.ctrl.ViewportHeight() / ih
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ---- detail ----

func (m *Model) openDetail(index int, from focus) {
	it, ok := m.ctrl.ItemAt(index)
	if !ok {
		return
	}
	m.detailIndex = index
	m.detailReturn = from
	m.detail.ShowItem(it, index, m.ctrl.Stats().FilteredItems, m.now())
	m.focused = focusDetail
}

func (m *Model) openDetailByID(id int, from focus) {
	for i, it := range m.ctrl.View() {
		if it.ID == id {
			m.openDetail(i, from)
			return
		}
	}
}

// ---- layout and rendering ----

func (m *Model) layout() {
	ch := m.contentHeight()
	m.surface.SetWidth(m.width)
	m.ctrl.SetViewportSize(ch)
	m.board.SetSize(m.width, ch)
	m.detail.SetSize(m.width, m.height)
	m.sortPicker.SetSize(m.width, ch)
	m.palette.SetSize(m.width, ch)
	m.form.SetSize(m.width, ch)
	m.ensureVisible()
}

// contentHeight is the list area: everything minus header and footer,
// minus the filter bar while it is open.
func (m Model) contentHeight() int {
	h := m.height - 2
	if m.active == overlayFilter {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	if m.focused == focusDetail && m.active == overlayNone {
		return m.detail.View()
	}

	var content string
	switch m.active {
	case overlaySort:
		content = m.sortPicker.View()
	case overlayPalette:
		content = m.palette.View()
	case overlayForm:
		content = m.form.View()
	case overlayHelp:
		content = RenderHelp(m.helpContext(), m.theme, m.width, m.contentHeight())
	case overlayPerf:
		content = renderPerfOverlay(m.ctrl, m.theme, m.width, m.contentHeight())
	default:
		if m.focused == focusBoard {
			content = m.board.View()
		} else {
			content = renderListRows(m.ctrl, m.theme, m.cursor, m.width, m.contentHeight())
		}
	}

	parts := []string{m.renderHeader()}
	if m.active == overlayFilter {
		parts = append(parts, " "+m.filterInput.View())
	}
	parts = append(parts, content, m.renderFooter())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) helpContext() HelpContext {
	switch m.focused {
	case focusBoard:
		return HelpContextBoard
	case focusDetail:
		return HelpContextDetail
	}
	return HelpContextList
}

func (m Model) renderHeader() string {
	t := m.theme
	stats := m.ctrl.Stats()

	title := t.Renderer.NewStyle().Foreground(t.Primary).Bold(true).Padding(0, 1).Render("lv")

	selected := 0
	for _, it := range m.allItems {
		if it.Selected {
			selected++
		}
	}
	segs := []string{fmt.Sprintf("%d items, %d selected", stats.TotalItems, selected)}
	if m.activePreset != "" {
		segs = append(segs, "preset: "+m.activePreset)
	}
	if field, dir := m.ctrl.Sort(); field != model.SortNone {
		segs = append(segs, fmt.Sprintf("sort: %s %s", field, directionArrow(dir)))
	}
	if m.ctrl.Virtual() {
		segs = append(segs, "windowed")
	}
	info := t.Renderer.NewStyle().Foreground(t.Muted).Render(strings.Join(segs, " · "))

	line := title + " " + info
	if w := lipgloss.Width(line); w < m.width {
		line += strings.Repeat(" ", m.width-w)
	}
	return line
}

func (m Model) renderFooter() string {
	t := m.theme

	var left string
	if m.statusMsg != "" {
		left = t.Renderer.NewStyle().Foreground(t.Secondary).Padding(0, 1).Render(m.statusMsg)
	} else {
		left = t.Renderer.NewStyle().Foreground(t.Muted).Padding(0, 1).Render(m.keyHint())
	}

	stats := m.ctrl.Stats()
	pos := fmt.Sprintf("%d/%d", m.cursor+1, stats.FilteredItems)
	if stats.FilteredItems == 0 {
		pos = "0/0"
	}
	if term := m.ctrl.FilterTerm(); term != "" {
		pos = fmt.Sprintf("/%s · %s", term, pos)
	}
	right := t.Renderer.NewStyle().Foreground(t.Subtext).Padding(0, 1).Render(pos)

	filler := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if filler < 0 {
		filler = 0
	}
	return lipgloss.JoinHorizontal(lipgloss.Bottom, left, strings.Repeat(" ", filler), right)
}

func (m Model) keyHint() string {
	switch m.focused {
	case focusBoard:
		return "h/l: columns | j/k: move | enter: detail | b: back | ?: help"
	default:
		return "j/k: move | enter: detail | /: filter | p: presets | s: sort | ?: help"
	}
}

// ---- shutdown ----

func (m Model) quit() (Model, tea.Cmd) {
	m.saveViewState()
	return m, tea.Quit
}

func (m Model) saveViewState() {
	if m.stateDir == "" {
		return
	}
	field, dir := m.ctrl.Sort()
	virtual := m.ctrl.Virtual()
	state := ViewState{
		Filter:    m.ctrl.FilterTerm(),
		SortField: string(field),
		SortDir:   string(dir),
		Virtual:   &virtual,
		CursorID:  -1,
		Scroll:    m.ctrl.ScrollOffset(),
	}
	if it, ok := m.ctrl.ItemAt(m.cursor); ok {
		state.CursorID = it.ID
	}
	SaveViewState(m.stateDir, state)
}

func (m *Model) setStatus(s string) tea.Cmd {
	m.statusMsg = s
	m.statusTime = time.Now()
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
