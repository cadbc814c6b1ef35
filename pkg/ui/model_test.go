package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vanderheijden86/listview/pkg/model"
	"github.com/vanderheijden86/listview/pkg/preset"
	"github.com/vanderheijden86/listview/pkg/watch"
)

func uiItems() []model.Item {
	return []model.Item{
		{ID: 0, Name: "Review invoices", Category: model.CategoryUrgent, Value: 900, Date: "2026-08-20", Selected: true},
		{ID: 1, Name: "Archive logs", Category: model.CategoryNormal, Value: 120, Date: "2026-01-01"},
		{ID: 2, Name: "Prune cache", Category: model.CategoryLow, Value: 45},
		{ID: 3, Name: "Rotate backups", Category: model.CategoryUrgent, Value: 700, Date: "2026-08-01"},
		{ID: 4, Name: "Update deps", Category: model.CategoryNormal, Value: 310, Date: "2026-07-15"},
		{ID: 5, Name: "Write report", Category: model.CategoryLow, Value: 80, Date: "2026-08-21"},
	}
}

func manyItems(n int) []model.Item {
	cats := model.Categories()
	items := make([]model.Item, n)
	for i := range items {
		items[i] = model.Item{ID: i, Name: fmt.Sprintf("item %03d", i), Category: cats[i%3], Value: i * 10}
	}
	return items
}

func testNowFn() time.Time {
	return time.Date(2026, 8, 22, 12, 0, 0, 0, time.UTC)
}

func newTestModel(t *testing.T, items []model.Item, opts Options) Model {
	t.Helper()
	if opts.Theme == "" {
		opts.Theme = "plain"
	}
	if opts.Now == nil {
		opts.Now = testNowFn
	}
	m, err := NewModel(items, opts)
	if err != nil {
		t.Fatalf("NewModel: %v", err)
	}
	t.Cleanup(m.Stop)
	return resize(m, 80, 12)
}

func resize(m Model, w, h int) Model {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(Model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m
}

func press1(m Model, k string) (Model, tea.Cmd) {
	next, cmd := m.Update(keyMsg(k))
	return next.(Model), cmd
}

func flushModel(m Model) Model {
	next, _ := m.Update(flushTickMsg{})
	return next.(Model)
}

func TestModelInitializingView(t *testing.T) {
	m, err := NewModel(uiItems(), Options{Theme: "plain", Now: testNowFn})
	if err != nil {
		t.Fatal(err)
	}
	defer m.Stop()

	if !strings.Contains(m.View(), "Initializing") {
		t.Error("View before the first resize should show the init placeholder")
	}
}

func TestModelViewRendersRows(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	out := m.View()
	for _, want := range []string{"Review invoices", "Archive logs", "6 items", "1/6"} {
		if !strings.Contains(out, want) {
			t.Errorf("View should contain %q", want)
		}
	}
}

func TestModelCursorNavigation(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m = press(m, "j", "j")
	if m.Cursor() != 2 {
		t.Errorf("After jj expected cursor 2, got %d", m.Cursor())
	}

	m = press(m, "k")
	if m.Cursor() != 1 {
		t.Errorf("After k expected cursor 1, got %d", m.Cursor())
	}

	m = press(m, "G")
	if m.Cursor() != 5 {
		t.Errorf("G should jump to the last row, got %d", m.Cursor())
	}

	m = press(m, "g")
	if m.Cursor() != 0 {
		t.Errorf("g should jump to the first row, got %d", m.Cursor())
	}

	// Arrow keys behave like j/k.
	m = press(m, "down", "down", "up")
	if m.Cursor() != 1 {
		t.Errorf("Arrow navigation broken, got %d", m.Cursor())
	}

	// Clamp at the top.
	m = press(m, "k", "k", "k")
	if m.Cursor() != 0 {
		t.Errorf("Cursor should clamp at 0, got %d", m.Cursor())
	}
}

func TestModelScrollFollowsCursor(t *testing.T) {
	m := newTestModel(t, manyItems(50), Options{Virtual: true})

	m = press(m, "G")
	rows := m.visibleRows()
	wantOffset := (50 - rows) * m.Controller().ItemHeight()
	if got := m.Controller().ScrollOffset(); got != wantOffset {
		t.Errorf("After G expected scroll offset %d, got %d", wantOffset, got)
	}

	m = press(m, "g")
	if got := m.Controller().ScrollOffset(); got != 0 {
		t.Errorf("After g expected scroll offset 0, got %d", got)
	}
}

func TestModelFilterFlow(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m = press(m, "/")
	if m.active != overlayFilter {
		t.Fatal("/ should open the filter overlay")
	}

	m = press(m, "u", "r", "g")
	if got := m.Controller().FilterTerm(); got != "urg" {
		t.Fatalf("Live filter should track typing, got %q", got)
	}
	if got := m.Controller().Stats().FilteredItems; got != 2 {
		t.Errorf("urg should match the two urgent items, got %d", got)
	}

	m = press(m, "enter")
	if m.active != overlayNone {
		t.Error("Enter should close the overlay")
	}
	if got := m.Controller().FilterTerm(); got != "urg" {
		t.Errorf("Enter should keep the term, got %q", got)
	}
	if !strings.Contains(m.View(), "/urg") {
		t.Error("Footer should show the active filter")
	}
}

func TestModelFilterEscCancels(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m = press(m, "/", "u", "r", "g", "esc")
	if m.active != overlayNone {
		t.Fatal("Esc should close the overlay")
	}
	if got := m.Controller().FilterTerm(); got != "" {
		t.Errorf("Esc should restore the previous term, got %q", got)
	}
	if got := m.Controller().Stats().FilteredItems; got != 6 {
		t.Errorf("All items should be back, got %d", got)
	}
}

func TestModelEscClearsCommittedFilter(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m = press(m, "/", "u", "r", "g", "enter", "esc")
	if got := m.Controller().FilterTerm(); got != "" {
		t.Errorf("Esc in the list should clear the filter, got %q", got)
	}
}

func TestModelToggleSelected(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m, cmd := press1(m, "x")
	if cmd == nil {
		t.Error("Toggle should produce a command")
	}
	if m.allItems[0].Selected {
		t.Error("Toggle should flip the full-collection copy")
	}
	if it, _ := m.Controller().ItemAt(0); it.Selected {
		t.Error("Toggle should flip the controller copy")
	}
}

func TestModelCycleCategory(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m, _ = press1(m, "c")
	if got := m.allItems[0].Category; got != model.CategoryNormal {
		t.Errorf("urgent should cycle to normal, got %q", got)
	}

	m, _ = press1(m, "c")
	if got := m.allItems[0].Category; got != model.CategoryLow {
		t.Errorf("normal should cycle to low, got %q", got)
	}

	m, _ = press1(m, "c")
	if got := m.allItems[0].Category; got != model.CategoryUrgent {
		t.Errorf("low should cycle back to urgent, got %q", got)
	}
}

func TestModelDelete(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m, _ = press1(m, "d")
	if len(m.allItems) != 5 {
		t.Fatalf("Expected 5 items after delete, got %d", len(m.allItems))
	}
	for _, it := range m.allItems {
		if it.ID == 0 {
			t.Error("Item #0 should be gone")
		}
	}
	if got := m.Controller().Stats().TotalItems; got != 5 {
		t.Errorf("Controller should agree, got %d", got)
	}
}

func TestModelMoveItemReorders(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m, cmd := press1(m, "J")
	if cmd == nil {
		t.Fatal("Move should save and announce")
	}
	if m.allItems[0].ID != 1 || m.allItems[1].ID != 0 {
		t.Fatalf("Expected source order [1 0 ...], got [%d %d ...]", m.allItems[0].ID, m.allItems[1].ID)
	}
	if m.cursor != 1 {
		t.Errorf("Cursor should follow the moved item, got %d", m.cursor)
	}
	if it, ok := m.Controller().ItemAt(0); !ok || it.ID != 1 {
		t.Errorf("View should show item #1 first, got %+v", it)
	}

	m, _ = press1(m, "K")
	if m.allItems[0].ID != 0 || m.allItems[1].ID != 1 {
		t.Errorf("Move back should restore source order, got [%d %d ...]", m.allItems[0].ID, m.allItems[1].ID)
	}
	if m.cursor != 0 {
		t.Errorf("Cursor should be back at 0, got %d", m.cursor)
	}
}

func TestModelMoveItemRefusedWhenSorted(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})
	m.Controller().SetSort(model.SortByValue, model.SortDesc)

	m, _ = press1(m, "J")
	if m.statusMsg != "Clear sort (s) before reordering" {
		t.Errorf("Expected refusal status, got %q", m.statusMsg)
	}
	if m.allItems[0].ID != 0 {
		t.Error("Source order must not change while sorted")
	}
}

func TestModelMoveItemAtBottomIsNoop(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})
	m = press(m, "G")

	m, cmd := press1(m, "J")
	if cmd != nil {
		t.Error("Moving past the end should do nothing")
	}
	if m.allItems[5].ID != 5 {
		t.Error("Source order must not change")
	}
}

func TestModelSortPickerFlow(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m = press(m, "s")
	if m.active != overlaySort {
		t.Fatal("s should open the sort picker")
	}

	// Move from name to category and apply.
	m = press(m, "j", "enter")
	field, dir := m.Controller().Sort()
	if field != model.SortByCategory || dir != model.SortAsc {
		t.Errorf("Expected category asc, got %s %s", field, dir)
	}
	if m.active != overlayNone {
		t.Error("Enter should close the picker")
	}
}

func TestModelPaletteFlow(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{Presets: preset.BuiltinPresets()})

	m = press(m, "p")
	if m.active != overlayPalette {
		t.Fatal("p should open the palette")
	}

	m = press(m, "u", "r", "g", "enter")
	if m.ActivePreset() != "urgent" {
		t.Fatalf("Expected urgent preset applied, got %q", m.ActivePreset())
	}
	if got := m.Controller().Stats().TotalItems; got != 2 {
		t.Errorf("Urgent preset should scope to 2 items, got %d", got)
	}
	field, dir := m.Controller().Sort()
	if field != model.SortByValue || dir != model.SortDesc {
		t.Errorf("Urgent preset should sort by value desc, got %s %s", field, dir)
	}
	if it, ok := m.Controller().ItemAt(0); !ok || it.ID != 0 {
		t.Errorf("Biggest urgent item first, got %+v", it)
	}
}

func TestModelBoardFlow(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m = press(m, "b")
	if m.focused != focusBoard {
		t.Fatal("b should focus the board")
	}
	if !strings.Contains(m.View(), "urgent (2)") {
		t.Error("Board view should show the urgent column")
	}

	m = press(m, "esc")
	if m.focused != focusList {
		t.Error("Esc should return to the list")
	}
}

func TestModelDetailFlow(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m = press(m, "enter")
	if m.focused != focusDetail {
		t.Fatal("Enter should open the detail view")
	}
	if !strings.Contains(m.View(), "Review") {
		t.Error("Detail should render the item")
	}

	m = press(m, "esc")
	if m.focused != focusList {
		t.Error("Esc should return to the list")
	}
}

func TestModelDetailReturnsToBoard(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m = press(m, "b", "enter")
	if m.focused != focusDetail {
		t.Fatal("Enter on the board should open the detail view")
	}

	m = press(m, "esc")
	if m.focused != focusBoard {
		t.Error("Esc should return to the board, not the list")
	}
}

func TestModelVirtualToggle(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{Virtual: false})

	m, _ = press1(m, "v")
	if !m.Controller().Virtual() {
		t.Error("v should enable windowed rendering")
	}
	if !strings.Contains(m.View(), "windowed") {
		t.Error("Header should show the windowed badge")
	}

	m, _ = press1(m, "v")
	if m.Controller().Virtual() {
		t.Error("v should toggle back")
	}
}

func TestModelFlushLifecycle(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{Virtual: true})

	m, _ = press1(m, "x")
	if !m.Controller().Pending() {
		t.Fatal("An edit should leave a render pending")
	}

	m = flushModel(m)
	if m.Controller().Pending() {
		t.Error("Flush should clear the pending render")
	}
}

func TestModelPerfOverlay(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{Virtual: true})

	m = press(m, "i")
	if m.active != overlayPerf {
		t.Fatal("i should open the performance overlay")
	}
	if !strings.Contains(m.View(), "Performance") {
		t.Error("Overlay should render")
	}

	m = press(m, "i")
	if m.active != overlayNone {
		t.Error("i should close the overlay again")
	}
}

func TestModelHelpOverlay(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m = press(m, "?")
	if !strings.Contains(m.View(), "Quick Reference") {
		t.Error("Help overlay should render")
	}

	m = press(m, "esc")
	if m.active != overlayNone {
		t.Error("Esc should close help")
	}
}

func TestModelRenameFlow(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m = press(m, "r")
	if m.active != overlayRename {
		t.Fatal("r should open the rename overlay")
	}

	m = press(m, "ctrl+u") // clear the seeded name
	for _, r := range "Pay invoices" {
		m = press(m, string(r))
	}
	m, _ = press1(m, "enter")

	if m.active != overlayNone {
		t.Error("Enter should close the overlay")
	}
	if got := m.allItems[0].Name; got != "Pay invoices" {
		t.Errorf("Expected rename to apply, got %q", got)
	}
	if it, _ := m.Controller().ItemAt(0); it.Name != "Pay invoices" {
		t.Errorf("Controller copy should rename too, got %q", it.Name)
	}
}

func TestModelRenameEscKeepsName(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	m = press(m, "r", "ctrl+u", "z", "esc")
	if got := m.allItems[0].Name; got != "Review invoices" {
		t.Errorf("Esc should abandon the rename, got %q", got)
	}
}

func TestModelAddFormOpens(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	next, cmd := press1(m, "a")
	if next.active != overlayForm {
		t.Fatal("a should open the add form")
	}
	if cmd == nil {
		t.Error("Opening the form should return its init command")
	}
}

func TestModelQuitSavesViewState(t *testing.T) {
	dir := t.TempDir()
	m := newTestModel(t, uiItems(), Options{StateDir: dir})

	m = press(m, "/", "u", "r", "g", "enter")
	_, cmd := press1(m, "q")
	if cmd == nil {
		t.Fatal("q should produce a quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit the program")
	}

	state, ok := LoadViewState(dir)
	if !ok {
		t.Fatal("Quit should persist view state")
	}
	if state.Filter != "urg" {
		t.Errorf("Persisted filter wrong: %q", state.Filter)
	}
	if state.CursorID < 0 {
		t.Error("Persisted cursor id should be set")
	}
}

func TestModelRestoresViewState(t *testing.T) {
	dir := t.TempDir()
	virtual := true
	SaveViewState(dir, ViewState{
		Filter:    "urg",
		SortField: "value",
		SortDir:   "asc",
		Virtual:   &virtual,
		CursorID:  0,
		Scroll:    0,
	})

	m := newTestModel(t, uiItems(), Options{StateDir: dir})

	if got := m.Controller().FilterTerm(); got != "urg" {
		t.Errorf("Filter should restore, got %q", got)
	}
	field, dir2 := m.Controller().Sort()
	if field != model.SortByValue || dir2 != model.SortAsc {
		t.Errorf("Sort should restore, got %s %s", field, dir2)
	}
	if !m.Controller().Virtual() {
		t.Error("Mode should restore")
	}
	// value asc over the urgent matches puts #3 (700) before #0 (900).
	if m.Cursor() != 1 {
		t.Errorf("Cursor should land on the saved item's row, got %d", m.Cursor())
	}
}

func TestModelPresetBeatsSavedState(t *testing.T) {
	dir := t.TempDir()
	SaveViewState(dir, ViewState{Filter: "cache", CursorID: -1})

	m := newTestModel(t, uiItems(), Options{
		StateDir: dir,
		Presets:  preset.BuiltinPresets(),
		Preset:   "urgent",
	})

	if m.ActivePreset() != "urgent" {
		t.Fatalf("Expected the preset to apply, got %q", m.ActivePreset())
	}
	if got := m.Controller().FilterTerm(); got == "cache" {
		t.Error("Saved state must not override an explicit preset")
	}
}

func TestModelWatchReload(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	next, _ := m.Update(watch.ItemsReloadedMsg{Items: manyItems(3)})
	m = next.(Model)

	if len(m.allItems) != 3 {
		t.Fatalf("Reload should replace the collection, got %d", len(m.allItems))
	}
	if got := m.Controller().Stats().TotalItems; got != 3 {
		t.Errorf("Controller should follow, got %d", got)
	}
	if !strings.Contains(m.statusMsg, "Reloaded 3") {
		t.Errorf("Status should announce the reload, got %q", m.statusMsg)
	}
}

func TestModelWatchReloadKeepsPresetScope(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{Presets: preset.BuiltinPresets(), Preset: "urgent"})

	if got := m.Controller().Stats().TotalItems; got != 2 {
		t.Fatalf("Precondition: urgent scope, got %d", got)
	}

	next, _ := m.Update(watch.ItemsReloadedMsg{Items: manyItems(9)})
	m = next.(Model)

	// manyItems assigns urgent to every third item.
	if got := m.Controller().Stats().TotalItems; got != 3 {
		t.Errorf("Reload should re-derive the preset scope, got %d", got)
	}
}

func TestModelStatusClearSequencing(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	next, _ := m.Update(ItemsSavedMsg{Path: "x", Count: 6})
	m = next.(Model)
	if m.statusMsg == "" {
		t.Fatal("Save message should set a status")
	}

	// A stale clear (old sequence) must not wipe the newer notice.
	next, _ = m.Update(clearStatusMsg{seq: m.statusSeq - 1})
	m = next.(Model)
	if m.statusMsg == "" {
		t.Error("Stale clear should be ignored")
	}

	next, _ = m.Update(clearStatusMsg{seq: m.statusSeq})
	m = next.(Model)
	if m.statusMsg != "" {
		t.Error("Matching clear should blank the status")
	}
}

func TestModelMouseWheelScrolls(t *testing.T) {
	m := newTestModel(t, manyItems(50), Options{Virtual: true})

	next, _ := m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	m = next.(Model)
	if got := m.Controller().ScrollOffset(); got != 3 {
		t.Errorf("Wheel down should scroll 3 rows, got %d", got)
	}

	next, _ = m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	m = next.(Model)
	if got := m.Controller().ScrollOffset(); got != 0 {
		t.Errorf("Wheel up should scroll back, got %d", got)
	}
}

func TestModelCtrlCQuitsEverywhere(t *testing.T) {
	m := newTestModel(t, uiItems(), Options{})

	for _, setup := range [][]string{
		{},
		{"b"},
		{"enter"},
		{"/"},
		{"s"},
	} {
		fresh := press(m, setup...)
		_, cmd := press1(fresh, "ctrl+c")
		if cmd == nil {
			t.Fatalf("ctrl+c after %v should quit", setup)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("ctrl+c after %v should produce QuitMsg", setup)
		}
	}
}
