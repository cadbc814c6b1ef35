package ui

import (
	"context"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"

	"github.com/vanderheijden86/listview/pkg/model"
	"github.com/vanderheijden86/listview/pkg/storage"
)

// ItemsSavedMsg is returned after the collection was written out.
type ItemsSavedMsg struct {
	Path  string
	Count int
}

// SaveErrorMsg is returned when a write fails.
type SaveErrorMsg struct {
	Err error
}

// YankResultMsg is returned after a clipboard copy attempt.
type YankResultMsg struct {
	ID  int
	Err error
}

// ItemWriter persists collection changes through the configured store.
// A nil store turns every save into a no-op, read-only sessions work
// without special cases at the call sites.
type ItemWriter struct {
	store storage.Store
}

// NewItemWriter creates a writer over the given store.
func NewItemWriter(store storage.Store) *ItemWriter {
	return &ItemWriter{store: store}
}

// Available reports whether saves will actually be written.
func (w *ItemWriter) Available() bool {
	return w.store != nil
}

// SaveItems writes the full collection in the background. The slice is
// copied up front so later edits cannot race the write.
func (w *ItemWriter) SaveItems(items []model.Item) tea.Cmd {
	if w.store == nil {
		return nil
	}
	snapshot := model.CopyItems(items)
	store := w.store
	return func() tea.Msg {
		if err := store.Save(context.Background(), snapshot); err != nil {
			return SaveErrorMsg{Err: err}
		}
		return ItemsSavedMsg{Path: store.Path(), Count: len(snapshot)}
	}
}

// YankItem copies the item as pretty-printed JSON to the clipboard.
func YankItem(it model.Item) tea.Cmd {
	return func() tea.Msg {
		data, err := json.MarshalIndent(it, "", "  ")
		if err != nil {
			return YankResultMsg{ID: it.ID, Err: err}
		}
		return YankResultMsg{ID: it.ID, Err: clipboard.WriteAll(string(data))}
	}
}

// NextFreeID returns an id above every existing one.
func NextFreeID(items []model.Item) int {
	next := 0
	for _, it := range items {
		if it.ID >= next {
			next = it.ID + 1
		}
	}
	return next
}
