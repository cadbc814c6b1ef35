package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/listview/pkg/model"
)

// formValues backs the form fields. It lives behind a pointer so the
// field bindings stay valid as FormModel is copied through Update.
type formValues struct {
	name     string
	category model.Category
	value    string
	date     string
}

// FormModel wraps the add-item form overlay.
type FormModel struct {
	form   *huh.Form
	values *formValues
	width  int
	height int
	theme  Theme
}

// NewFormModel builds a fresh add-item form.
func NewFormModel(theme Theme) FormModel {
	v := &formValues{category: model.CategoryNormal}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("Name").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name must not be empty")
					}
					return nil
				}).
				Value(&v.name),
			huh.NewSelect[model.Category]().
				Key("category").
				Title("Category").
				Options(
					huh.NewOption("urgent", model.CategoryUrgent),
					huh.NewOption("normal", model.CategoryNormal),
					huh.NewOption("low", model.CategoryLow),
				).
				Value(&v.category),
			huh.NewInput().
				Key("value").
				Title("Value").
				Placeholder("0").
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					if _, err := strconv.Atoi(s); err != nil {
						return fmt.Errorf("value must be an integer")
					}
					return nil
				}).
				Value(&v.value),
			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("2026-01-31 (optional)").
				Validate(func(s string) error {
					s = strings.TrimSpace(s)
					if s == "" {
						return nil
					}
					if _, ok := (model.Item{Date: s}).ParsedDate(); !ok {
						return fmt.Errorf("unrecognized date")
					}
					return nil
				}).
				Value(&v.date),
		),
	).
		WithWidth(48).
		WithShowHelp(true).
		WithTheme(formTheme(theme))

	return FormModel{form: form, values: v, theme: theme}
}

func formTheme(t Theme) *huh.Theme {
	if t.Name == "dark" {
		return huh.ThemeDracula()
	}
	return huh.ThemeBase()
}

// SetSize updates the form dimensions
func (m *FormModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init starts the form.
func (m FormModel) Init() tea.Cmd {
	return m.form.Init()
}

// Update forwards a message to the form.
func (m FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	f, cmd := m.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.form = form
	}
	return m, cmd
}

// State exposes the form lifecycle state.
func (m FormModel) State() huh.FormState {
	return m.form.State
}

// Item builds the entered item with the given id. Call only after the
// form completed, the field validators have already run.
func (m FormModel) Item(id int) (model.Item, error) {
	value := 0
	if s := strings.TrimSpace(m.values.value); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return model.Item{}, fmt.Errorf("parsing value: %w", err)
		}
		value = n
	}
	it := model.Item{
		ID:       id,
		Name:     strings.TrimSpace(m.values.name),
		Category: m.values.category,
		Value:    value,
		Date:     strings.TrimSpace(m.values.date),
	}
	if err := it.Validate(); err != nil {
		return model.Item{}, err
	}
	return it, nil
}

// View renders the form centered in the viewport.
func (m FormModel) View() string {
	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		m.form.View(),
	)
}
