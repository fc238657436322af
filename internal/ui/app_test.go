package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/searchbox/internal/catalog"
	"github.com/five82/searchbox/internal/debounce"
	"github.com/five82/searchbox/internal/prefs"
	"github.com/five82/searchbox/internal/search"
)

type harness struct {
	m        Model
	sched    *debounce.ManualScheduler
	selected []catalog.Item
	focused  int
}

func valueItems() []catalog.Item {
	items := make([]catalog.Item, 4)
	for i := range items {
		items[i] = catalog.Item{"id": i, "name": fmt.Sprintf("value%d", i)}
	}
	return items
}

func newHarness(t *testing.T, items []catalog.Item) *harness {
	t.Helper()
	h := &harness{sched: debounce.NewManualScheduler()}
	events := NewEvents()
	host := events.Wrap(search.Host{
		OnSelect: func(it catalog.Item) { h.selected = append(h.selected, it) },
		OnFocus:  func() { h.focused++ },
	})
	box, err := search.NewBox(search.Options{
		Items:       items,
		AutoFocus:   true,
		Placeholder: "Search",
	}, host, search.Deps{Scheduler: h.sched})
	if err != nil {
		t.Fatalf("NewBox: %v", err)
	}
	t.Cleanup(func() {
		box.Close()
		events.Close()
	})
	h.m = New(Options{
		Box:       box,
		Events:    events,
		ItemCount: len(items),
		PrefsPath: filepath.Join(t.TempDir(), "prefs.toml"),
	})
	return h
}

func (h *harness) send(msg tea.Msg) {
	next, _ := h.m.Update(msg)
	h.m = next.(Model)
}

func (h *harness) typeText(s string) {
	for _, r := range s {
		h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// settle fires pending passes and feeds the resulting event to the model.
func (h *harness) settle() {
	h.sched.RunAll()
	h.send(h.m.events.wait()())
}

func TestModel_AutoFocusFocusesInput(t *testing.T) {
	h := newHarness(t, valueItems())
	if !h.m.input.Focused() {
		t.Fatalf("input not focused with AutoFocus")
	}
	if h.focused != 1 {
		t.Fatalf("OnFocus calls = %d, want 1", h.focused)
	}
	if !strings.Contains(h.m.View(), "Search") {
		t.Fatalf("View() missing placeholder:\n%s", h.m.View())
	}
}

func TestModel_TypingRendersResults(t *testing.T) {
	h := newHarness(t, valueItems())
	h.typeText("value")
	if got := h.m.box.Snapshot().Query; got != "value" {
		t.Fatalf("Query = %q, want value", got)
	}
	if strings.Contains(h.m.View(), rowIcon) {
		t.Fatalf("rows rendered before debounce fired")
	}
	if !strings.Contains(h.m.View(), "searching…") {
		t.Fatalf("View() missing searching status while a pass is pending:\n%s", h.m.View())
	}

	h.settle()
	view := h.m.View()
	if strings.Contains(view, "searching…") {
		t.Fatalf("searching status still shown after the pass:\n%s", view)
	}
	for i := 0; i < 4; i++ {
		if !strings.Contains(view, fmt.Sprintf("value%d", i)) {
			t.Fatalf("View() missing value%d:\n%s", i, view)
		}
	}
	if got := strings.Count(view, rowIcon); got != 4 {
		t.Fatalf("rendered rows = %d, want 4", got)
	}
}

func TestModel_NoMatchesRendersNoDropdown(t *testing.T) {
	h := newHarness(t, valueItems())
	h.typeText("despair")
	h.settle()

	view := h.m.View()
	if strings.Contains(view, rowIcon) {
		t.Fatalf("dropdown rendered for no results:\n%s", view)
	}
	if !strings.Contains(view, "no results") {
		t.Fatalf("View() missing no results status:\n%s", view)
	}
}

func TestModel_RowCapAtTen(t *testing.T) {
	items := make([]catalog.Item, 10000)
	for i := range items {
		items[i] = catalog.Item{"id": i, "name": fmt.Sprintf("something%d", i)}
	}
	h := newHarness(t, items)
	h.typeText("something")
	h.settle()

	if got := strings.Count(h.m.View(), rowIcon); got != 10 {
		t.Fatalf("rendered rows = %d, want 10", got)
	}
	if !strings.Contains(h.m.View(), "10 of 10000 results") {
		t.Fatalf("View() missing result count:\n%s", h.m.View())
	}
}

func TestModel_KeyboardSelect(t *testing.T) {
	h := newHarness(t, valueItems())
	h.typeText("value")
	h.settle()

	h.send(tea.KeyMsg{Type: tea.KeyDown})
	h.send(tea.KeyMsg{Type: tea.KeyDown})
	if h.m.hover != 1 {
		t.Fatalf("hover = %d, want 1", h.m.hover)
	}
	h.send(tea.KeyMsg{Type: tea.KeyEnter})

	if len(h.selected) != 1 || h.selected[0]["id"] != 1 {
		t.Fatalf("selected = %v, want [value1]", h.selected)
	}
	if got := h.m.input.Value(); got != "value1" {
		t.Fatalf("input = %q, want value1", got)
	}
	if strings.Contains(h.m.View(), rowIcon) {
		t.Fatalf("dropdown still open after select")
	}

	// Enter with nothing hovered selects nothing.
	h.send(tea.KeyMsg{Type: tea.KeyEnter})
	if len(h.selected) != 1 {
		t.Fatalf("selected = %d, want 1", len(h.selected))
	}
}

func TestModel_MouseHoverAndClick(t *testing.T) {
	h := newHarness(t, valueItems())
	h.typeText("value")
	h.settle()

	h.send(tea.MouseMsg{X: 4, Y: resultsRow + 2, Action: tea.MouseActionMotion})
	if h.m.hover != 2 {
		t.Fatalf("hover = %d, want 2", h.m.hover)
	}
	h.send(tea.MouseMsg{X: 4, Y: resultsRow + 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(h.selected) != 1 || h.selected[0]["id"] != 3 {
		t.Fatalf("selected = %v, want [value3]", h.selected)
	}
}

func TestModel_EscapeClears(t *testing.T) {
	h := newHarness(t, valueItems())
	h.typeText("value")
	h.settle()

	h.send(tea.KeyMsg{Type: tea.KeyEsc})
	if h.m.input.Value() != "" {
		t.Fatalf("input = %q, want empty", h.m.input.Value())
	}
	snap := h.m.box.Snapshot()
	if snap.Query != "" || snap.HasResults() {
		t.Fatalf("snapshot after esc = %q/%v", snap.Query, snap.Results)
	}
}

func TestModel_TabTogglesFocus(t *testing.T) {
	h := newHarness(t, valueItems())
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	if h.m.input.Focused() || h.m.box.Snapshot().Focused {
		t.Fatalf("input still focused after tab")
	}
	h.typeText("v")
	if h.m.input.Value() != "" {
		t.Fatalf("unfocused input accepted text %q", h.m.input.Value())
	}
	h.send(tea.KeyMsg{Type: tea.KeyTab})
	if !h.m.input.Focused() || h.focused != 2 {
		t.Fatalf("focused/OnFocus = %v/%d, want true/2", h.m.input.Focused(), h.focused)
	}
}

func TestModel_CycleThemeSavesPrefs(t *testing.T) {
	h := newHarness(t, valueItems())
	h.send(tea.KeyMsg{Type: tea.KeyCtrlT})
	if h.m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", h.m.theme.Name)
	}
	p, err := prefs.Load(h.m.prefsPath)
	if err != nil {
		t.Fatalf("prefs.Load: %v", err)
	}
	if p.Theme != "Kanagawa" {
		t.Fatalf("saved theme = %q, want Kanagawa", p.Theme)
	}
}

func TestModel_HelpOverlay(t *testing.T) {
	h := newHarness(t, valueItems())
	h.send(tea.KeyMsg{Type: tea.KeyF1})
	if !strings.Contains(h.m.View(), "Keyboard Shortcuts") {
		t.Fatalf("help overlay not shown")
	}
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if h.m.showHelp {
		t.Fatalf("help overlay not closed by key press")
	}
	if h.m.input.Value() != "" {
		t.Fatalf("key closing help reached input: %q", h.m.input.Value())
	}
}

func TestEvents_ItemsReloaded(t *testing.T) {
	h := newHarness(t, valueItems())
	h.m.events.ItemsReloaded(42)
	h.send(h.m.events.wait()())
	if h.m.itemCount != 42 {
		t.Fatalf("itemCount = %d, want 42", h.m.itemCount)
	}
}
