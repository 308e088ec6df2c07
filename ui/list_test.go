package ui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"reade_cli/display"
)

var _ tea.Model = ListPanel{}

func testItems(n int) []display.Item {
	items := make([]display.Item, n)
	for i := range items {
		items[i] = display.Item{
			Title:     fmt.Sprintf("Item %d", i),
			Icon:      "📰",
			ReaderURL: fmt.Sprintf("https://read.readwise.io/read/%d", i),
			SourceURL: fmt.Sprintf("https://example.com/%d", i),
		}
	}
	return items
}

func updateList(t *testing.T, p ListPanel, msg tea.Msg) (ListPanel, tea.Cmd) {
	t.Helper()
	m, cmd := p.Update(msg)
	next, ok := m.(ListPanel)
	if !ok {
		t.Fatalf("Update returned %T, want ListPanel", m)
	}
	return next, cmd
}

func TestListNavigation(t *testing.T) {
	p := NewListPanel("Items", testItems(5), Callbacks{})

	p, _ = updateList(t, p, testKeyDown)
	p, _ = updateList(t, p, testKeyDown)
	if p.Selected() != 2 {
		t.Errorf("Selected = %d, want 2", p.Selected())
	}

	p, _ = updateList(t, p, testKeyUp)
	if p.Selected() != 1 {
		t.Errorf("Selected = %d, want 1", p.Selected())
	}

	p, _ = updateList(t, p, testKeyEnd)
	if p.Selected() != 4 {
		t.Errorf("Selected = %d, want 4", p.Selected())
	}

	// No wrap at the bottom.
	p, _ = updateList(t, p, testKeyDown)
	if p.Selected() != 4 {
		t.Errorf("Selected = %d, want 4 (no wrap)", p.Selected())
	}

	p, _ = updateList(t, p, testKeyHome)
	if p.Selected() != 0 {
		t.Errorf("Selected = %d, want 0", p.Selected())
	}

	// No wrap at the top.
	p, _ = updateList(t, p, testKeyUp)
	if p.Selected() != 0 {
		t.Errorf("Selected = %d, want 0 (no wrap)", p.Selected())
	}
}

func TestListVimNavigation(t *testing.T) {
	p := NewListPanel("Items", testItems(3), Callbacks{})

	p, _ = updateList(t, p, newTextKeyPressMsg("j"))
	if p.Selected() != 1 {
		t.Errorf("Selected = %d, want 1", p.Selected())
	}
	p, _ = updateList(t, p, newTextKeyPressMsg("k"))
	if p.Selected() != 0 {
		t.Errorf("Selected = %d, want 0", p.Selected())
	}
}

func TestListPaging(t *testing.T) {
	p := NewListPanel("Items", testItems(100), Callbacks{})
	p, _ = updateList(t, p, tea.WindowSizeMsg{Width: 80, Height: 14})

	p, _ = updateList(t, p, testKeyPgDown)
	if p.Selected() != 10 {
		t.Errorf("Selected = %d, want 10 after page down", p.Selected())
	}

	p, _ = updateList(t, p, testKeyPgUp)
	if p.Selected() != 0 {
		t.Errorf("Selected = %d, want 0 after page up", p.Selected())
	}
}

func TestListEnterInvokesOpen(t *testing.T) {
	var openedItem display.Item
	callbacks := Callbacks{
		Open: func(item display.Item) (string, error) {
			openedItem = item
			return "opened in Reader", nil
		},
	}
	p := NewListPanel("Items", testItems(3), callbacks)
	p, _ = updateList(t, p, testKeyDown)

	p, _ = updateList(t, p, testKeyEnter)
	if openedItem.Title != "Item 1" {
		t.Errorf("opened item = %q, want Item 1", openedItem.Title)
	}
	if p.statusMessage() != "opened in Reader" {
		t.Errorf("status = %q", p.statusMessage())
	}
}

func TestListKeyBindings(t *testing.T) {
	invoked := map[string]bool{}
	record := func(name, status string) func(display.Item) (string, error) {
		return func(display.Item) (string, error) {
			invoked[name] = true
			return status, nil
		}
	}
	callbacks := Callbacks{
		Open:       record("open", "opened"),
		OpenSource: record("source", "source opened"),
		Preview:    record("preview", "previewed"),
		Copy:       record("copy", "copied"),
	}
	p := NewListPanel("Items", testItems(1), callbacks)

	p, _ = updateList(t, p, testKeyEnter)
	p, _ = updateList(t, p, newTextKeyPressMsg("o"))
	p, _ = updateList(t, p, testKeySpace)
	p, _ = updateList(t, p, newTextKeyPressMsg("y"))

	for _, name := range []string{"open", "source", "preview", "copy"} {
		if !invoked[name] {
			t.Errorf("callback %q not invoked", name)
		}
	}
}

func TestListCallbackErrorShownAsStatus(t *testing.T) {
	callbacks := Callbacks{
		Open: func(display.Item) (string, error) {
			return "", errors.New("nothing to open")
		},
	}
	p := NewListPanel("Items", testItems(1), callbacks)

	p, _ = updateList(t, p, testKeyEnter)
	if p.statusMessage() != "error: nothing to open" {
		t.Errorf("status = %q", p.statusMessage())
	}
}

func TestListQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyPressMsg{newTextKeyPressMsg("q"), testKeyEsc, testKeyCtrlC} {
		p := NewListPanel("Items", testItems(1), Callbacks{})
		_, cmd := updateList(t, p, key)
		if cmd == nil {
			t.Fatalf("key %q: expected a quit command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("key %q: command is not quit", key.String())
		}
	}
}

func TestListViewShowsVisibleWindow(t *testing.T) {
	p := NewListPanel("Reader items", testItems(50), Callbacks{})
	p, _ = updateList(t, p, tea.WindowSizeMsg{Width: 80, Height: 10})

	view := p.View().Content
	if !strings.Contains(view, "Reader items") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "Item 0") {
		t.Error("view missing first item")
	}
	if strings.Contains(view, "Item 20") {
		t.Error("view should not contain items beyond the window")
	}
	if !strings.Contains(view, "q Quit") {
		t.Error("view missing footer")
	}

	// Jump to the end; the window follows the selection.
	p, _ = updateList(t, p, testKeyEnd)
	view = p.View().Content
	if !strings.Contains(view, "Item 49") {
		t.Error("view should follow the selection to the last item")
	}
	if strings.Contains(view, "Item 0 ") {
		t.Error("view should have scrolled past the first item")
	}
}

func TestListViewRendersRowDetails(t *testing.T) {
	items := []display.Item{
		{Title: "An article", Subtitle: "its subtitle", Badge: "5 Mar 2024", Label: "42%", Icon: "📰"},
		{Title: "Another", Icon: "📡"},
	}
	p := NewListPanel("Items", items, Callbacks{})
	p, _ = updateList(t, p, tea.WindowSizeMsg{Width: 120, Height: 24})

	view := p.View().Content
	for _, fragment := range []string{"An article", "its subtitle", "5 Mar 2024", "42%", "Another", "▸"} {
		if !strings.Contains(view, fragment) {
			t.Errorf("view missing %q", fragment)
		}
	}
}
