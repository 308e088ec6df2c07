package ui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"reade_cli/display"
)

// Callbacks connect list key bindings to their effects. Each callback
// returns a status message to flash in the panel, or an error to show
// instead.
type Callbacks struct {
	// Open opens the item in Reader (enter).
	Open func(display.Item) (string, error)
	// OpenSource opens the original source URL (o).
	OpenSource func(display.Item) (string, error)
	// Preview quick-looks the item (space).
	Preview func(display.Item) (string, error)
	// Copy copies the source URL (y).
	Copy func(display.Item) (string, error)
}

// ListPanel is the scrolling launcher list of reader items.
type ListPanel struct {
	title     string
	items     []display.Item
	callbacks Callbacks

	selected int
	scroll   int
	status   string
	width    int
	height   int
}

// NewListPanel creates the item list model.
func NewListPanel(title string, items []display.Item, callbacks Callbacks) ListPanel {
	return ListPanel{
		title:     title,
		items:     items,
		callbacks: callbacks,
		width:     80,
		height:    24,
	}
}

// RunList displays the item list and blocks until the user dismisses it.
func RunList(title string, items []display.Item, callbacks Callbacks) error {
	program := tea.NewProgram(NewListPanel(title, items, callbacks))
	_, err := program.Run()
	return err
}

func (p ListPanel) Init() tea.Cmd {
	return nil
}

func (p ListPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.ensureVisible()
		return p, nil

	case tea.KeyPressMsg:
		return p.handleKey(msg)
	}
	return p, nil
}

func (p ListPanel) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	listHeight := p.listHeight()

	switch msg.String() {
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
		p.ensureVisible()

	case "down", "j":
		if p.selected < len(p.items)-1 {
			p.selected++
		}
		p.ensureVisible()

	case "pgup":
		p.selected -= listHeight
		if p.selected < 0 {
			p.selected = 0
		}
		p.ensureVisible()

	case "pgdown":
		p.selected += listHeight
		if p.selected > len(p.items)-1 {
			p.selected = len(p.items) - 1
		}
		p.ensureVisible()

	case "home":
		p.selected = 0
		p.ensureVisible()

	case "end":
		if len(p.items) > 0 {
			p.selected = len(p.items) - 1
		}
		p.ensureVisible()

	case "enter":
		return p.invoke(p.callbacks.Open)

	case "o":
		return p.invoke(p.callbacks.OpenSource)

	case "space":
		return p.invoke(p.callbacks.Preview)

	case "y":
		return p.invoke(p.callbacks.Copy)

	case "q", "esc", "ctrl+c":
		return p, tea.Quit
	}

	return p, nil
}

func (p ListPanel) invoke(callback func(display.Item) (string, error)) (tea.Model, tea.Cmd) {
	if callback == nil || p.selected < 0 || p.selected >= len(p.items) {
		return p, nil
	}
	status, err := callback(p.items[p.selected])
	if err != nil {
		p.status = "error: " + err.Error()
	} else {
		p.status = status
	}
	return p, nil
}

func (p *ListPanel) listHeight() int {
	// Title, blank line, footer, status.
	h := p.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (p *ListPanel) ensureVisible() {
	listHeight := p.listHeight()
	if p.selected < p.scroll {
		p.scroll = p.selected
	}
	if p.selected >= p.scroll+listHeight {
		p.scroll = p.selected - listHeight + 1
	}
	if p.scroll < 0 {
		p.scroll = 0
	}
}

func (p ListPanel) View() tea.View {
	return tea.NewView(p.render())
}

func (p ListPanel) render() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(p.title))
	b.WriteString("\n\n")

	listHeight := p.listHeight()
	for i := 0; i < listHeight; i++ {
		index := p.scroll + i
		if index >= len(p.items) {
			b.WriteString("\n")
			continue
		}
		b.WriteString(p.renderItem(index))
		b.WriteString("\n")
	}

	if p.status != "" {
		b.WriteString(statusStyle.Render(" " + p.status + " "))
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ Navigate | Enter Open | o Source | Space Preview | y Copy URL | q Quit"))

	return b.String()
}

// renderItem lays out one row: icon and title on the left, badge and label
// right-aligned, subtitle appended in muted text when it fits.
func (p ListPanel) renderItem(index int) string {
	item := p.items[index]

	right := item.Badge
	if item.Label != "" {
		if right != "" {
			right += " "
		}
		right += item.Label
	}

	left := item.Icon + " " + item.Title
	available := p.width - runewidth.StringWidth(right) - 3
	if available < 10 {
		available = 10
	}
	if item.Subtitle != "" {
		left += "  " + item.Subtitle
	}
	left = ansi.Truncate(left, available, "…")

	pad := p.width - ansi.StringWidth(left) - runewidth.StringWidth(right) - 2
	if pad < 1 {
		pad = 1
	}

	if index == p.selected {
		line := "▸ " + left + strings.Repeat(" ", pad) + right
		return selectedStyle.Render(line)
	}

	line := "  " + textStyle.Render(ansi.Truncate(item.Icon+" "+item.Title, available, "…"))
	if item.Subtitle != "" {
		rendered := ansi.StringWidth(line)
		if rendered < available {
			line += "  " + subtitleStyle.Render(ansi.Truncate(item.Subtitle, available-rendered-2, "…"))
		}
	}
	gap := p.width - ansi.StringWidth(line) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	if right != "" {
		line += strings.Repeat(" ", gap)
		if item.Badge != "" {
			line += badgeStyle.Render(item.Badge)
			if item.Label != "" {
				line += " "
			}
		}
		if item.Label != "" {
			line += labelStyle.Render(item.Label)
		}
	}
	return line
}

// statusMessage lets tests and callbacks inspect the flashed status.
func (p ListPanel) statusMessage() string { return p.status }

// Selected returns the currently selected item index.
func (p ListPanel) Selected() int { return p.selected }
