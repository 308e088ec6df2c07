package ui

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
)

// HelpPanel is a scrollable viewer for the user guide.
type HelpPanel struct {
	viewport viewport.Model
	title    string
	content  string
	ready    bool
}

// NewHelpPanel creates the help viewer model.
func NewHelpPanel(title, content string) HelpPanel {
	return HelpPanel{
		viewport: viewport.New(),
		title:    title,
		content:  content,
	}
}

// RunHelp displays the help text and blocks until dismissed.
func RunHelp(title, content string) error {
	program := tea.NewProgram(NewHelpPanel(title, content))
	_, err := program.Run()
	return err
}

func (h HelpPanel) Init() tea.Cmd {
	return nil
}

func (h HelpPanel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.viewport.SetWidth(msg.Width)
		// Title and footer each take a line.
		h.viewport.SetHeight(max(msg.Height-3, 1))
		h.viewport.SetContent(h.content)
		h.ready = true
		return h, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c", "enter":
			return h, tea.Quit
		}
	}

	var cmd tea.Cmd
	h.viewport, cmd = h.viewport.Update(msg)
	return h, cmd
}

func (h HelpPanel) View() tea.View {
	return tea.NewView(h.render())
}

func (h HelpPanel) render() string {
	if !h.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(h.title))
	b.WriteString("\n")
	b.WriteString(h.viewport.View())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("↑/↓ Scroll | q Close"))
	return b.String()
}
