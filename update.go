package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/karu/internal/browser"
)

func (m *model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("karu"),
		tick(m.cfg.TickInterval),
	)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.browser.SetSize(msg.Width, msg.Height)
		return m, nil

	case tickMsg:
		m.browser.Tick()
		return m, tick(m.cfg.TickInterval)

	case tea.KeyMsg:
		return m, m.browser.HandleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

// handleMouse maps the wheel to selection movement and a left click on a list
// row to selecting it. Only the file list in Normal mode reacts.
func (m *model) handleMouse(msg tea.MouseMsg) {
	b := m.browser
	if b.Err != nil || b.Mode.Kind != browser.Normal {
		return
	}
	if msg.Action != tea.MouseActionPress {
		return
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		b.MoveSelection(-1)
	case tea.MouseButtonWheelDown:
		b.MoveSelection(1)
	case tea.MouseButtonLeft:
		if row, ok := m.rowAt(msg.X, msg.Y); ok {
			b.Focus = browser.FocusFiles
			b.Select(row)
		}
	}
}

// rowAt converts screen coordinates to a listing index.
func (m *model) rowAt(x, y int) (int, bool) {
	if x < 1 || x >= m.listWidth()-1 {
		return 0, false
	}
	rows := m.listRows()
	line := y - listFirstRow
	if line < 0 || line >= rows {
		return 0, false
	}
	i := listWindow(m.browser.Selected, len(m.browser.Listing), rows) + line
	if i >= len(m.browser.Listing) {
		return 0, false
	}
	return i, true
}
