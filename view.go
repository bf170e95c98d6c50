package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/LFroesch/karu/internal/browser"
	"github.com/LFroesch/karu/internal/preview"
)

func (m *model) View() string {
	if m.width == 0 {
		return "Loading..."
	}
	if m.browser.Quitting {
		return ""
	}

	b := m.browser
	var main string
	switch {
	case b.Err != nil:
		main = m.renderErrorDialog()
	case b.Mode.Kind == browser.ConfirmDelete:
		main = m.renderConfirmDelete()
	case b.Mode.Kind.IsText() && b.Mode.Kind != browser.AddressEdit:
		main = m.renderInputDialog()
	case b.Mode.Kind == browser.View || b.Mode.Kind == browser.Edit:
		main = m.renderDocument()
	default:
		main = m.renderPanels()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTopBar(),
		m.renderAddressBar(),
		main,
		m.renderStatusBar(),
		m.renderHelp(),
	)
}

func (m *model) renderTopBar() string {
	b := m.browser
	title := titleStyle.Render("🧭 karu")

	controls := make([]string, 0, len(browser.TopBar))
	for i, c := range browser.TopBar {
		label := c.Label
		style := controlStyle
		switch c.Label {
		case "Back":
			label = "◀ Back"
			if !b.History().CanBack() {
				style = controlDisabledStyle
			}
		case "Forward":
			label = "Forward ▶"
			if !b.History().CanForward() {
				style = controlDisabledStyle
			}
		case "Up":
			label = "▲ Up"
		case "Hidden":
			label = "Hidden: off"
			if b.ShowHidden {
				label = "Hidden: on"
			}
		}
		if b.Focus == browser.FocusTopBar && i == b.TopBarIndex {
			style = controlFocusedStyle
		}
		controls = append(controls, style.Render(label))
	}

	row := lipgloss.JoinHorizontal(lipgloss.Top, append([]string{title}, controls...)...)
	return barStyle.Width(m.width).MaxHeight(1).Render(row)
}

func (m *model) renderAddressBar() string {
	b := m.browser
	if b.Mode.Kind == browser.AddressEdit {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.Mode.Input.View())
	}
	line := "📂 " + b.Path
	if b.FilterText != "" {
		line += hintStyle.Render(fmt.Sprintf("  (filter: %q)", b.FilterText))
	}
	return lipgloss.NewStyle().
		Foreground(colorPurple).
		MaxWidth(m.width).
		Render(line)
}

func (m *model) renderPanels() string {
	lw := m.listWidth()
	pw := max(m.width-lw-actionsWidth, 10)
	h := m.mainHeight()

	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderFileList(lw, h),
		m.renderActions(actionsWidth, h),
		m.renderPreview(pw, h),
	)
}

func (m *model) renderFileList(width, height int) string {
	b := m.browser
	inner := width - 2
	rows := m.listRows()

	dirName := lipgloss.NewStyle().Width(inner).MaxWidth(inner).
		Render(headerStyle.Render(fmt.Sprintf("%d items", len(b.Listing)-1)))

	start := listWindow(b.Selected, len(b.Listing), rows)
	end := min(start+rows, len(b.Listing))

	lines := []string{dirName}
	for i := start; i < end; i++ {
		e := b.Listing[i]

		size := ""
		if !e.IsDir {
			size = preview.FormatSize(e.Size)
		}
		name := runewidth.Truncate(e.Name, max(inner-runewidth.StringWidth(size)-5, 4), "...")
		left := fileIcon(e) + " " + name
		pad := max(inner-lipgloss.Width(left)-runewidth.StringWidth(size), 1)

		var line string
		switch {
		case i == b.Selected && b.Focus == browser.FocusFiles:
			line = rowSelectedStyle.Render(left + strings.Repeat(" ", pad) + size)
		case i == b.Selected:
			line = rowInactiveStyle.Render(left + strings.Repeat(" ", pad) + size)
		default:
			line = rowStyle.Render(left+strings.Repeat(" ", pad)) + sizeStyle(e.Size).Render(size)
		}
		lines = append(lines, line)
	}

	style := panelStyle
	if b.Focus == browser.FocusFiles {
		style = panelFocusedStyle
	}
	return style.Width(inner).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func (m *model) renderActions(width, height int) string {
	b := m.browser
	inner := width - 2

	lines := []string{headerStyle.Render("Actions")}
	for i, a := range browser.Actions {
		label := a.Label
		shortcut := a.Shortcut
		pad := max(inner-runewidth.StringWidth(label)-runewidth.StringWidth(shortcut)-2, 1)
		text := " " + label + strings.Repeat(" ", pad) + shortcut + " "

		switch {
		case i == b.ActionIndex && b.Focus == browser.FocusActions:
			text = rowSelectedStyle.Render(text)
		default:
			text = rowStyle.Render(" "+label+strings.Repeat(" ", pad)) + hintStyle.Render(shortcut+" ")
		}
		lines = append(lines, text)
	}

	style := panelStyle
	if b.Focus == browser.FocusActions {
		style = panelFocusedStyle
	}
	return style.Width(inner).Height(height - 2).Render(strings.Join(lines, "\n"))
}

func (m *model) renderPreview(width, height int) string {
	inner := width - 2
	bodyHeight := max(height-3, 1)

	e := m.browser.SelectedEntry()
	var header, body string
	switch {
	case e.Name == "":
		header = headerStyle.Render("Preview")
	case e.IsParent():
		header = headerStyle.Render("⬆️ ..")
		body = dimStyle.Render("Parent directory")
	default:
		header = headerStyle.Render(runewidth.Truncate(fileIcon(e)+" "+e.Name, inner, "..."))
		if !e.IsDir {
			header += " " + hintStyle.Render(preview.FormatSize(e.Size))
		}
		body = m.previewFor(e, inner, bodyHeight)
	}

	return panelStyle.Width(inner).Height(height - 2).MaxHeight(height).
		Render(header + "\n" + body)
}

// renderDocument draws the viewer or editor in place of the panels.
func (m *model) renderDocument() string {
	b := m.browser
	title := "View"
	body := b.Viewer.View()
	if b.Mode.Kind == browser.Edit {
		title = "Edit"
		body = b.Editor.View()
	}
	header := headerStyle.Render(fmt.Sprintf("%s: %s", title, b.DocPath))

	return panelFocusedStyle.
		Width(m.width - 2).
		Height(m.mainHeight() - 2).
		Render(header + "\n" + body)
}

func (m *model) renderInputDialog() string {
	b := m.browser
	title := dialogTitleStyle.Render(b.Mode.Kind.String())

	var context string
	switch b.Mode.Kind {
	case browser.Rename, browser.Move:
		context = hintStyle.Render(b.Mode.Target.Name) + "\n\n"
	case browser.Find, browser.Replace:
		context = hintStyle.Render(b.DocPath) + "\n\n"
	}

	hint := hintStyle.Render("enter: confirm • esc: cancel")
	dialog := dialogStyle.Width(min(70, m.width-4)).
		Render(title + "\n\n" + context + b.Mode.Input.View() + "\n\n" + hint)
	return m.center(dialog)
}

func (m *model) renderConfirmDelete() string {
	target := m.browser.Mode.Target
	kind := "file"
	if target.IsDir {
		kind = "directory"
	}

	title := dialogTitleStyle.Render("Move to trash?")
	body := fmt.Sprintf("Delete %s %q?", kind, target.Name)
	hint := hintStyle.Render("y: delete • any other key: cancel")

	dialog := dialogStyle.Width(min(60, m.width-4)).
		Render(title + "\n\n" + body + "\n\n" + hint)
	return m.center(dialog)
}

func (m *model) renderErrorDialog() string {
	title := errorTitleStyle.Render("❌ Error")
	body := rowStyle.Render(m.browser.Err.Error())
	hint := hintStyle.Render("enter/esc: dismiss")

	dialog := errorDialogStyle.Width(min(70, m.width-4)).
		Render(title + "\n\n" + body + "\n\n" + hint)
	return m.center(dialog)
}

// center places s in the middle of the panel area.
func (m *model) center(s string) string {
	return lipgloss.Place(m.width, m.mainHeight(), lipgloss.Center, lipgloss.Center, s)
}

func (m *model) renderStatusBar() string {
	b := m.browser

	var parts []string
	if n := len(b.Listing); n > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", b.Selected+1, n))
	}
	if b.Clipboard != nil {
		op := "copied"
		if b.Clipboard.Cut {
			op = "cut"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", op, runewidth.Truncate(b.Clipboard.Path, 30, "...")))
	}
	if ps := b.PlaybackStatus(); ps != "" {
		parts = append(parts, ps)
	}
	if b.Status != "" {
		parts = append(parts, b.Status)
	}

	left := strings.Join(parts, " | ")
	right := b.Mode.Kind.String()
	if b.Mode.Kind == browser.Normal {
		right = b.Focus.String()
	}

	inner := m.width - 2
	pad := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := runewidth.Truncate(left+strings.Repeat(" ", pad)+right, inner, "...")
	return statusStyle.Width(m.width).Render(line)
}

func (m *model) renderHelp() string {
	keys := m.browser.HelpKeys()
	if m.browser.ShowHelp {
		return m.help.FullHelpView(keys.FullHelp())
	}
	return m.help.ShortHelpView(keys.ShortHelp())
}
