package browser

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/karu/internal/logger"
)

// HandleKey applies one keystroke. It returns tea.Quit when the user quits,
// the cursor blink when a text mode was entered, and otherwise any command
// produced by the active input component.
func (b *Browser) HandleKey(msg tea.KeyMsg) tea.Cmd {
	// The error banner swallows everything until acknowledged
	if b.Err != nil {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc:
			b.Err = nil
		}
		return nil
	}

	if key.Matches(msg, b.Keys.ForceQuit) {
		return b.quit()
	}

	logger.Debug("key %q in %s", msg.String(), b.Mode.Kind)

	prev := b.Mode.Kind
	cmd := b.dispatch(msg)
	if b.Mode.Kind != prev && b.Mode.Kind.IsText() {
		return tea.Batch(cmd, textinput.Blink)
	}
	return cmd
}

func (b *Browser) dispatch(msg tea.KeyMsg) tea.Cmd {
	switch b.Mode.Kind {
	case Normal:
		return b.handleNormal(msg)
	case ConfirmDelete:
		if msg.String() == "y" {
			b.confirmDelete()
		} else {
			b.Mode = Mode{Kind: Normal}
			b.setStatus("Delete cancelled")
		}
		return nil
	case View:
		return b.handleViewer(msg)
	case Edit:
		return b.handleEditor(msg)
	default:
		return b.handleText(msg)
	}
}

func (b *Browser) quit() tea.Cmd {
	b.stopPlayback()
	b.Quitting = true
	return tea.Quit
}

func (b *Browser) handleNormal(msg tea.KeyMsg) tea.Cmd {
	// Panel specific movement first
	switch b.Focus {
	case FocusActions:
		switch {
		case key.Matches(msg, b.Keys.Up):
			b.ActionIndex = clamp(b.ActionIndex-1, 0, len(Actions)-1)
			return nil
		case key.Matches(msg, b.Keys.Down):
			b.ActionIndex = clamp(b.ActionIndex+1, 0, len(Actions)-1)
			return nil
		case key.Matches(msg, b.Keys.Left), key.Matches(msg, b.Keys.Cancel):
			b.Focus = FocusFiles
			return nil
		case key.Matches(msg, b.Keys.Open):
			b.runAction()
			return nil
		case key.Matches(msg, b.Keys.Right):
			return nil
		}
	case FocusTopBar:
		switch {
		case key.Matches(msg, b.Keys.Left):
			b.TopBarIndex = clamp(b.TopBarIndex-1, 0, len(TopBar)-1)
			return nil
		case key.Matches(msg, b.Keys.Right):
			b.TopBarIndex = clamp(b.TopBarIndex+1, 0, len(TopBar)-1)
			return nil
		case key.Matches(msg, b.Keys.Cancel):
			b.Focus = FocusFiles
			return nil
		case key.Matches(msg, b.Keys.Open):
			b.runTopBar()
			return nil
		case key.Matches(msg, b.Keys.Up), key.Matches(msg, b.Keys.Down):
			return nil
		}
	default:
		switch {
		case key.Matches(msg, b.Keys.Up):
			b.MoveSelection(-1)
			return nil
		case key.Matches(msg, b.Keys.Down):
			b.MoveSelection(1)
			return nil
		case key.Matches(msg, b.Keys.Open):
			b.open()
			return nil
		case key.Matches(msg, b.Keys.Left):
			// Already on the leftmost panel
			return nil
		case key.Matches(msg, b.Keys.Right):
			b.Focus = FocusActions
			return nil
		case key.Matches(msg, b.Keys.Cancel):
			if b.FilterText != "" {
				b.clearFilter()
			}
			return nil
		}
	}

	switch {
	case key.Matches(msg, b.Keys.Quit):
		return b.quit()
	case key.Matches(msg, b.Keys.Cycle):
		b.cycleFocus()
	case key.Matches(msg, b.Keys.GoUp):
		b.goUp()
	case key.Matches(msg, b.Keys.Back):
		b.goBack()
	case key.Matches(msg, b.Keys.Forward):
		b.goForward()
	case key.Matches(msg, b.Keys.Delete):
		b.requestDelete()
	case key.Matches(msg, b.Keys.Address):
		b.enterText(AddressEdit)
	case key.Matches(msg, b.Keys.Create):
		b.enterText(Create)
	case key.Matches(msg, b.Keys.CreateDir):
		b.enterText(CreateDirectory)
	case key.Matches(msg, b.Keys.Rename):
		b.beginOnEntry(Rename)
	case key.Matches(msg, b.Keys.Move):
		b.beginOnEntry(Move)
	case key.Matches(msg, b.Keys.Filter):
		b.enterText(Filter)
	case key.Matches(msg, b.Keys.Copy):
		b.copySelected(false)
	case key.Matches(msg, b.Keys.Cut):
		b.copySelected(true)
	case key.Matches(msg, b.Keys.Paste):
		b.paste()
	case key.Matches(msg, b.Keys.OpenExternal):
		b.open()
	case key.Matches(msg, b.Keys.ToggleHidden):
		b.toggleHidden()
	case key.Matches(msg, b.Keys.Yank):
		b.yankPath()
	case key.Matches(msg, b.Keys.View):
		b.openViewer()
	case key.Matches(msg, b.Keys.Edit):
		b.openEditor()
	case key.Matches(msg, b.Keys.PlayPause):
		b.playPause()
	case key.Matches(msg, b.Keys.Stop):
		b.stopPlayback()
	case key.Matches(msg, b.Keys.SeekBack):
		b.seek(-b.seekStep)
	case key.Matches(msg, b.Keys.SeekForward):
		b.seek(b.seekStep)
	case key.Matches(msg, b.Keys.Help):
		b.ShowHelp = !b.ShowHelp
	}
	return nil
}

// handleText runs every single-line input mode through one path: enter
// commits, escape cancels, everything else edits the buffer.
func (b *Browser) handleText(msg tea.KeyMsg) tea.Cmd {
	tm, ok := textModes[b.Mode.Kind]
	if !ok {
		b.Mode = Mode{Kind: Normal}
		return nil
	}

	switch msg.Type {
	case tea.KeyEnter:
		text := b.Mode.Input.Value()
		if err := tm.commit(b, text); err != nil {
			b.fail(err)
			return nil
		}
		b.leaveMode()
		return nil
	case tea.KeyEsc:
		b.leaveMode()
		if tm.cancel != nil {
			tm.cancel(b)
		}
		return nil
	case tea.KeyTab:
		if b.Mode.Kind == AddressEdit {
			b.completeAddress()
		}
		return nil
	}

	var cmd tea.Cmd
	b.Mode.Input, cmd = b.Mode.Input.Update(msg)
	return cmd
}
