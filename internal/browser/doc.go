package browser

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/LFroesch/karu/internal/errors"
	"github.com/LFroesch/karu/internal/fileops"
)

func (b *Browser) openViewer() {
	e := b.SelectedEntry()
	content, err := b.readDoc(e)
	if err != nil {
		b.fail(err)
		return
	}
	w, h := b.docSize()
	b.Viewer = viewport.New(w, h)
	b.Viewer.SetContent(content)
	b.docText = content
	b.DocPath = e.Path
	b.Mode = Mode{Kind: View, Target: e}
}

func (b *Browser) openEditor() {
	e := b.SelectedEntry()
	content, err := b.readDoc(e)
	if err != nil {
		b.fail(err)
		return
	}
	w, h := b.docSize()
	ta := textarea.New()
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.ShowLineNumbers = true
	ta.SetWidth(w)
	ta.SetHeight(h)
	ta.SetValue(content)
	ta.Focus()
	b.Editor = ta
	b.DocPath = e.Path
	b.Mode = Mode{Kind: Edit, Target: e}
}

func (b *Browser) closeDoc() {
	b.Mode = Mode{Kind: Normal}
	b.DocPath = ""
	b.docText = ""
}

func (b *Browser) handleViewer(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.Keys.CloseView):
		b.closeDoc()
		return nil
	case key.Matches(msg, b.Keys.Quit):
		return b.quit()
	case key.Matches(msg, b.Keys.Find), key.Matches(msg, b.Keys.Address):
		b.enterText(Find)
		return nil
	case key.Matches(msg, b.Keys.FindNext):
		b.findNext()
		return nil
	}

	var cmd tea.Cmd
	b.Viewer, cmd = b.Viewer.Update(msg)
	return cmd
}

func (b *Browser) handleEditor(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, b.Keys.Cancel):
		b.closeDoc()
		b.setStatus("Discarded changes")
		return nil
	case key.Matches(msg, b.Keys.Save):
		b.saveEditor()
		return nil
	case key.Matches(msg, b.Keys.Find):
		b.enterText(Find)
		return nil
	case key.Matches(msg, b.Keys.FindNext):
		b.findNext()
		return nil
	case key.Matches(msg, b.Keys.Replace):
		if b.findQuery == "" {
			b.setStatus("Find something first (ctrl+f)")
			return nil
		}
		b.enterText(Replace)
		return nil
	}

	var cmd tea.Cmd
	b.Editor, cmd = b.Editor.Update(msg)
	return cmd
}

func (b *Browser) saveEditor() {
	name := filepath.Base(b.DocPath)
	if err := fileops.WriteFile(b.DocPath, b.Editor.Value()); err != nil {
		b.fail(err)
		return
	}
	b.closeDoc()
	b.setStatus("Saved %s", name)
	b.fail(b.relistKeepingSelection())
}

// docLines returns the document shown in the mode Find returns to, and the
// line the search starts from.
func (b *Browser) docLines(kind Kind) ([]string, int) {
	if kind == Edit {
		return strings.Split(b.Editor.Value(), "\n"), b.Editor.Line()
	}
	return strings.Split(b.docText, "\n"), b.Viewer.YOffset
}

func (b *Browser) commitFind(query string) error {
	if query == "" {
		b.setStatus("Empty query")
		return nil
	}
	b.findQuery = query
	b.jumpToMatch(b.Mode.Return, 0)
	return nil
}

// findNext searches again from the line after the current one.
func (b *Browser) findNext() {
	if b.findQuery == "" {
		b.setStatus("Find something first (ctrl+f)")
		return
	}
	b.jumpToMatch(b.Mode.Kind, 1)
}

// jumpToMatch moves to the first line at or after the cursor (plus skip)
// containing the query, wrapping to the top once.
func (b *Browser) jumpToMatch(kind Kind, skip int) {
	lines, from := b.docLines(kind)
	total := strings.Count(strings.Join(lines, "\n"), b.findQuery)
	if total == 0 {
		b.setStatus("No matches for %q", b.findQuery)
		return
	}

	line := -1
	for i := 0; i < len(lines); i++ {
		n := (from + skip + i) % len(lines)
		if strings.Contains(lines[n], b.findQuery) {
			line = n
			break
		}
	}
	if line < 0 {
		// Only possible when the query spans lines
		b.setStatus("%d matches for %q", total, b.findQuery)
		return
	}

	if kind == Edit {
		moveEditorToLine(&b.Editor, line, len(b.Editor.Value()))
	} else {
		b.Viewer.SetYOffset(line)
	}
	b.setStatus("%d matches for %q, line %d", total, b.findQuery, line+1)
}

// moveEditorToLine walks the textarea cursor to row. Soft-wrapped rows take
// more than one step, so the walk is bounded by the content size instead of
// the line count.
func moveEditorToLine(ta *textarea.Model, row, limit int) {
	for i := 0; ta.Line() > row && i <= limit; i++ {
		ta.CursorUp()
	}
	for i := 0; ta.Line() < row && i <= limit; i++ {
		ta.CursorDown()
	}
	ta.CursorStart()
}

func (b *Browser) commitReplace(with string) error {
	if b.findQuery == "" {
		return errors.Invalid("replace", "nothing to replace")
	}
	value := b.Editor.Value()
	n := strings.Count(value, b.findQuery)
	if n == 0 {
		b.setStatus("No matches for %q", b.findQuery)
		return nil
	}
	row := b.Editor.Line()
	b.Editor.SetValue(strings.ReplaceAll(value, b.findQuery, with))
	moveEditorToLine(&b.Editor, row, len(b.Editor.Value()))
	b.setStatus("Replaced %d occurrences of %q", n, b.findQuery)
	return nil
}
