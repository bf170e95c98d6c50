package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/LFroesch/karu/internal/browser"
	"github.com/LFroesch/karu/internal/config"
	"github.com/LFroesch/karu/internal/listing"
	"github.com/LFroesch/karu/internal/preview"
)

type tickMsg time.Time

// Screen layout. Rows are counted from the top of the terminal.
const (
	topBarRows    = 2 // top bar + address bar
	bottomRows    = 1 // status bar, help is measured
	listHeaderRow = topBarRows + 1
	listFirstRow  = listHeaderRow + 1
	actionsWidth  = 26
	minListWidth  = 24
)

type model struct {
	browser    *browser.Browser
	cfg        *config.Config
	classifier *preview.Classifier
	help       help.Model
	width      int
	height     int

	// Last rendered preview. Images and highlighting are too slow to redo on
	// every frame.
	previewKey  string
	previewBody string
}

func newModel(b *browser.Browser, cfg *config.Config) *model {
	h := help.New()
	h.ShowAll = false
	return &model{
		browser:    b,
		cfg:        cfg,
		classifier: preview.NewClassifier(cfg.PreviewDenyList, cfg.MaxPreviewBytes),
		help:       h,
	}
}

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// listWidth is the width of the file list panel including its border.
func (m *model) listWidth() int {
	w := (m.width - actionsWidth) * 2 / 5
	return max(w, minListWidth)
}

// mainHeight is the height of the panel row including borders.
func (m *model) mainHeight() int {
	h := m.height - topBarRows - bottomRows - m.helpHeight()
	return max(h, 5)
}

func (m *model) helpHeight() int {
	return lipgloss.Height(m.renderHelp())
}

// listRows is how many entries fit below the list header.
func (m *model) listRows() int {
	return max(m.mainHeight()-3, 1)
}

// previewFor returns the rendered preview of e at the given size, reusing the
// last result while the file and the size are unchanged.
func (m *model) previewFor(e listing.Entry, width, height int) string {
	key := fmt.Sprintf("%s|%d|%d", e.Path, width, height)
	if info, err := os.Stat(e.Path); err == nil {
		key += fmt.Sprintf("|%d|%d", info.Size(), info.ModTime().UnixNano())
	}
	if key == m.previewKey {
		return m.previewBody
	}

	p := m.classifier.Classify(e.Path, width, height)
	var body string
	switch p.Kind {
	case preview.Image:
		body = preview.RenderImage(p.Image, width, height)
	case preview.Text:
		body = preview.Highlight(p.Text, e.Name)
	default:
		body = dimStyle.Render(p.Text)
	}

	m.previewKey, m.previewBody = key, body
	return body
}
