package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LFroesch/karu/internal/browser"
	"github.com/LFroesch/karu/internal/config"
	"github.com/LFroesch/karu/internal/listing"
	"github.com/LFroesch/karu/internal/logger"
)

type nopTrash struct{}

func (nopTrash) Trash(string) error { return nil }

type nopOpener struct{}

func (nopOpener) Open(string) error { return nil }

func newTestModel(t *testing.T) (*model, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "alpha"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "beta.txt"), []byte("package beta\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "gamma.txt"), []byte("gamma"), 0644))

	b, err := browser.New(browser.Options{
		Path:           root,
		Home:           t.TempDir(),
		Trash:          nopTrash{},
		Opener:         nopOpener{},
		WriteClipboard: func(string) error { return nil },
	})
	require.NoError(t, err)

	m := newModel(b, config.Default())
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	return m, root
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCmd(config.Default())
	require.NoError(t, cmd.ParseFlags([]string{"--hidden=false", "--seek-step", "10s", "--max-preview-mb", "12"}))

	hidden, err := cmd.Flags().GetBool("hidden")
	require.NoError(t, err)
	assert.False(t, hidden)

	step, err := cmd.Flags().GetDuration("seek-step")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, step)

	assert.True(t, cmd.Flags().Changed("max-preview-mb"))
}

func TestRootCommandRejectsExtraArgs(t *testing.T) {
	cmd := newRootCmd(config.Default())
	cmd.SetArgs([]string{"a", "b"})
	assert.Error(t, cmd.Execute())
}

func TestOpenLogFlushesConfigWarnings(t *testing.T) {
	t.Setenv("KARU_TICK", "soon")
	cfg := config.Load()
	cfg.LogPath = filepath.Join(t.TempDir(), "karu.log")
	cfg.MaxPreviewBytes = 1

	openLog(cfg)
	logger.Close()

	data, err := os.ReadFile(cfg.LogPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "KARU_TICK")
	assert.Contains(t, string(data), "MaxPreviewBytes too low")
	assert.Empty(t, cfg.Warnings())
}

func TestViewShowsListing(t *testing.T) {
	m, root := newTestModel(t)
	out := m.View()

	assert.Contains(t, out, root)
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta.txt")
	assert.Contains(t, out, "Actions")
	assert.Contains(t, out, "Hidden: off")
}

func TestViewDialogs(t *testing.T) {
	m, _ := newTestModel(t)
	m.browser.Select(m.browser.Listing.Index("beta.txt"))

	m.Update(runes("d"))
	assert.Contains(t, m.View(), "Move to trash?")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m.Update(runes("r"))
	assert.Contains(t, m.View(), "Rename")
}

func TestViewErrorBanner(t *testing.T) {
	m, _ := newTestModel(t)
	m.browser.Select(m.browser.Listing.Index("alpha"))
	m.Update(runes("v"))

	require.Error(t, m.browser.Err)
	assert.Contains(t, m.View(), "Error")
}

func TestViewQuitting(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Empty(t, m.View())
}

func TestMouseWheelAndClick(t *testing.T) {
	m, _ := newTestModel(t)
	require.Equal(t, 0, m.browser.Selected)

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 1, m.browser.Selected)

	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 0, m.browser.Selected)

	m.Update(tea.MouseMsg{X: 3, Y: listFirstRow + 2, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 2, m.browser.Selected)

	// Header row and the preview panel are ignored
	m.Update(tea.MouseMsg{X: 3, Y: listHeaderRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{X: 110, Y: listFirstRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 2, m.browser.Selected)

	// Past the last entry
	m.Update(tea.MouseMsg{X: 3, Y: listFirstRow + 20, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, 2, m.browser.Selected)
}

func TestMouseIgnoredOutsideNormal(t *testing.T) {
	m, _ := newTestModel(t)
	m.Update(runes("n"))
	m.Update(tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.Equal(t, 0, m.browser.Selected)
}

func TestTickReschedules(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(tickMsg(time.Now()))
	assert.NotNil(t, cmd)
}

func TestPreviewCache(t *testing.T) {
	m, root := newTestModel(t)
	path := filepath.Join(root, "gamma.txt")
	e := listing.Entry{Name: "gamma.txt", Path: path, Size: 5}

	first := m.previewFor(e, 40, 10)
	assert.Contains(t, first, "gamma")
	key := m.previewKey

	m.previewFor(e, 40, 10)
	assert.Equal(t, key, m.previewKey)

	require.NoError(t, os.WriteFile(path, []byte("gamma delta"), 0644))
	assert.Contains(t, m.previewFor(e, 40, 10), "delta")
	assert.NotEqual(t, key, m.previewKey)
}

func TestPreviewDirectory(t *testing.T) {
	m, root := newTestModel(t)
	e := listing.Entry{Name: "alpha", Path: filepath.Join(root, "alpha"), IsDir: true}
	assert.Contains(t, m.previewFor(e, 40, 10), "Directory")
}

func TestListWindow(t *testing.T) {
	tests := []struct {
		name                  string
		selected, total, rows int
		want                  int
	}{
		{"fits", 3, 5, 10, 0},
		{"top", 2, 50, 10, 0},
		{"scrolled", 15, 50, 10, 6},
		{"bottom", 49, 50, 10, 40},
		{"no rows", 5, 50, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listWindow(tt.selected, tt.total, tt.rows))
		})
	}
}

func TestFileIcon(t *testing.T) {
	assert.Equal(t, "⬆️", fileIcon(listing.Entry{Name: "..", IsDir: true}))
	assert.Equal(t, "📁", fileIcon(listing.Entry{Name: "src", IsDir: true}))
	assert.Equal(t, "🔗", fileIcon(listing.Entry{Name: "link", IsSymlink: true}))
	assert.Equal(t, "🐹", fileIcon(listing.Entry{Name: "main.GO"}))
	assert.Equal(t, "🎵", fileIcon(listing.Entry{Name: "song.opus"}))
	assert.Equal(t, "📄", fileIcon(listing.Entry{Name: "README"}))
}
