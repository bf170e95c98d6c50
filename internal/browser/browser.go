// Package browser holds the single mutable state of the file browser and the
// modal key handling that changes it. Rendering lives elsewhere and only
// reads a Browser.
package browser

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/LFroesch/karu/internal/errors"
	"github.com/LFroesch/karu/internal/fileops"
	"github.com/LFroesch/karu/internal/history"
	"github.com/LFroesch/karu/internal/listing"
	"github.com/LFroesch/karu/internal/logger"
	"github.com/LFroesch/karu/internal/playback"
)

// Focus is the panel receiving movement keys in Normal mode.
type Focus int

const (
	FocusFiles Focus = iota
	FocusActions
	FocusTopBar
)

func (f Focus) String() string {
	switch f {
	case FocusActions:
		return "actions"
	case FocusTopBar:
		return "topbar"
	default:
		return "files"
	}
}

// Options configures New. Zero values fall back to the system services.
type Options struct {
	Path       string
	Home       string
	ShowHidden bool
	Trash      fileops.Trasher
	Opener     fileops.Opener
	// Player may be nil when no audio player is installed.
	Player   playback.Player
	SeekStep time.Duration
	// MaxDocBytes caps what View and Edit load into memory.
	MaxDocBytes int64
	// WriteClipboard copies text to the system clipboard.
	WriteClipboard func(string) error
}

// Browser is the whole interactive state. It is owned by the event loop and
// only changed through HandleKey and the few exported mutators the mouse and
// tick adapters use.
type Browser struct {
	Path        string
	Listing     listing.Listing
	Selected    int
	ShowHidden  bool
	Clipboard   *fileops.Clipboard
	Focus       Focus
	Mode        Mode
	Err         error
	Status      string
	ActionIndex int
	TopBarIndex int
	FilterText  string
	ShowHelp    bool
	Quitting    bool

	// Document open in View or Edit.
	DocPath string
	docText string
	Viewer  viewport.Model
	Editor  textarea.Model

	Keys KeyMap

	history   history.History
	home      string
	trash     fileops.Trasher
	opener    fileops.Opener
	player    playback.Player
	seekStep  time.Duration
	maxDoc    int64
	copyText  func(string) error
	findQuery string

	track     playback.Handle
	trackName string
	trackPath string

	width  int
	height int
}

const (
	defaultSeekStep    = 5 * time.Second
	defaultMaxDocBytes = 8 * 1024 * 1024
)

// New lists opts.Path and returns a browser in Normal mode with focus on the
// file list.
func New(opts Options) (*Browser, error) {
	if opts.Trash == nil {
		opts.Trash = fileops.SystemTrash{}
	}
	if opts.Opener == nil {
		opts.Opener = fileops.SystemOpener{}
	}
	if opts.WriteClipboard == nil {
		opts.WriteClipboard = clipboard.WriteAll
	}
	if opts.SeekStep <= 0 {
		opts.SeekStep = defaultSeekStep
	}
	if opts.MaxDocBytes <= 0 {
		opts.MaxDocBytes = defaultMaxDocBytes
	}

	path := fileops.ExpandHome(opts.Path, opts.Home)
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve start directory: %w", err)
	}

	b := &Browser{
		ShowHidden: opts.ShowHidden,
		Keys:       DefaultKeyMap(),
		home:       opts.Home,
		trash:      opts.Trash,
		opener:     opts.Opener,
		player:     opts.Player,
		seekStep:   opts.SeekStep,
		maxDoc:     opts.MaxDocBytes,
		copyText:   opts.WriteClipboard,
		width:      80,
		height:     24,
	}
	w, h := b.docSize()
	b.Viewer = viewport.New(w, h)
	b.Editor = textarea.New()
	if err := b.navigate(abs); err != nil {
		return nil, err
	}
	return b, nil
}

// SetSize records the terminal size so the viewer and editor fit the preview
// area.
func (b *Browser) SetSize(width, height int) {
	b.width, b.height = width, height
	w, h := b.docSize()
	b.Viewer.Width, b.Viewer.Height = w, h
	b.Editor.SetWidth(w)
	b.Editor.SetHeight(h)
}

func (b *Browser) docSize() (int, int) {
	return max(b.width-4, 10), max(b.height-8, 3)
}

// SelectedEntry returns the entry under the selection. The listing always
// holds "..", so this is never empty after New.
func (b *Browser) SelectedEntry() listing.Entry {
	if b.Selected < 0 || b.Selected >= len(b.Listing) {
		return listing.Entry{}
	}
	return b.Listing[b.Selected]
}

// Select moves the selection to i, clamped to the listing.
func (b *Browser) Select(i int) {
	b.Selected = clamp(i, 0, len(b.Listing)-1)
}

// MoveSelection moves the selection by delta, clamped to the listing.
func (b *Browser) MoveSelection(delta int) {
	b.Select(b.Selected + delta)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}

// History exposes the navigation history for rendering.
func (b *Browser) History() *history.History {
	return &b.history
}

func (b *Browser) setStatus(format string, args ...any) {
	b.Status = fmt.Sprintf(format, args...)
}

// fail records err in the banner slot and drops back to Normal.
func (b *Browser) fail(err error) {
	if err == nil {
		return
	}
	logger.Error("%v", err)
	b.Err = err
	b.Mode = Mode{Kind: Normal}
}

// navigate lists dir and makes it current. The history only grows when dir
// differs from the current entry.
func (b *Browser) navigate(dir string) error {
	l, err := listing.List(dir, b.ShowHidden)
	if err != nil {
		return err
	}
	b.Path = filepath.Clean(dir)
	b.Listing = l
	b.Selected = 0
	b.FilterText = ""
	b.history.Push(b.Path)
	logger.Debug("Navigated to %s (%d entries)", b.Path, len(l))
	return nil
}

// reload re-lists the current directory after its contents changed.
func (b *Browser) reload() error {
	l, err := listing.List(b.Path, b.ShowHidden)
	if err != nil {
		return err
	}
	b.Listing = l
	b.Selected = 0
	b.FilterText = ""
	return nil
}

// relistKeepingSelection re-lists without a content change, keeping the
// selected name when it is still present.
func (b *Browser) relistKeepingSelection() error {
	name := b.SelectedEntry().Name
	l, err := listing.List(b.Path, b.ShowHidden)
	if err != nil {
		return err
	}
	if b.FilterText != "" {
		l = listing.Filter(l, b.FilterText)
	}
	b.Listing = l
	if i := l.Index(name); i >= 0 {
		b.Selected = i
	} else {
		b.Select(b.Selected)
	}
	return nil
}

func (b *Browser) applyFilter(text string) error {
	if text == "" {
		b.clearFilter()
		return nil
	}
	l, err := listing.List(b.Path, b.ShowHidden)
	if err != nil {
		return err
	}
	b.Listing = listing.Filter(l, text)
	b.FilterText = text
	b.Selected = 0
	b.setStatus("%d matches for %q", len(b.Listing), text)
	return nil
}

func (b *Browser) clearFilter() {
	if err := b.reload(); err != nil {
		b.fail(err)
		return
	}
	b.Status = ""
}

func (b *Browser) goBack() {
	path, ok := b.history.Back()
	if !ok {
		return
	}
	if err := b.visit(path); err != nil {
		b.history.Forward()
		b.fail(err)
	}
}

func (b *Browser) goForward() {
	path, ok := b.history.Forward()
	if !ok {
		return
	}
	if err := b.visit(path); err != nil {
		b.history.Back()
		b.fail(err)
	}
}

// visit lists a history entry without pushing it.
func (b *Browser) visit(dir string) error {
	l, err := listing.List(dir, b.ShowHidden)
	if err != nil {
		return err
	}
	b.Path = dir
	b.Listing = l
	b.Selected = 0
	b.FilterText = ""
	return nil
}

func (b *Browser) goUp() {
	b.fail(b.navigate(filepath.Dir(b.Path)))
}

func (b *Browser) toggleHidden() {
	b.ShowHidden = !b.ShowHidden
	if err := b.relistKeepingSelection(); err != nil {
		b.fail(err)
		return
	}
	if b.ShowHidden {
		b.setStatus("Showing hidden files")
	} else {
		b.setStatus("Hiding hidden files")
	}
}

// open navigates into directories and hands everything else to the opener.
func (b *Browser) open() {
	e := b.SelectedEntry()
	if e.Name == "" {
		return
	}
	if e.IsDir {
		b.fail(b.navigate(e.Path))
		return
	}
	if err := b.opener.Open(e.Path); err != nil {
		b.fail(err)
		return
	}
	b.setStatus("Opening %s", e.Name)
}

func (b *Browser) copySelected(cut bool) {
	e := b.SelectedEntry()
	if e.Name == "" || e.IsParent() {
		b.setStatus("Nothing to copy")
		return
	}
	b.Clipboard = &fileops.Clipboard{Path: e.Path, Cut: cut}
	if cut {
		b.setStatus("Cut %s", e.Name)
	} else {
		b.setStatus("Copied %s", e.Name)
	}
}

func (b *Browser) paste() {
	if b.Clipboard == nil {
		b.setStatus("Clipboard is empty")
		return
	}
	cb := *b.Clipboard
	if err := fileops.Paste(b.Path, cb); err != nil {
		b.fail(err)
		return
	}
	if cb.Cut {
		b.Clipboard = nil
	}
	b.setStatus("Pasted %s", filepath.Base(cb.Path))
	b.fail(b.reload())
}

func (b *Browser) requestDelete() {
	e := b.SelectedEntry()
	if e.Name == "" || e.IsParent() {
		b.setStatus("Nothing to delete")
		return
	}
	b.Mode = Mode{Kind: ConfirmDelete, Target: e}
}

func (b *Browser) confirmDelete() {
	target := b.Mode.Target
	b.Mode = Mode{Kind: Normal}
	if err := b.trash.Trash(target.Path); err != nil {
		b.fail(err)
		return
	}
	if b.Clipboard != nil && b.Clipboard.Path == target.Path {
		b.Clipboard = nil
	}
	b.setStatus("Moved %s to trash", target.Name)
	b.fail(b.reload())
}

// beginOnEntry enters a text mode that acts on the selection, refusing "..".
func (b *Browser) beginOnEntry(kind Kind) {
	e := b.SelectedEntry()
	if e.Name == "" || e.IsParent() {
		b.setStatus("Select an entry first")
		return
	}
	b.enterText(kind)
}

func (b *Browser) yankPath() {
	e := b.SelectedEntry()
	path := e.Path
	if e.Name == "" || e.IsParent() {
		path = b.Path
	}
	if err := b.copyText(path); err != nil {
		b.setStatus("Failed to copy: %v", err)
		return
	}
	b.setStatus("Copied: %s", path)
}

// readDoc loads a regular file for View or Edit.
func (b *Browser) readDoc(e listing.Entry) (string, error) {
	if e.Name == "" || e.IsDir {
		return "", errors.Invalid("open", "%s is not a file", e.Name)
	}
	info, err := os.Stat(e.Path)
	if err != nil {
		return "", errors.IO("open", e.Path, err)
	}
	if info.Size() > b.maxDoc {
		return "", errors.Invalid("open", "%s is too large to open here", e.Name)
	}
	data, err := os.ReadFile(e.Path)
	if err != nil {
		return "", errors.IO("open", e.Path, err)
	}
	return string(data), nil
}
